package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"gooman/client"
	authDto "gooman/internal/domains/auth/model/dto"
	bookingDto "gooman/internal/domains/booking/model/dto"
	"gooman/shared/constant"
	"gooman/shared/failure"
	"gooman/transport/http/response"
)

const (
	testEmail    = "traveler@example.com"
	testPassword = "secret"
	takenEmail   = "taken@example.com"
	testUserID   = "0f8fad5b-d9cb-469f-a165-70867728950e"
	accessToken  = "access-token"
	refreshToken = "refresh-token"
)

// fakeBackend serves the subset of /v1 the client uses and records what it receives.
type fakeBackend struct {
	mu            sync.Mutex
	bookings      []bookingDto.CreateBookingRequest
	authHeaders   []string
	requests      int
	failBookings  string
	logoutHeaders []string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *client.API) {
	t.Helper()

	backend := &fakeBackend{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/auth/login", backend.login)
	mux.HandleFunc("POST /v1/auth/register", backend.register)
	mux.HandleFunc("POST /v1/auth/refresh-token", backend.refresh)
	mux.HandleFunc("POST /v1/auth/logout", backend.logout)
	mux.HandleFunc("POST /v1/bookings", backend.createBooking)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backend.mu.Lock()
		backend.requests++
		backend.mu.Unlock()

		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	return backend, client.NewAPI(server.URL, server.Client())
}

func (b *fakeBackend) Requests() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.requests
}

func (b *fakeBackend) Bookings() []bookingDto.CreateBookingRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]bookingDto.CreateBookingRequest(nil), b.bookings...)
}

func (b *fakeBackend) LogoutHeaders() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.logoutHeaders...)
}

func (b *fakeBackend) AuthHeaders() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string(nil), b.authHeaders...)
}

func (b *fakeBackend) FailBookings(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failBookings = message
}

func sessionResponse(fullName string) authDto.SessionResponse {
	return authDto.SessionResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    900,
		ExpiresAt:    1893456000,
		User: authDto.IdentityResponse{
			ID:       testUserID,
			Email:    testEmail,
			FullName: fullName,
			Role:     constant.RoleUser,
		},
	}
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	req := authDto.LoginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if req.Email != testEmail || req.Password != testPassword {
		response.WithError(w, failure.BadRequestFromString(authDto.MessageInvalidCredentials))

		return
	}

	response.WithJSON(w, http.StatusOK, sessionResponse("Test Traveler"))
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	req := authDto.RegisterRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if req.Email == takenEmail {
		response.WithError(w, failure.Conflict(authDto.MessageAlreadyRegistered))

		return
	}

	response.WithJSON(w, http.StatusCreated, sessionResponse(req.FullName))
}

func (b *fakeBackend) refresh(w http.ResponseWriter, r *http.Request) {
	req := authDto.RefreshTokenRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken != refreshToken {
		response.WithError(w, failure.Unauthorized("Invalid refresh token"))

		return
	}

	response.WithJSON(w, http.StatusOK, sessionResponse("Test Traveler"))
}

func (b *fakeBackend) logout(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.logoutHeaders = append(b.logoutHeaders, r.Header.Get(constant.RequestHeaderAuthorization))
	b.mu.Unlock()

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

func (b *fakeBackend) createBooking(w http.ResponseWriter, r *http.Request) {
	req := bookingDto.CreateBookingRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.authHeaders = append(b.authHeaders, r.Header.Get(constant.RequestHeaderAuthorization))

	if b.failBookings != constant.Empty {
		response.WithError(w, failure.Forbidden(b.failBookings))

		return
	}

	b.bookings = append(b.bookings, req)

	res := bookingDto.BookingResponse{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		BookingType: req.BookingType,
		Guests:      req.Guests,
		TotalPrice:  req.TotalPrice,
		Status:      req.Status,
	}

	response.WithJSON(w, http.StatusCreated, res)
}

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string(nil), n.routes...)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []client.Notice
}

func (n *recordingNotifier) Notify(notice client.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) Notices() []client.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]client.Notice(nil), n.notices...)
}
