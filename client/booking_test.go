package client_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gooman/client"
	bookingDto "gooman/internal/domains/booking/model/dto"
	listingModel "gooman/internal/domains/listing/model"
)

const rlsMessage = `new row violates row-level security policy for table "bookings"`

func signedIn(t *testing.T, api *client.API, navigator client.Navigator) *client.Session {
	t.Helper()

	session := client.NewSession(navigator)

	_, err := client.NewAuth(api, session).SignIn(context.Background(), testEmail, testPassword)
	assert.NoError(t, err)

	return session
}

func hotel() listingModel.Hotel {
	return listingModel.Hotel{ID: "H1", Name: "Al Bustan Palace", Location: "Muscat", PricePerNight: 120}
}

func guide() listingModel.Guide {
	rate := 40.0

	return listingModel.Guide{ID: "G1", Name: "Salim", PricePerDay: &rate}
}

func experience() listingModel.Experience {
	return listingModel.Experience{ID: "E1", Title: "Wadi Shab hike", Price: 85}
}

func TestBookingForm_Anonymous(t *testing.T) {
	backend, api := newFakeBackend(t)
	navigator := &recordingNavigator{}
	notifier := &recordingNotifier{}

	var states []client.FormState

	form := client.NewBookingForm(hotel(), client.NewSession(navigator), api, notifier, navigator,
		client.WithStateObserver(func(s client.FormState) { states = append(states, s) }))
	form.SetCheckIn("2026-05-01")
	form.SetCheckOut("2026-05-03")

	_, err := form.Submit(context.Background())

	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Zero(t, backend.Requests())
	assert.Empty(t, backend.Bookings())
	assert.Equal(t, []string{client.RouteSignIn}, navigator.Routes())
	assert.Equal(t, []client.FormState{client.StateValidating, client.StateRejected, client.StateIdle}, states)
	assert.Equal(t, client.StateIdle, form.State())
}

func TestBookingForm_HotelRequiresBothDates(t *testing.T) {
	tests := []struct {
		name      string
		checkIn   string
		checkOut  string
		wantField string
	}{
		{name: "missing check out", checkIn: "2026-05-01", wantField: client.FieldCheckOut},
		{name: "missing check in", checkOut: "2026-05-03", wantField: client.FieldCheckIn},
		{name: "missing both", wantField: client.FieldCheckIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, api := newFakeBackend(t)
			session := signedIn(t, api, nil)
			before := backend.Requests()
			notifier := &recordingNotifier{}

			form := client.NewBookingForm(hotel(), session, api, notifier, nil)
			form.SetCheckIn(tt.checkIn)
			form.SetCheckOut(tt.checkOut)

			_, err := form.Submit(context.Background())

			var validationErr *client.ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
			assert.Equal(t, before, backend.Requests())
			assert.Empty(t, backend.Bookings())
			assert.Equal(t, []client.Notice{{
				Title:       "Dates required",
				Description: "Please select check-in and check-out dates.",
				Destructive: true,
			}}, notifier.Notices())
			assert.Equal(t, client.StateIdle, form.State())
		})
	}
}

func TestBookingForm_Experience(t *testing.T) {
	backend, api := newFakeBackend(t)
	navigator := &recordingNavigator{}
	notifier := &recordingNotifier{}
	session := signedIn(t, api, navigator)

	form := client.NewBookingForm(experience(), session, api, notifier, navigator)
	form.SetCheckIn("2026-06-12")
	form.SetGuests(2)

	res, err := form.Submit(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, []bookingDto.CreateBookingRequest{{
		UserID:       testUserID,
		BookingType:  "experience",
		ExperienceID: "E1",
		CheckInDate:  "2026-06-12",
		Guests:       2,
		TotalPrice:   170,
		Status:       "pending",
	}}, backend.Bookings())
	assert.Equal(t, []string{"Bearer " + accessToken}, backend.AuthHeaders())
	assert.Equal(t, client.StateSucceeded, form.State())
	assert.Equal(t, []string{client.RouteBookings}, navigator.Routes())
	assert.False(t, notifier.Notices()[0].Destructive)

	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, client.ErrFormClosed)
	assert.Len(t, backend.Bookings(), 1)
}

func TestBookingForm_Hotel(t *testing.T) {
	t.Run("priced per night", func(t *testing.T) {
		backend, api := newFakeBackend(t)
		form := client.NewBookingForm(hotel(), signedIn(t, api, nil), api, nil, nil)
		form.SetCheckIn("2026-03-28")
		form.SetCheckOut("2026-04-01")
		form.SetGuests(3)

		assert.Equal(t, 480.0, form.Price())

		_, err := form.Submit(context.Background())

		assert.NoError(t, err)

		bookings := backend.Bookings()
		assert.Len(t, bookings, 1)
		assert.Equal(t, "H1", bookings[0].HotelID)
		assert.Equal(t, "2026-04-01", bookings[0].CheckOutDate)
		assert.Empty(t, bookings[0].GuideID)
		assert.Empty(t, bookings[0].ExperienceID)
		assert.Equal(t, 480.0, bookings[0].TotalPrice)
	})

	t.Run("check out before check in still submits at zero", func(t *testing.T) {
		backend, api := newFakeBackend(t)
		form := client.NewBookingForm(hotel(), signedIn(t, api, nil), api, nil, nil)
		form.SetCheckIn("2026-04-05")
		form.SetCheckOut("2026-04-01")

		_, err := form.Submit(context.Background())

		assert.NoError(t, err)
		assert.Len(t, backend.Bookings(), 1)
		assert.Zero(t, backend.Bookings()[0].TotalPrice)
	})
}

func TestBookingForm_GuideDefaultsToToday(t *testing.T) {
	backend, api := newFakeBackend(t)
	clock := func() time.Time { return time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC) }

	form := client.NewBookingForm(guide(), signedIn(t, api, nil), api, nil, nil,
		client.WithClock(clock),
		client.WithLocation(time.FixedZone("GST", 4*60*60)))
	form.SetGuests(5)

	assert.Equal(t, 40.0, form.Price())

	_, err := form.Submit(context.Background())

	assert.NoError(t, err)

	bookings := backend.Bookings()
	assert.Len(t, bookings, 1)
	assert.Equal(t, "G1", bookings[0].GuideID)
	assert.Equal(t, "2026-03-02", bookings[0].CheckInDate)
	assert.Empty(t, bookings[0].CheckOutDate)
	assert.Equal(t, 40.0, bookings[0].TotalPrice)
	assert.Equal(t, 5, bookings[0].Guests)
}

func TestBookingForm_SetGuestsClamps(t *testing.T) {
	form := client.NewBookingForm(experience(), client.NewSession(nil), nil, nil, nil)

	assert.Equal(t, 1, form.Draft().Guests)

	form.SetGuests(0)
	assert.Equal(t, 1, form.Draft().Guests)

	form.SetGuests(25)
	assert.Equal(t, 10, form.Draft().Guests)
	assert.Equal(t, 850.0, form.Price())
}

func TestBookingForm_BackendFailure(t *testing.T) {
	backend, api := newFakeBackend(t)
	navigator := &recordingNavigator{}
	notifier := &recordingNotifier{}

	form := client.NewBookingForm(experience(), signedIn(t, api, navigator), api, notifier, navigator)
	form.SetCheckIn("2026-06-12")

	backend.FailBookings(rlsMessage)

	_, err := form.Submit(context.Background())

	var apiErr *client.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, client.StateIdle, form.State())
	assert.Empty(t, navigator.Routes())
	assert.Equal(t, client.Notice{Title: "Booking failed", Description: rlsMessage, Destructive: true}, notifier.Notices()[0])

	backend.FailBookings("")

	_, err = form.Submit(context.Background())

	assert.NoError(t, err)
	assert.Len(t, backend.Bookings(), 1)
	assert.Equal(t, client.StateSucceeded, form.State())
}

type blockingCreator struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (b *blockingCreator) CreateBooking(context.Context, string, bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()

	close(b.started)
	<-b.release

	return bookingDto.BookingResponse{ID: "B1"}, nil
}

func TestBookingForm_InFlight(t *testing.T) {
	_, api := newFakeBackend(t)
	creator := &blockingCreator{started: make(chan struct{}), release: make(chan struct{})}

	form := client.NewBookingForm(experience(), signedIn(t, api, nil), creator, nil, nil)

	done := make(chan error, 1)

	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()

	<-creator.started
	assert.Equal(t, client.StateSubmitting, form.State())

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, client.ErrSubmissionInFlight)

	close(creator.release)
	assert.NoError(t, <-done)
	assert.Equal(t, 1, creator.calls)
}

// Each open form submits on its own; nothing deduplicates across them.
func TestBookingForm_NoIdempotency(t *testing.T) {
	backend, api := newFakeBackend(t)
	session := signedIn(t, api, nil)

	var wg sync.WaitGroup

	for range 2 {
		form := client.NewBookingForm(experience(), session, api, nil, nil)
		form.SetCheckIn("2026-06-12")
		form.SetGuests(2)

		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := form.Submit(context.Background())
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	bookings := backend.Bookings()
	assert.Len(t, bookings, 2)
	assert.Equal(t, bookings[0], bookings[1])
}

// formReader reads the form back from inside every callback it receives.
type formReader struct {
	mu     sync.Mutex
	form   *client.BookingForm
	states []client.FormState
}

func (r *formReader) read() {
	state := r.form.State()
	_ = r.form.Price()
	_ = r.form.Draft()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.states = append(r.states, state)
}

func (r *formReader) Notify(client.Notice) { r.read() }

func (r *formReader) Navigate(string) { r.read() }

func (r *formReader) Seen() []client.FormState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]client.FormState(nil), r.states...)
}

func submitWithin(t *testing.T, form *client.BookingForm) error {
	t.Helper()

	done := make(chan error, 1)

	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Submit did not return while callbacks read the form")

		return nil
	}
}

func TestBookingForm_CallbacksReadForm(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		_, api := newFakeBackend(t)
		reader := &formReader{}

		var observed []client.FormState

		reader.form = client.NewBookingForm(experience(), client.NewSession(reader), api, reader, reader,
			client.WithStateObserver(func(s client.FormState) {
				observed = append(observed, reader.form.State())
			}))

		err := submitWithin(t, reader.form)

		assert.ErrorIs(t, err, client.ErrUnauthorized)
		assert.Equal(t, []client.FormState{client.StateValidating, client.StateRejected}, reader.Seen())
		assert.Equal(t, []client.FormState{client.StateValidating, client.StateRejected, client.StateIdle}, observed)
	})

	t.Run("confirmed", func(t *testing.T) {
		_, api := newFakeBackend(t)
		reader := &formReader{}
		reader.form = client.NewBookingForm(experience(), signedIn(t, api, nil), api, reader, reader)

		assert.NoError(t, submitWithin(t, reader.form))
		assert.Equal(t, []client.FormState{client.StateSucceeded, client.StateSucceeded}, reader.Seen())
	})

	t.Run("backend failure", func(t *testing.T) {
		backend, api := newFakeBackend(t)
		backend.FailBookings(rlsMessage)

		reader := &formReader{}
		reader.form = client.NewBookingForm(experience(), signedIn(t, api, nil), api, reader, reader)

		assert.Error(t, submitWithin(t, reader.form))
		assert.Equal(t, []client.FormState{client.StateFailed}, reader.Seen())
		assert.Equal(t, client.StateIdle, reader.form.State())
	})
}
