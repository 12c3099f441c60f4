package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	authDto "gooman/internal/domains/auth/model/dto"
	bookingDto "gooman/internal/domains/booking/model/dto"
	listingModel "gooman/internal/domains/listing/model"
	listingDto "gooman/internal/domains/listing/model/dto"
	"gooman/shared/constant"
	"gooman/transport/http/response"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	pathRegister     = "/v1/auth/register"
	pathLogin        = "/v1/auth/login"
	pathRefreshToken = "/v1/auth/refresh-token"
	pathLogout       = "/v1/auth/logout"
	pathBookings     = "/v1/bookings"
	pathMyBookings   = "/v1/bookings/mine"

	defaultTimeout = 30 * time.Second
	bearerPrefix   = "Bearer "
)

var listingPaths = map[listingModel.Kind]string{
	listingModel.KindHotel:      "/v1/hotels",
	listingModel.KindGuide:      "/v1/guides",
	listingModel.KindExperience: "/v1/experiences",
}

// APIError is a non-2xx answer from the backend. Message carries the backend's text verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// API talks to the GoOman backend over HTTP.
type API struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPI builds a backend client. A nil httpClient gets a default one with a 30s timeout.
func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (a *API) Register(ctx context.Context, req authDto.RegisterRequest) (authDto.SessionResponse, error) {
	return call[authDto.SessionResponse](ctx, a, http.MethodPost, pathRegister, constant.Empty, req)
}

func (a *API) Login(ctx context.Context, req authDto.LoginRequest) (authDto.SessionResponse, error) {
	return call[authDto.SessionResponse](ctx, a, http.MethodPost, pathLogin, constant.Empty, req)
}

func (a *API) RefreshToken(ctx context.Context, refreshToken string) (authDto.SessionResponse, error) {
	req := authDto.RefreshTokenRequest{RefreshToken: refreshToken}

	return call[authDto.SessionResponse](ctx, a, http.MethodPost, pathRefreshToken, constant.Empty, req)
}

func (a *API) Logout(ctx context.Context, accessToken string) error {
	_, err := call[struct{}](ctx, a, http.MethodPost, pathLogout, accessToken, nil)

	return err
}

// CreateBooking inserts one booking row. It is never retried.
func (a *API) CreateBooking(ctx context.Context, accessToken string, req bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error) {
	return call[bookingDto.BookingResponse](ctx, a, http.MethodPost, pathBookings, accessToken, req)
}

func (a *API) MyBookings(ctx context.Context, accessToken string) (bookingDto.GetBookingsResponse, error) {
	return call[bookingDto.GetBookingsResponse](ctx, a, http.MethodGet, pathMyBookings, accessToken, nil)
}

// Listings fetches every listing of a kind, optionally filtered on is_active.
func (a *API) Listings(ctx context.Context, kind listingModel.Kind, active *bool) ([]listingModel.Listing, error) {
	path, ok := listingPaths[kind]
	if !ok {
		return nil, fmt.Errorf("unknown listing kind %q", kind)
	}

	if active != nil {
		query := url.Values{}
		query.Set(constant.RequestParamActive, strconv.FormatBool(*active))
		path += "?" + query.Encode()
	}

	var listings []listingModel.Listing

	switch kind {
	case listingModel.KindHotel:
		res, err := call[listingDto.GetHotelsResponse](ctx, a, http.MethodGet, path, constant.Empty, nil)
		if err != nil {
			return nil, err
		}

		for _, hotel := range res.Hotels {
			listings = append(listings, hotel.ToModel())
		}
	case listingModel.KindGuide:
		res, err := call[listingDto.GetGuidesResponse](ctx, a, http.MethodGet, path, constant.Empty, nil)
		if err != nil {
			return nil, err
		}

		for _, guide := range res.Guides {
			listings = append(listings, guide.ToModel())
		}
	case listingModel.KindExperience:
		res, err := call[listingDto.GetExperiencesResponse](ctx, a, http.MethodGet, path, constant.Empty, nil)
		if err != nil {
			return nil, err
		}

		for _, experience := range res.Experiences {
			listings = append(listings, experience.ToModel())
		}
	}

	return listings, nil
}

// Listing fetches a single listing by kind and id.
func (a *API) Listing(ctx context.Context, kind listingModel.Kind, id string) (listingModel.Listing, error) {
	base, ok := listingPaths[kind]
	if !ok {
		return nil, fmt.Errorf("unknown listing kind %q", kind)
	}

	path := base + "/" + url.PathEscape(id)

	switch kind {
	case listingModel.KindHotel:
		res, err := call[listingDto.HotelResponse](ctx, a, http.MethodGet, path, constant.Empty, nil)
		if err != nil {
			return nil, err
		}

		return res.ToModel(), nil
	case listingModel.KindGuide:
		res, err := call[listingDto.GuideResponse](ctx, a, http.MethodGet, path, constant.Empty, nil)
		if err != nil {
			return nil, err
		}

		return res.ToModel(), nil
	default:
		res, err := call[listingDto.ExperienceResponse](ctx, a, http.MethodGet, path, constant.Empty, nil)
		if err != nil {
			return nil, err
		}

		return res.ToModel(), nil
	}
}

func call[T any](ctx context.Context, a *API, method, path, accessToken string, body any) (T, error) {
	var result T

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return result, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return result, fmt.Errorf("building %s %s: %w", method, path, err)
	}

	if body != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if accessToken != constant.Empty {
		req.Header.Set(constant.RequestHeaderAuthorization, bearerPrefix+accessToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeError(resp.StatusCode, raw)

		log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("error", apiErr.Message).
			Msg("backend request failed")

		return result, apiErr
	}

	envelope := response.Data[T]{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return result, fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}

	if envelope.Data != nil {
		result = *envelope.Data
	}

	return result, nil
}

func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	errBody := response.Error{}
	if json.Unmarshal(raw, &errBody) == nil && errBody.Error != nil {
		apiErr.Message = *errBody.Error

		return apiErr
	}

	msgBody := response.Message{}
	if json.Unmarshal(raw, &msgBody) == nil && msgBody.Message != nil {
		apiErr.Message = *msgBody.Message
	}

	return apiErr
}
