package client

import (
	"context"
	"errors"
	"fmt"
	bookingModel "gooman/internal/domains/booking/model"
	bookingDto "gooman/internal/domains/booking/model/dto"
	"gooman/internal/domains/booking/pricing"
	listingModel "gooman/internal/domains/listing/model"
	"gooman/shared/constant"
	"gooman/shared/timezone"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	MinGuests = 1
	MaxGuests = 10

	FieldCheckIn  = "check_in_date"
	FieldCheckOut = "check_out_date"
	FieldListing  = "listing"

	msgDatesRequired = "Please select check-in and check-out dates."
)

var (
	ErrSubmissionInFlight = errors.New("a booking submission is already in flight")
	ErrFormClosed         = errors.New("booking form is closed")
)

// ValidationError names the draft field that stopped a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type FormState int

const (
	StateIdle FormState = iota
	StateValidating
	StateRejected
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s FormState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Notice is a transient message for the user.
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

type Notifier interface {
	Notify(notice Notice)
}

// BookingCreator is the part of API the booking form depends on.
type BookingCreator interface {
	CreateBooking(ctx context.Context, accessToken string, req bookingDto.CreateBookingRequest) (bookingDto.BookingResponse, error)
}

type FormOption func(*BookingForm)

// WithLocation sets the zone "today" is taken in for guide and experience bookings.
func WithLocation(loc *time.Location) FormOption {
	return func(f *BookingForm) {
		f.location = loc
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) FormOption {
	return func(f *BookingForm) {
		f.now = now
	}
}

// WithStateObserver is called on every state transition.
func WithStateObserver(observe func(FormState)) FormOption {
	return func(f *BookingForm) {
		f.observe = observe
	}
}

// BookingForm drives one listing's booking from draft to a single create request.
type BookingForm struct {
	mu       sync.Mutex
	listing  listingModel.Listing
	draft    pricing.Draft
	state    FormState
	inFlight bool

	session   *Session
	creator   BookingCreator
	notifier  Notifier
	navigator Navigator
	location  *time.Location
	now       func() time.Time
	observe   func(FormState)
}

func NewBookingForm(
	listing listingModel.Listing,
	session *Session,
	creator BookingCreator,
	notifier Notifier,
	navigator Navigator,
	opts ...FormOption,
) *BookingForm {
	form := &BookingForm{
		listing:   listing,
		draft:     pricing.Draft{Guests: MinGuests},
		session:   session,
		creator:   creator,
		notifier:  notifier,
		navigator: navigator,
		location:  timezone.GetLocation(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(form)
	}

	return form
}

func (f *BookingForm) SetCheckIn(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft.CheckIn = date
}

func (f *BookingForm) SetCheckOut(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft.CheckOut = date
}

// SetGuests clamps n to [MinGuests, MaxGuests].
func (f *BookingForm) SetGuests(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft.Guests = min(max(n, MinGuests), MaxGuests)
}

func (f *BookingForm) Draft() pricing.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.draft
}

// Price is the total the form would submit right now.
func (f *BookingForm) Price() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return pricing.Total(f.listing, f.withDefaults(f.draft))
}

func (f *BookingForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Submit validates the draft and sends exactly one create request. It is not retried;
// a failed submission leaves the form open for another attempt. Observers, notices and
// navigation run without the form lock held, so they may read the form back.
func (f *BookingForm) Submit(ctx context.Context) (bookingDto.BookingResponse, error) {
	f.mu.Lock()

	switch {
	case f.state == StateSucceeded:
		f.mu.Unlock()

		return bookingDto.BookingResponse{}, ErrFormClosed
	case f.inFlight:
		f.mu.Unlock()

		return bookingDto.BookingResponse{}, ErrSubmissionInFlight
	}

	f.inFlight = true
	f.mu.Unlock()

	f.transition(StateValidating)

	identity, err := f.session.RequireOrRedirect()
	if err != nil {
		f.reject(Notice{Title: "Sign in required", Description: "Please sign in to make a booking.", Destructive: true})

		return bookingDto.BookingResponse{}, err
	}

	f.mu.Lock()
	req, verr := f.request(identity)
	f.mu.Unlock()

	if verr != nil {
		title := "Dates required"
		if verr.Field == FieldListing {
			title = "Booking unavailable"
		}

		f.reject(Notice{Title: title, Description: verr.Message, Destructive: true})

		return bookingDto.BookingResponse{}, verr
	}

	f.transition(StateSubmitting)

	res, err := f.creator.CreateBooking(ctx, f.session.accessToken(), req)
	if err != nil {
		log.Error().Err(err).Str("booking_type", req.BookingType).Msg("booking submission failed")

		f.transition(StateFailed)
		f.notify(Notice{Title: "Booking failed", Description: err.Error(), Destructive: true})
		f.settle(StateIdle)

		return bookingDto.BookingResponse{}, fmt.Errorf("creating booking: %w", err)
	}

	f.settle(StateSucceeded)
	f.notify(Notice{Title: "Booking confirmed!", Description: "Your booking has been submitted successfully."})

	if f.navigator != nil {
		f.navigator.Navigate(RouteBookings)
	}

	return res, nil
}

// request builds the create body. Callers hold f.mu.
func (f *BookingForm) request(identity Identity) (bookingDto.CreateBookingRequest, *ValidationError) {
	if f.listing == nil {
		return bookingDto.CreateBookingRequest{}, &ValidationError{Field: FieldListing, Message: "no listing selected"}
	}

	kind := f.listing.Kind()
	draft := f.draft

	if kind == listingModel.KindHotel {
		if draft.CheckIn == constant.Empty {
			return bookingDto.CreateBookingRequest{}, &ValidationError{Field: FieldCheckIn, Message: msgDatesRequired}
		}

		if draft.CheckOut == constant.Empty {
			return bookingDto.CreateBookingRequest{}, &ValidationError{Field: FieldCheckOut, Message: msgDatesRequired}
		}
	}

	draft = f.withDefaults(draft)

	req := bookingDto.CreateBookingRequest{
		UserID:      identity.ID,
		BookingType: string(kind),
		CheckInDate: draft.CheckIn,
		Guests:      draft.Guests,
		TotalPrice:  pricing.Total(f.listing, draft),
		Status:      string(bookingModel.StatusPending),
	}

	switch kind {
	case listingModel.KindHotel:
		req.HotelID = f.listing.ListingID()
		req.CheckOutDate = draft.CheckOut
	case listingModel.KindGuide:
		req.GuideID = f.listing.ListingID()
	case listingModel.KindExperience:
		req.ExperienceID = f.listing.ListingID()
	}

	return req, nil
}

func (f *BookingForm) withDefaults(draft pricing.Draft) pricing.Draft {
	if f.listing != nil && f.listing.Kind() != listingModel.KindHotel && draft.CheckIn == constant.Empty {
		draft.CheckIn = timezone.TodayIn(f.now(), f.location)
	}

	return draft
}

func (f *BookingForm) reject(notice Notice) {
	f.transition(StateRejected)
	f.notify(notice)
	f.settle(StateIdle)
}

func (f *BookingForm) transition(state FormState) {
	f.mu.Lock()
	f.state = state
	f.mu.Unlock()

	f.emit(state)
}

// settle ends the attempt: the form takes its resting state and accepts submissions again.
func (f *BookingForm) settle(state FormState) {
	f.mu.Lock()
	f.state = state
	f.inFlight = false
	f.mu.Unlock()

	f.emit(state)
}

func (f *BookingForm) emit(state FormState) {
	if f.observe != nil {
		f.observe(state)
	}
}

func (f *BookingForm) notify(notice Notice) {
	if f.notifier != nil {
		f.notifier.Notify(notice)
	}
}
