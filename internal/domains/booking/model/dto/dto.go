package dto

import (
	"errors"
	"fmt"
	"gooman/internal/domains/booking/model"
	listingModel "gooman/internal/domains/listing/model"
	"gooman/shared"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	gModel "gooman/shared/model"
	"gooman/shared/timezone"
	"time"

	"github.com/google/uuid"
)

var (
	ErrReferenceMismatch = errors.New("exactly one of hotel_id, guide_id or experience_id must be set and match booking_type")
)

type CreateBookingRequest struct {
	UserID       string  `json:"user_id,omitempty"        validate:"omitempty,uuid"`
	BookingType  string  `json:"booking_type"             validate:"required,oneof=hotel guide experience"`
	HotelID      string  `json:"hotel_id,omitempty"       validate:"omitempty,uuid"`
	GuideID      string  `json:"guide_id,omitempty"       validate:"omitempty,uuid"`
	ExperienceID string  `json:"experience_id,omitempty"  validate:"omitempty,uuid"`
	CheckInDate  string  `json:"check_in_date,omitempty"  validate:"omitempty,dateonly"`
	CheckOutDate string  `json:"check_out_date,omitempty" validate:"omitempty,dateonly"`
	Guests       int     `json:"guests"                   validate:"required,min=1,max=10"`
	TotalPrice   float64 `json:"total_price"              validate:"min=0"`
	Status       string  `json:"status,omitempty"         validate:"omitempty,oneof=pending"`
	Notes        string  `json:"notes,omitempty"          validate:"omitempty,max=1000"`
}

// Reference returns the listing id matching the booking type. Any other reference being set
// is a mismatch.
func (c *CreateBookingRequest) Reference() (string, error) {
	refs := map[listingModel.Kind]string{
		listingModel.KindHotel:      c.HotelID,
		listingModel.KindGuide:      c.GuideID,
		listingModel.KindExperience: c.ExperienceID,
	}

	kind := listingModel.Kind(c.BookingType)

	for k, ref := range refs {
		if k != kind && ref != constant.Empty {
			return "", ErrReferenceMismatch
		}
	}

	if refs[kind] == constant.Empty {
		return "", ErrReferenceMismatch
	}

	return refs[kind], nil
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	ref, err := c.Reference()
	if err != nil {
		return model.Booking{}, err
	}

	checkIn, err := optionalDate(c.CheckInDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("check_in_date: %w", err)
	}

	checkOut, err := optionalDate(c.CheckOutDate)
	if err != nil {
		return model.Booking{}, fmt.Errorf("check_out_date: %w", err)
	}

	now := timezone.Now()
	booking := model.Booking{
		ID:           uuid.NewString(),
		UserID:       user,
		BookingType:  c.BookingType,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       c.Guests,
		TotalPrice:   c.TotalPrice,
		Status:       string(model.StatusPending),
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if c.Notes != constant.Empty {
		booking.Notes = &c.Notes
	}

	switch listingModel.Kind(c.BookingType) {
	case listingModel.KindHotel:
		booking.HotelID = &ref
	case listingModel.KindGuide:
		booking.GuideID = &ref
	case listingModel.KindExperience:
		booking.ExperienceID = &ref
	}

	return booking, nil
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status"          validate:"required,oneof=confirmed cancelled completed"`
	Notes  string `db:"notes"  json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type BookingResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	BookingType  string  `json:"booking_type"`
	HotelID      *string `json:"hotel_id"`
	GuideID      *string `json:"guide_id"`
	ExperienceID *string `json:"experience_id"`
	CheckInDate  *string `json:"check_in_date"`
	CheckOutDate *string `json:"check_out_date"`
	Guests       int     `json:"guests"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
	Title        string  `json:"title,omitempty"`
	Location     string  `json:"location,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.BookingType = m.BookingType
	r.HotelID = m.HotelID
	r.GuideID = m.GuideID
	r.ExperienceID = m.ExperienceID
	r.CheckInDate = formatDate(m.CheckInDate)
	r.CheckOutDate = formatDate(m.CheckOutDate)
	r.Guests = m.Guests
	r.TotalPrice = m.TotalPrice
	r.Status = m.Status
	r.Notes = m.Notes
	r.Metadata.FromModel(m.Metadata)
}

func (r *BookingResponse) FromDetail(m model.Detail) {
	r.FromModel(m.Booking)
	r.Title = m.Title()
	r.Location = m.Location()
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Detail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromDetail(mod)
	}
}

// Event is published on every booking write.
type Event struct {
	BookingID   string  `json:"booking_id"`
	UserID      string  `json:"user_id"`
	BookingType string  `json:"booking_type"`
	ListingID   string  `json:"listing_id"`
	Status      string  `json:"status"`
	TotalPrice  float64 `json:"total_price"`
	CheckInDate *string `json:"check_in_date"`
	OccurredAt  string  `json:"occurred_at"`
}

func (e *Event) FromModel(m model.Booking) {
	e.BookingID = m.ID
	e.UserID = m.UserID
	e.BookingType = m.BookingType
	e.ListingID = m.ListingID()
	e.Status = m.Status
	e.TotalPrice = m.TotalPrice
	e.CheckInDate = formatDate(m.CheckInDate)
	e.OccurredAt = timezone.Format(timezone.Now(), constant.DateFormat)
}

func optionalDate(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil
	}

	date, err := timezone.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return &date, nil
}

func formatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}

	formatted := date.Format(constant.DateOnlyFormat)

	return &formatted
}
