package model

import (
	listingModel "gooman/internal/domains/listing/model"
	"gooman/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldBookingType  = "booking_type"
	FieldHotelID      = "hotel_id"
	FieldGuideID      = "guide_id"
	FieldExperienceID = "experience_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldGuests       = "guests"
	FieldTotalPrice   = "total_price"
	FieldStatus       = "status"
	FieldNotes        = "notes"
)

// Cache key prefixes shared by the API and the event worker.
const (
	CacheKeyBooking    = "booking:get"
	CacheKeyMyBookings = "booking:mine"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type Booking struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	BookingType  string     `db:"booking_type"`
	HotelID      *string    `db:"hotel_id"`
	GuideID      *string    `db:"guide_id"`
	ExperienceID *string    `db:"experience_id"`
	CheckInDate  *time.Time `db:"check_in_date"`
	CheckOutDate *time.Time `db:"check_out_date"`
	Guests       int        `db:"guests"`
	TotalPrice   float64    `db:"total_price"`
	Status       string     `db:"status"`
	Notes        *string    `db:"notes"`
	model.Metadata
}

// ListingID returns the one foreign reference matching the booking type.
func (b Booking) ListingID() string {
	var ref *string

	switch listingModel.Kind(b.BookingType) {
	case listingModel.KindHotel:
		ref = b.HotelID
	case listingModel.KindGuide:
		ref = b.GuideID
	case listingModel.KindExperience:
		ref = b.ExperienceID
	}

	if ref == nil {
		return ""
	}

	return *ref
}

// Detail is a booking joined with the display columns of the listing it references.
type Detail struct {
	Booking
	HotelName          *string `db:"hotel_name"          table:"hotels"       column:"name"`
	HotelLocation      *string `db:"hotel_location"      table:"hotels"       column:"location"`
	GuideName          *string `db:"guide_name"          table:"local_guides" column:"name"`
	ExperienceTitle    *string `db:"experience_title"    table:"experiences"  column:"title"`
	ExperienceLocation *string `db:"experience_location" table:"experiences"  column:"location"`
}

func (Detail) GetJoinQuery() string {
	return "LEFT JOIN hotels ON hotels.id = bookings.hotel_id " +
		"LEFT JOIN local_guides ON local_guides.id = bookings.guide_id " +
		"LEFT JOIN experiences ON experiences.id = bookings.experience_id"
}

// Title is the heading shown for a booking in the user's list.
func (d Detail) Title() string {
	switch listingModel.Kind(d.BookingType) {
	case listingModel.KindHotel:
		if d.HotelName != nil {
			return *d.HotelName
		}
	case listingModel.KindGuide:
		if d.GuideName != nil {
			return "Guide: " + *d.GuideName
		}
	case listingModel.KindExperience:
		if d.ExperienceTitle != nil {
			return *d.ExperienceTitle
		}
	}

	return "Booking"
}

// Location is empty for guide bookings and for listings without one.
func (d Detail) Location() string {
	var location *string

	switch listingModel.Kind(d.BookingType) {
	case listingModel.KindHotel:
		location = d.HotelLocation
	case listingModel.KindExperience:
		location = d.ExperienceLocation
	}

	if location == nil {
		return ""
	}

	return *location
}
