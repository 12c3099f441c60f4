package model

import (
	"gooman/shared/model"

	"github.com/lib/pq"
)

// Kind discriminates the bookable listing variants. Its values double as bookings.booking_type.
type Kind string

const (
	KindHotel      Kind = "hotel"
	KindGuide      Kind = "guide"
	KindExperience Kind = "experience"
)

func (k Kind) Valid() bool {
	switch k {
	case KindHotel, KindGuide, KindExperience:
		return true
	default:
		return false
	}
}

const (
	EntityHotel      = "hotel"
	EntityGuide      = "guide"
	EntityExperience = "experience"

	TableHotels      = "hotels"
	TableGuides      = "local_guides"
	TableExperiences = "experiences"

	FieldID       = "id"
	FieldIsActive = "is_active"
	FieldRating   = "rating"
)

// Listing is a bookable item. The set of implementations is closed.
type Listing interface {
	Kind() Kind
	ListingID() string
	DisplayName() string
	sealed()
}

type Hotel struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Description   *string        `db:"description"`
	Location      string         `db:"location"`
	Address       *string        `db:"address"`
	PricePerNight float64        `db:"price_per_night"`
	Rating        *float64       `db:"rating"`
	Amenities     pq.StringArray `db:"amenities"`
	Images        pq.StringArray `db:"images"`
	IsActive      *bool          `db:"is_active"`
	model.Metadata
}

func (h Hotel) Kind() Kind          { return KindHotel }
func (h Hotel) ListingID() string   { return h.ID }
func (h Hotel) DisplayName() string { return h.Name }
func (h Hotel) sealed()             {}

type Guide struct {
	ID          string         `db:"id"`
	UserID      *string        `db:"user_id"`
	Name        string         `db:"name"`
	Bio         *string        `db:"bio"`
	AvatarURL   *string        `db:"avatar_url"`
	PricePerDay *float64       `db:"price_per_day"`
	Rating      *float64       `db:"rating"`
	Languages   pq.StringArray `db:"languages"`
	Specialties pq.StringArray `db:"specialties"`
	IsVerified  *bool          `db:"is_verified"`
	IsActive    *bool          `db:"is_active"`
	model.Metadata
}

func (g Guide) Kind() Kind          { return KindGuide }
func (g Guide) ListingID() string   { return g.ID }
func (g Guide) DisplayName() string { return g.Name }
func (g Guide) sealed()             {}

// DailyRate is the flat booking price, zero when the guide has not set one.
func (g Guide) DailyRate() float64 {
	if g.PricePerDay == nil {
		return 0
	}

	return *g.PricePerDay
}

type Experience struct {
	ID            string         `db:"id"`
	GuideID       *string        `db:"guide_id"`
	Title         string         `db:"title"`
	Description   *string        `db:"description"`
	Location      *string        `db:"location"`
	Price         float64        `db:"price"`
	DurationHours *float64       `db:"duration_hours"`
	MaxGroupSize  *int           `db:"max_group_size"`
	Images        pq.StringArray `db:"images"`
	IsActive      *bool          `db:"is_active"`
	model.Metadata
}

func (e Experience) Kind() Kind          { return KindExperience }
func (e Experience) ListingID() string   { return e.ID }
func (e Experience) DisplayName() string { return e.Title }
func (e Experience) sealed()             {}
