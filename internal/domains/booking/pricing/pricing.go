// Package pricing computes the total price of a booking from the listing and the
// user's draft. It is shared by the booking form and the backend create path.
package pricing

import (
	"gooman/internal/domains/listing/model"
	"gooman/shared/timezone"
	"math"
)

const hoursPerDay = 24

// Draft is what the user has entered so far. Dates are YYYY-MM-DD; CheckOut only applies to hotels.
type Draft struct {
	CheckIn  string
	CheckOut string
	Guests   int
}

// Nights counts the calendar days between two YYYY-MM-DD dates, rounded up.
// Unparseable dates count as zero nights.
func Nights(checkIn, checkOut string) int {
	in, err := timezone.ParseDate(checkIn)
	if err != nil {
		return 0
	}

	out, err := timezone.ParseDate(checkOut)
	if err != nil {
		return 0
	}

	return int(math.Ceil(out.Sub(in).Hours() / hoursPerDay))
}

// Total prices a draft against a listing. A hotel stay with no positive night count,
// or an unknown listing, prices to zero.
func Total(listing model.Listing, draft Draft) float64 {
	switch l := deref(listing).(type) {
	case model.Hotel:
		nights := Nights(draft.CheckIn, draft.CheckOut)
		if nights <= 0 {
			return 0
		}

		return float64(nights) * l.PricePerNight
	case model.Guide:
		return l.DailyRate()
	case model.Experience:
		return l.Price * float64(draft.Guests)
	default:
		return 0
	}
}

func deref(listing model.Listing) model.Listing {
	switch l := listing.(type) {
	case *model.Hotel:
		if l != nil {
			return *l
		}
	case *model.Guide:
		if l != nil {
			return *l
		}
	case *model.Experience:
		if l != nil {
			return *l
		}
	default:
		return listing
	}

	return nil
}
