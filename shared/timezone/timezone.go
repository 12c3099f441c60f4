package timezone

import (
	"gooman/config"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var appLocation *time.Location

func init() {
	appLocation = load(config.Get().App.Timezone)
}

// load resolves an IANA zone name, falling back to UTC when it is empty or unknown.
func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		name = defaultZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// location is the configured zone, UTC until init has run.
func location() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Now is the wall clock in the application zone.
func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Parse reads value in the application zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// CalendarDay returns UTC midnight of the calendar day t falls on in its own location.
// Day arithmetic on the result is free of DST and local-midnight drift.
func CalendarDay(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD value as a UTC calendar day.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, value, time.UTC)
}

// TodayIn returns the current calendar day in loc formatted as YYYY-MM-DD.
func TodayIn(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return now.In(loc).Format(time.DateOnly)
}
