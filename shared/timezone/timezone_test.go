package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	assert.Equal(t, time.UTC, load(""))
	assert.Equal(t, time.UTC, load("Mars/Olympus_Mons"))
	assert.Equal(t, "UTC", load("UTC").String())
}

func TestAppClock(t *testing.T) {
	assert.NotNil(t, GetLocation())
	assert.Equal(t, GetLocation(), Now().Location())

	instant := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, instant.Equal(ToAppTime(instant)))
	assert.NotEmpty(t, Format(instant, time.RFC3339))

	parsed, err := Parse(time.DateOnly, "2024-01-01")
	assert.NoError(t, err)
	assert.Equal(t, GetLocation(), parsed.Location())
}

func TestCalendarDay(t *testing.T) {
	muscat := time.FixedZone("GST", 4*60*60)

	// 00:30 local on March 10th is still March 9th in UTC.
	local := time.Date(2025, 3, 10, 0, 30, 0, 0, muscat)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), CalendarDay(local))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-01-31")

	assert.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = ParseDate("31/01/2025")
	assert.Error(t, err)
}

func TestTodayIn(t *testing.T) {
	now := time.Date(2025, 6, 30, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-07-01", TodayIn(now, time.FixedZone("GST", 4*60*60)))
	assert.Equal(t, "2025-06-30", TodayIn(now, time.UTC))
}
