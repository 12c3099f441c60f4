// Package timezone pins the application clock to APP_TIMEZONE (an IANA name, UTC when
// unset or unknown). Now, Format and Parse work in that zone.
//
// Booking dates are calendar days: ParseDate reads YYYY-MM-DD as UTC midnight so night
// counts never drift across DST or local-midnight boundaries, and TodayIn picks the
// current day in a caller-supplied zone.
package timezone
