package report

import (
	"fmt"
	"time"
)

// Today is the date token resolving to the current local calendar day.
// The match is exact and case-sensitive.
const Today = "today"

const dateLayout = "2006-01-02"

// ParseDate resolves a date token to a calendar date. "today" maps to
// now's local date and never fails; any other token must be a valid
// zero-padded YYYY-MM-DD Gregorian date.
func ParseDate(token string, now time.Time) (time.Time, error) {
	if token == Today {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	date, err := time.ParseInLocation(dateLayout, token, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", token, err)
	}
	return date, nil
}
