package roster

import (
	"math"
	"strings"
	"time"
)

// DayLayout is the date format used by the roster export ("15 Jan 2020").
// A one-digit day is accepted as well.
const DayLayout = "2 Jan 2006"

// NeverAccessed is the last-access value of accounts that never logged in.
const NeverAccessed = "never accessed"

// ParseDay parses a roster date in loc. The boolean is false when raw is not a date.
func ParseDay(raw string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(DayLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, false
	}

	return day, true
}

type LastSeen struct {
	Never bool
	Date  time.Time
}

// ParseLastSeen reads the last-access column: either the "Never accessed"
// sentinel or a roster date.
func ParseLastSeen(raw string, loc *time.Location) (LastSeen, bool) {
	if strings.EqualFold(strings.TrimSpace(raw), NeverAccessed) {
		return LastSeen{Never: true}, true
	}

	day, ok := ParseDay(raw, loc)
	if !ok {
		return LastSeen{}, false
	}

	return LastSeen{Date: day}, true
}

// DaysSince returns the number of whole wall-clock days between since and now,
// each read in its own location. Daylight saving shifts don't shorten a day.
// It is negative when since is in the future.
func DaysSince(since time.Time, now time.Time) int {
	return int(math.Floor(wallClock(now).Sub(wallClock(since)).Hours() / 24))
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
