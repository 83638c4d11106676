package selection

import "time"

// DayKey identifies one calendar day. It is a plain date triple rather than a
// midnight instant so map keys never depend on zone or DST normalization;
// projection back to wall-clock time takes an explicit location.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDayKey normalizes an instant to the calendar day it falls on in the
// instant's own location.
func NewDayKey(t time.Time) DayKey {
	year, month, day := t.Date()
	return DayKey{Year: year, Month: month, Day: day}
}

// Start returns the local midnight instant opening the day in loc.
func (k DayKey) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// Before orders day keys chronologically.
func (k DayKey) Before(other DayKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

// String renders the day as yyyy-MM-dd.
func (k DayKey) String() string {
	return k.Start(time.UTC).Format("2006-01-02")
}
