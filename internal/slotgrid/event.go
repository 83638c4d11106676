package slotgrid

import "time"

// CalendarEvent is a read-only event handed to the grid builder by an event
// supplier. Start < End is expected but not guaranteed; the builder clips
// defensively.
type CalendarEvent struct {
	ID            string
	Title         string
	Start         time.Time
	End           time.Time
	AllDay        bool
	Location      string
	CalendarName  string
	CalendarColor string
}
