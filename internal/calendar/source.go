package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/slotshare/internal/slotgrid"
)

// EventSource supplies the calendar events falling inside a time window. Day
// builds call it once with [dayStart, dayStart+24h). Implementations must
// report failures through the named categories below rather than returning an
// empty list, so callers never mistake an outage for a free day.
type EventSource interface {
	FetchEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]slotgrid.CalendarEvent, error)
}

// ErrPermissionDenied indicates the source refused access to the calendar.
var ErrPermissionDenied = errors.New("calendar: permission denied")

// TransportError wraps a network-level failure while reaching a source.
type TransportError struct {
	Source string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calendar: fetching %s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a malformed payload from a source.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("calendar: decoding %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
