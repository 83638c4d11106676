package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/example/slotshare/internal/calendar"
	"github.com/example/slotshare/internal/selection"
	"github.com/example/slotshare/internal/slotgrid"
)

// DayState describes the outcome of a day build. The states mirror the
// loading lifecycle; a synchronous LoadDay call only ever returns Loaded,
// PermissionDenied, or Failed, while Loading exists for callers that drive an
// asynchronous surface around the service.
type DayState int

const (
	DayStateLoading DayState = iota
	DayStateLoaded
	DayStatePermissionDenied
	DayStateFailed
)

// String returns a stable label for logging.
func (s DayState) String() string {
	switch s {
	case DayStateLoading:
		return "loading"
	case DayStateLoaded:
		return "loaded"
	case DayStatePermissionDenied:
		return "permission_denied"
	case DayStateFailed:
		return "failed"
	}
	return "unknown"
}

// DayView is the explicit state-transition result of a day build, replacing
// callback-based notification: callers branch on State and render Slots when
// Loaded. Err is set for the Failed state.
type DayView struct {
	Day   selection.DayKey
	State DayState
	Slots []slotgrid.TimeSlot
	Err   error
}

// DayService builds per-day slot grids from an event source and tracks the
// user's slot selections across days. It owns no goroutines and must be
// driven serially by a single caller.
type DayService struct {
	source calendar.EventSource
	store  *selection.Store
	loc    *time.Location
	logger *slog.Logger

	current selection.DayKey
	slots   []slotgrid.TimeSlot
}

// NewDayService wires a day builder over the given event source. A nil
// location defaults to the process local zone.
func NewDayService(source calendar.EventSource, loc *time.Location, logger *slog.Logger) *DayService {
	if loc == nil {
		loc = time.Local
	}
	return &DayService{
		source: source,
		store:  selection.NewStore(),
		loc:    loc,
		logger: defaultLogger(logger),
	}
}

// LoadDay fetches events for the day containing date, rebuilds the slot grid
// and returns the resulting view. Supplier failures surface as
// PermissionDenied or Failed and never as an empty grid. Selections recorded
// for the day previously are kept as-is; availability is re-checked only on
// the next toggle.
func (d *DayService) LoadDay(ctx context.Context, date time.Time) DayView {
	day := selection.NewDayKey(date.In(d.loc))
	dayStart := day.Start(d.loc)
	logger := serviceLogger(ctx, d.logger, "day", "load", "day", day.String())

	events, err := d.source.FetchEvents(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		state := DayStateFailed
		if errors.Is(err, calendar.ErrPermissionDenied) {
			state = DayStatePermissionDenied
		}
		logger.ErrorContext(ctx, "day build failed", "state", state.String(), "error", err)
		return DayView{Day: day, State: state, Err: err}
	}

	d.current = day
	d.slots = slotgrid.BuildSlots(dayStart, events)
	logger.InfoContext(ctx, "day built", "events", len(events))
	return DayView{Day: day, State: DayStateLoaded, Slots: d.slots}
}

// GoToPreviousDay reloads the day before the current one.
func (d *DayService) GoToPreviousDay(ctx context.Context) DayView {
	return d.LoadDay(ctx, d.current.Start(d.loc).AddDate(0, 0, -1))
}

// GoToNextDay reloads the day after the current one.
func (d *DayService) GoToNextDay(ctx context.Context) DayView {
	return d.LoadDay(ctx, d.current.Start(d.loc).AddDate(0, 0, 1))
}

// CurrentDay returns the most recently loaded day key.
func (d *DayService) CurrentDay() selection.DayKey { return d.current }

// Toggle flips the selection at index for the current day, validating against
// the current grid. Occupied and out-of-range indices are ignored.
func (d *DayService) Toggle(index int) {
	d.store.Toggle(d.current, index, d.slots)
}

// IsSelected reports whether index is selected on the current day.
func (d *DayService) IsSelected(index int) bool {
	return d.store.IsSelected(d.current, index)
}

// HasAnySelection reports whether any day carries a selection.
func (d *DayService) HasAnySelection() bool {
	return d.store.HasAnySelection()
}

// Ranges compresses all selections into contiguous date-time ranges.
func (d *DayService) Ranges() []selection.Range {
	return selection.Compress(d.store, d.loc)
}

// SelectedSlots expands all selections into individual slots.
func (d *DayService) SelectedSlots() []selection.SelectedSlot {
	return selection.SelectedSlots(d.store, d.loc)
}

// DaySummaries returns per-day chip data for the footer.
func (d *DayService) DaySummaries() []selection.DaySummary {
	return selection.DaySummaries(d.store)
}

// Shareable exports the compressed selections as the outbound payload.
func (d *DayService) Shareable() selection.ShareableSchedule {
	return selection.Export(d.Ranges(), d.loc)
}
