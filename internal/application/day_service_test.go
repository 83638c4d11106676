package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/slotshare/internal/calendar"
	"github.com/example/slotshare/internal/selection"
	"github.com/example/slotshare/internal/slotgrid"
)

type eventSourceStub struct {
	events map[string][]slotgrid.CalendarEvent
	err    error
	calls  int
}

func (s *eventSourceStub) FetchEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]slotgrid.CalendarEvent, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.events[windowStart.Format("2006-01-02")], nil
}

func dayEvent(id string, day time.Time, startHour, endHour int) slotgrid.CalendarEvent {
	return slotgrid.CalendarEvent{
		ID:    id,
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestDayServiceLoadDay(t *testing.T) {
	date := time.Date(2026, time.January, 13, 15, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.UTC)

	t.Run("builds the grid for the requested day", func(t *testing.T) {
		source := &eventSourceStub{events: map[string][]slotgrid.CalendarEvent{
			"2026-01-13": {dayEvent("a", dayStart, 9, 10)},
		}}
		service := NewDayService(source, time.UTC, nil)

		view := service.LoadDay(context.Background(), date)

		if view.State != DayStateLoaded {
			t.Fatalf("expected loaded state, got %s", view.State)
		}
		if len(view.Slots) != slotgrid.SlotsPerDay {
			t.Fatalf("expected %d slots, got %d", slotgrid.SlotsPerDay, len(view.Slots))
		}
		if view.Slots[18].Content.Kind() != slotgrid.KindEvent {
			t.Fatalf("expected event at slot 18, got %s", view.Slots[18].Content.Kind())
		}
		want := selection.DayKey{Year: 2026, Month: time.January, Day: 13}
		if view.Day != want {
			t.Fatalf("expected day %v, got %v", want, view.Day)
		}
		if service.CurrentDay() != want {
			t.Fatalf("expected current day %v, got %v", want, service.CurrentDay())
		}
	})

	t.Run("permission denied surfaces as its own state", func(t *testing.T) {
		source := &eventSourceStub{err: fmt.Errorf("feed work: %w", calendar.ErrPermissionDenied)}
		service := NewDayService(source, time.UTC, nil)

		view := service.LoadDay(context.Background(), date)

		if view.State != DayStatePermissionDenied {
			t.Fatalf("expected permission denied state, got %s", view.State)
		}
		if !errors.Is(view.Err, calendar.ErrPermissionDenied) {
			t.Fatalf("expected wrapped permission error, got %v", view.Err)
		}
		if view.Slots != nil {
			t.Fatalf("expected no slots on failure, got %d", len(view.Slots))
		}
	})

	t.Run("other failures surface as failed", func(t *testing.T) {
		source := &eventSourceStub{err: errors.New("connection refused")}
		service := NewDayService(source, time.UTC, nil)

		view := service.LoadDay(context.Background(), date)

		if view.State != DayStateFailed {
			t.Fatalf("expected failed state, got %s", view.State)
		}
		if view.Err == nil {
			t.Fatal("expected error on failed view")
		}
	})

	t.Run("day navigation reloads adjacent days", func(t *testing.T) {
		source := &eventSourceStub{events: map[string][]slotgrid.CalendarEvent{}}
		service := NewDayService(source, time.UTC, nil)

		service.LoadDay(context.Background(), date)
		next := service.GoToNextDay(context.Background())
		if next.Day != (selection.DayKey{Year: 2026, Month: time.January, Day: 14}) {
			t.Fatalf("expected next day, got %v", next.Day)
		}

		prev := service.GoToPreviousDay(context.Background())
		if prev.Day != (selection.DayKey{Year: 2026, Month: time.January, Day: 13}) {
			t.Fatalf("expected previous day, got %v", prev.Day)
		}
		if source.calls != 3 {
			t.Fatalf("expected 3 fetches, got %d", source.calls)
		}
	})
}

func TestDayServiceSelection(t *testing.T) {
	date := time.Date(2026, time.January, 13, 8, 0, 0, 0, time.UTC)
	dayStart := time.Date(2026, time.January, 13, 0, 0, 0, 0, time.UTC)

	newLoaded := func(t *testing.T) *DayService {
		t.Helper()
		source := &eventSourceStub{events: map[string][]slotgrid.CalendarEvent{
			"2026-01-13": {dayEvent("busy", dayStart, 9, 10)},
		}}
		service := NewDayService(source, time.UTC, nil)
		if view := service.LoadDay(context.Background(), date); view.State != DayStateLoaded {
			t.Fatalf("load failed: %v", view.Err)
		}
		return service
	}

	t.Run("toggle respects availability", func(t *testing.T) {
		service := newLoaded(t)

		service.Toggle(18)
		if service.IsSelected(18) {
			t.Fatal("occupied slot must not be selectable")
		}

		service.Toggle(20)
		if !service.IsSelected(20) {
			t.Fatal("available slot should be selected")
		}
		if !service.HasAnySelection() {
			t.Fatal("expected a selection to be recorded")
		}
	})

	t.Run("selections survive reloading the day", func(t *testing.T) {
		service := newLoaded(t)

		service.Toggle(20)
		service.LoadDay(context.Background(), date)

		if !service.IsSelected(20) {
			t.Fatal("reload must keep existing selections")
		}
	})

	t.Run("shareable export carries compressed ranges", func(t *testing.T) {
		service := newLoaded(t)

		service.Toggle(20)
		service.Toggle(21)
		service.Toggle(30)

		ranges := service.Ranges()
		if len(ranges) != 2 {
			t.Fatalf("expected 2 ranges, got %d", len(ranges))
		}

		schedule := service.Shareable()
		if len(schedule.Slots) != 2 {
			t.Fatalf("expected 2 shareable slots, got %d", len(schedule.Slots))
		}
		if schedule.Slots[0].Date != "2026-01-13" || schedule.Slots[0].StartTime != "10:00" || schedule.Slots[0].EndTime != "11:00" {
			t.Fatalf("unexpected first slot: %+v", schedule.Slots[0])
		}
		if schedule.Timezone != "UTC" {
			t.Fatalf("expected UTC timezone tag, got %q", schedule.Timezone)
		}

		summaries := service.DaySummaries()
		if len(summaries) != 1 || summaries[0].SlotCount != 3 {
			t.Fatalf("unexpected summaries: %+v", summaries)
		}
	})
}
