package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/example/slotshare/internal/persistence"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	storage, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { storage.Close() })

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return storage
}

func testSchedule() persistence.Schedule {
	return persistence.Schedule{
		Timezone: "Asia/Tokyo",
		Status:   persistence.StatusPending,
		Slots: []persistence.Slot{
			{Date: "2026-01-14", StartTime: "09:00", EndTime: "10:00"},
			{Date: "2026-01-15", StartTime: "13:00", EndTime: "13:30"},
		},
	}
}

func TestCreateAndGetSchedule(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	created, err := storage.CreateSchedule(ctx, testSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if created.SelectedSlots != nil {
		t.Fatal("new schedule must have no selection")
	}

	got, err := storage.GetSchedule(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSchedule returned error: %v", err)
	}
	if got.Timezone != "Asia/Tokyo" {
		t.Fatalf("expected timezone round trip, got %q", got.Timezone)
	}
	if len(got.Slots) != 2 || got.Slots[0].StartTime != "09:00" {
		t.Fatalf("unexpected slots %+v", got.Slots)
	}
	if got.Status != persistence.StatusPending {
		t.Fatalf("expected pending status, got %q", got.Status)
	}
	if got.SelectedSlots != nil {
		t.Fatal("expected nil selected slots before confirmation")
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestGetScheduleNotFound(t *testing.T) {
	storage := newTestStorage(t)

	if _, err := storage.GetSchedule(context.Background(), 99); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSelection(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	created, err := storage.CreateSchedule(ctx, testSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule returned error: %v", err)
	}

	selected := []persistence.Slot{{Date: "2026-01-14", StartTime: "09:00", EndTime: "10:00"}}
	updated, err := storage.UpdateSelection(ctx, created.ID, selected, persistence.StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateSelection returned error: %v", err)
	}
	if updated.Status != persistence.StatusConfirmed {
		t.Fatalf("expected confirmed status, got %q", updated.Status)
	}
	if len(updated.SelectedSlots) != 1 || updated.SelectedSlots[0].Date != "2026-01-14" {
		t.Fatalf("unexpected selected slots %+v", updated.SelectedSlots)
	}
	if len(updated.Slots) != 2 {
		t.Fatalf("proposed slots must survive the update, got %+v", updated.Slots)
	}

	t.Run("unknown id", func(t *testing.T) {
		if _, err := storage.UpdateSelection(ctx, 99, selected, persistence.StatusConfirmed); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListSchedules(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	first, err := storage.CreateSchedule(ctx, testSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule returned error: %v", err)
	}
	second, err := storage.CreateSchedule(ctx, testSchedule())
	if err != nil {
		t.Fatalf("CreateSchedule returned error: %v", err)
	}

	schedules, err := storage.ListSchedules(ctx, []int64{first.ID, 99, second.ID})
	if err != nil {
		t.Fatalf("ListSchedules returned error: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(schedules))
	}
	if schedules[0].ID != second.ID || schedules[1].ID != first.ID {
		t.Fatalf("expected newest first ordering, got %d then %d", schedules[0].ID, schedules[1].ID)
	}

	t.Run("no matches", func(t *testing.T) {
		schedules, err := storage.ListSchedules(ctx, []int64{77, 88})
		if err != nil {
			t.Fatalf("ListSchedules returned error: %v", err)
		}
		if schedules != nil {
			t.Fatalf("expected nil result, got %+v", schedules)
		}
	})
}
