package testfixtures

import (
	"context"
	"sync"

	"github.com/example/slotshare/internal/application"
)

// ScheduleRepository is a map-backed application.ScheduleRepository for
// service and handler tests.
type ScheduleRepository struct {
	mu        sync.RWMutex
	nextID    int64
	schedules map[int64]application.Schedule
}

// NewScheduleRepository returns an empty in-memory repository.
func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{
		nextID:    1,
		schedules: make(map[int64]application.Schedule),
	}
}

// CreateSchedule stores a new schedule under the next auto-increment id.
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule application.Schedule) (application.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule.ID = r.nextID
	r.nextID++
	schedule.SelectedSlots = nil
	r.schedules[schedule.ID] = cloneSchedule(schedule)
	return cloneSchedule(schedule), nil
}

// GetSchedule retrieves a schedule by id.
func (r *ScheduleRepository) GetSchedule(ctx context.Context, id int64) (application.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schedule, ok := r.schedules[id]
	if !ok {
		return application.Schedule{}, application.ErrNotFound
	}
	return cloneSchedule(schedule), nil
}

// UpdateSelection stores the selected slots and status on an existing record.
func (r *ScheduleRepository) UpdateSelection(ctx context.Context, id int64, selected []application.Slot, status string) (application.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule, ok := r.schedules[id]
	if !ok {
		return application.Schedule{}, application.ErrNotFound
	}
	schedule.SelectedSlots = append([]application.Slot(nil), selected...)
	schedule.Status = status
	r.schedules[id] = cloneSchedule(schedule)
	return cloneSchedule(schedule), nil
}

// ListSchedules returns the matching schedules newest first, skipping
// unknown ids.
func (r *ScheduleRepository) ListSchedules(ctx context.Context, ids []int64) ([]application.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]application.Schedule, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if schedule, ok := r.schedules[ids[i]]; ok {
			out = append(out, cloneSchedule(schedule))
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func cloneSchedule(schedule application.Schedule) application.Schedule {
	schedule.Slots = append([]application.Slot(nil), schedule.Slots...)
	if schedule.SelectedSlots != nil {
		schedule.SelectedSlots = append([]application.Slot(nil), schedule.SelectedSlots...)
	}
	return schedule
}
