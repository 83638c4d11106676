package persistence

import "context"

// ScheduleRepository abstracts schedule storage. CreateSchedule assigns and
// returns the record's auto-increment identifier; UpdateSelection stores the
// confirmed slots together with the status transition.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, schedule Schedule) (Schedule, error)
	GetSchedule(ctx context.Context, id int64) (Schedule, error)
	UpdateSelection(ctx context.Context, id int64, selected []Slot, status string) (Schedule, error)
	ListSchedules(ctx context.Context, ids []int64) ([]Schedule, error)
}
