package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ScheduleRepository captures the persistence interactions needed by the
// service.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, schedule Schedule) (Schedule, error)
	GetSchedule(ctx context.Context, id int64) (Schedule, error)
	UpdateSelection(ctx context.Context, id int64, selected []Slot, status string) (Schedule, error)
	ListSchedules(ctx context.Context, ids []int64) ([]Schedule, error)
}

// Status values a schedule moves through.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
)

const (
	slotDateLayout = "2006-01-02"
	slotTimeLayout = "15:04"
)

// ScheduleService orchestrates validation and persistence for shared
// schedules.
type ScheduleService struct {
	schedules ScheduleRepository
	now       func() time.Time
	logger    *slog.Logger
}

// NewScheduleService wires dependencies for schedule operations.
func NewScheduleService(schedules ScheduleRepository, now func() time.Time) *ScheduleService {
	return NewScheduleServiceWithLogger(schedules, now, nil)
}

// NewScheduleServiceWithLogger additionally attaches a fallback logger.
func NewScheduleServiceWithLogger(schedules ScheduleRepository, now func() time.Time, logger *slog.Logger) *ScheduleService {
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		schedules: schedules,
		now:       now,
		logger:    defaultLogger(logger),
	}
}

// Create validates the proposal and persists it with status pending.
func (s *ScheduleService) Create(ctx context.Context, input ScheduleInput) (Schedule, error) {
	if s == nil || s.schedules == nil {
		return Schedule{}, fmt.Errorf("schedule repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "schedule", "create")

	vErr := &ValidationError{}
	if input.Timezone == "" {
		vErr.add("timezone", "timezone is required")
	} else if _, err := time.LoadLocation(input.Timezone); err != nil {
		vErr.add("timezone", "timezone must be a valid IANA identifier")
	}
	validateSlots("slots", input.Slots, vErr)
	if vErr.HasErrors() {
		logger.InfoContext(ctx, "create rejected", "error_kind", ErrorKind(vErr))
		return Schedule{}, vErr
	}

	created, err := s.schedules.CreateSchedule(ctx, Schedule{
		Slots:     append([]Slot(nil), input.Slots...),
		Timezone:  input.Timezone,
		Status:    StatusPending,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	})
	if err != nil {
		logger.ErrorContext(ctx, "create failed", "error", err)
		return Schedule{}, err
	}

	logger.InfoContext(ctx, "schedule created", "schedule_id", created.ID, "slot_count", len(created.Slots))
	return created, nil
}

// Get retrieves a schedule by id.
func (s *ScheduleService) Get(ctx context.Context, id int64) (Schedule, error) {
	if s == nil || s.schedules == nil {
		return Schedule{}, fmt.Errorf("schedule repository not configured")
	}
	return s.schedules.GetSchedule(ctx, id)
}

// List retrieves the schedules for an explicit id collection, newest first.
// Unknown ids are skipped.
func (s *ScheduleService) List(ctx context.Context, ids []int64) ([]Schedule, error) {
	if s == nil || s.schedules == nil {
		return nil, fmt.Errorf("schedule repository not configured")
	}
	return s.schedules.ListSchedules(ctx, ids)
}

// Select stores the remote party's chosen slots and transitions the schedule
// from pending to confirmed. A schedule that is already confirmed cannot be
// selected again.
func (s *ScheduleService) Select(ctx context.Context, id int64, selected []Slot) (Schedule, error) {
	if s == nil || s.schedules == nil {
		return Schedule{}, fmt.Errorf("schedule repository not configured")
	}
	logger := serviceLogger(ctx, s.logger, "schedule", "select", "schedule_id", id)

	existing, err := s.schedules.GetSchedule(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	if existing.Status == StatusConfirmed {
		logger.InfoContext(ctx, "select rejected", "error_kind", ErrorKind(ErrAlreadyConfirmed))
		return Schedule{}, ErrAlreadyConfirmed
	}

	vErr := &ValidationError{}
	if len(selected) == 0 {
		vErr.add("selected_slots", "at least one slot must be selected")
	}
	validateSlots("selected_slots", selected, vErr)
	if vErr.HasErrors() {
		logger.InfoContext(ctx, "select rejected", "error_kind", ErrorKind(vErr))
		return Schedule{}, vErr
	}

	updated, err := s.schedules.UpdateSelection(ctx, id, append([]Slot(nil), selected...), StatusConfirmed)
	if err != nil {
		logger.ErrorContext(ctx, "select failed", "error", err)
		return Schedule{}, err
	}

	logger.InfoContext(ctx, "schedule confirmed", "selected_count", len(updated.SelectedSlots))
	return updated, nil
}

// validateSlots checks presence and the yyyy-MM-dd / HH:mm value forms. The
// end time is not required to sort after the start time: a range running to
// midnight legitimately ends at "00:00".
func validateSlots(field string, slots []Slot, vErr *ValidationError) {
	if len(slots) == 0 {
		if field == "slots" {
			vErr.add(field, "at least one slot is required")
		}
		return
	}
	for i, slot := range slots {
		if _, err := time.Parse(slotDateLayout, slot.Date); err != nil {
			vErr.add(fmt.Sprintf("%s[%d].date", field, i), "date must be yyyy-MM-dd")
		}
		if _, err := time.Parse(slotTimeLayout, slot.StartTime); err != nil {
			vErr.add(fmt.Sprintf("%s[%d].startTime", field, i), "startTime must be HH:mm")
		}
		if _, err := time.Parse(slotTimeLayout, slot.EndTime); err != nil {
			vErr.add(fmt.Sprintf("%s[%d].endTime", field, i), "endTime must be HH:mm")
		}
	}
}
