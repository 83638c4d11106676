package application

import "time"

// Slot is one proposed or selected time range in the wire format: a local
// yyyy-MM-dd date and 24-hour HH:mm times without UTC offsets.
type Slot struct {
	Date      string
	StartTime string
	EndTime   string
}

// Schedule is a shared availability proposal as seen by the service layer.
type Schedule struct {
	ID            int64
	Slots         []Slot
	Timezone      string
	Status        string
	SelectedSlots []Slot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ScheduleInput carries the caller supplied fields for creating a schedule.
type ScheduleInput struct {
	Timezone string
	Slots    []Slot
}
