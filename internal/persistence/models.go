package persistence

import "time"

// Status enumerates the lifecycle states of a shared schedule.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
)

// Slot is one proposed or selected time range as stored, in the wire format
// (local date and 24-hour times).
type Slot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Schedule represents a shared availability proposal stored in persistence.
// SelectedSlots stays nil until the remote party confirms.
type Schedule struct {
	ID            int64
	Slots         []Slot
	Timezone      string
	Status        string
	SelectedSlots []Slot
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
