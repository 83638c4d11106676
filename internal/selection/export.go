package selection

import "time"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ShareableSlot is one proposed range in the outbound wire format: local
// wall-clock date and 24-hour times, no UTC offset.
type ShareableSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ShareableSchedule is the exact payload the remote schedule service expects.
type ShareableSchedule struct {
	Slots    []ShareableSlot `json:"slots"`
	Timezone string          `json:"timezone"`
}

// NewShareableSlot projects one compressed range into the wire format.
func NewShareableSlot(r Range) ShareableSlot {
	return ShareableSlot{
		Date:      r.Start.Format(dateLayout),
		StartTime: r.Start.Format(timeLayout),
		EndTime:   r.End.Format(timeLayout),
	}
}

// Export bundles compressed ranges with the IANA identifier of loc. It is a
// pure projection; no network I/O happens here.
func Export(ranges []Range, loc *time.Location) ShareableSchedule {
	if loc == nil {
		loc = time.Local
	}
	slots := make([]ShareableSlot, 0, len(ranges))
	for _, r := range ranges {
		slots = append(slots, NewShareableSlot(r))
	}
	return ShareableSchedule{Slots: slots, Timezone: loc.String()}
}
