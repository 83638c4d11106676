package slotgrid

import "time"

const (
	// SlotDuration is the fixed width of one slot.
	SlotDuration = 30 * time.Minute
	// SlotsPerDay is the number of slots covering one day.
	SlotsPerDay = 48
)

// Kind discriminates the variants of SlotContent.
type Kind int

const (
	KindAvailable Kind = iota
	KindEvent
	KindEventContinuation
	KindBundled
	KindBundledContinuation
)

// String returns a stable label for logging.
func (k Kind) String() string {
	switch k {
	case KindAvailable:
		return "available"
	case KindEvent:
		return "event"
	case KindEventContinuation:
		return "event_continuation"
	case KindBundled:
		return "bundled"
	case KindBundledContinuation:
		return "bundled_continuation"
	}
	return "unknown"
}

// SlotContent is a tagged variant describing what occupies a slot. The zero
// value is Available. Construct non-empty variants through the package
// constructors so the invariants on span and count hold.
type SlotContent struct {
	kind  Kind
	event CalendarEvent
	count int
	span  int
}

// Available returns the empty-slot variant.
func Available() SlotContent {
	return SlotContent{kind: KindAvailable}
}

// Event returns the variant for the first slot of a single, non-overlapping
// event. span is the number of consecutive slots the event occupies.
func Event(event CalendarEvent, span int) SlotContent {
	if span < 1 {
		span = 1
	}
	return SlotContent{kind: KindEvent, event: event, span: span}
}

// EventContinuation returns the variant for a later slot of an event whose
// Event variant appears earlier. It carries no event reference.
func EventContinuation() SlotContent {
	return SlotContent{kind: KindEventContinuation}
}

// Bundled returns the variant for the first slot where two or more events
// overlap. count is the number of distinct events resident at that slot and
// span the number of consecutive slots the bundle occupies.
func Bundled(count, span int) SlotContent {
	if span < 1 {
		span = 1
	}
	return SlotContent{kind: KindBundled, count: count, span: span}
}

// BundledContinuation returns the variant for a later slot of a bundle.
func BundledContinuation() SlotContent {
	return SlotContent{kind: KindBundledContinuation}
}

// Kind reports the variant tag.
func (c SlotContent) Kind() Kind { return c.kind }

// IsAvailable reports whether the slot is free for selection.
func (c SlotContent) IsAvailable() bool { return c.kind == KindAvailable }

// Event returns the occupying event for the KindEvent variant.
func (c SlotContent) Event() (CalendarEvent, bool) {
	if c.kind != KindEvent {
		return CalendarEvent{}, false
	}
	return c.event, true
}

// Span returns the slot span for the KindEvent and KindBundled variants, and
// zero otherwise.
func (c SlotContent) Span() int {
	if c.kind == KindEvent || c.kind == KindBundled {
		return c.span
	}
	return 0
}

// Count returns the number of bundled events for the KindBundled variant.
func (c SlotContent) Count() int {
	if c.kind == KindBundled {
		return c.count
	}
	return 0
}

// Equal compares two contents. Event variants are equal when they reference
// the same event id with the same span; Bundled variants when count and span
// match; the remaining variants compare by tag alone.
func (c SlotContent) Equal(other SlotContent) bool {
	if c.kind != other.kind {
		return false
	}
	switch c.kind {
	case KindEvent:
		return c.event.ID == other.event.ID && c.span == other.span
	case KindBundled:
		return c.count == other.count && c.span == other.span
	}
	return true
}

// TimeSlot is one 30-minute interval of a day. End is always Start plus
// SlotDuration.
type TimeSlot struct {
	Start   time.Time
	End     time.Time
	Content SlotContent
}

// Equal compares interval bounds and content.
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End) && s.Content.Equal(other.Content)
}
