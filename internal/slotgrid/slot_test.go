package slotgrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotContentEqual(t *testing.T) {
	event := CalendarEvent{ID: "a", Start: slotTime(9, 0), End: slotTime(10, 0)}
	other := CalendarEvent{ID: "b", Start: slotTime(9, 0), End: slotTime(10, 0)}

	t.Run("zero value is available", func(t *testing.T) {
		var content SlotContent
		assert.True(t, content.IsAvailable())
		assert.True(t, content.Equal(Available()))
	})

	t.Run("event compares by id and span", func(t *testing.T) {
		assert.True(t, Event(event, 2).Equal(Event(event, 2)))
		assert.False(t, Event(event, 2).Equal(Event(event, 3)))
		assert.False(t, Event(event, 2).Equal(Event(other, 2)))
	})

	t.Run("bundled compares by count and span", func(t *testing.T) {
		assert.True(t, Bundled(2, 3).Equal(Bundled(2, 3)))
		assert.False(t, Bundled(2, 3).Equal(Bundled(3, 3)))
		assert.False(t, Bundled(2, 3).Equal(Bundled(2, 2)))
	})

	t.Run("different kinds never equal", func(t *testing.T) {
		assert.False(t, Available().Equal(EventContinuation()))
		assert.False(t, Event(event, 1).Equal(Bundled(1, 1)))
	})

	t.Run("accessors outside their variant return zero", func(t *testing.T) {
		_, ok := Bundled(2, 2).Event()
		assert.False(t, ok)
		assert.Equal(t, 0, Event(event, 2).Count())
		assert.Equal(t, 0, EventContinuation().Span())
	})
}

func TestTimeSlotEqual(t *testing.T) {
	start := slotTime(9, 0)
	slot := TimeSlot{Start: start, End: start.Add(SlotDuration), Content: Available()}

	assert.True(t, slot.Equal(slot))
	assert.False(t, slot.Equal(TimeSlot{Start: start.Add(time.Minute), End: slot.End, Content: Available()}))
	assert.False(t, slot.Equal(TimeSlot{Start: start, End: slot.End, Content: EventContinuation()}))
}
