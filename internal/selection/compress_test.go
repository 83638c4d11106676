package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/slotshare/internal/slotgrid"
)

func storeWith(t *testing.T, day DayKey, indices ...int) *Store {
	t.Helper()
	store := NewStore()
	grid := slotgrid.BuildSlots(day.Start(time.UTC), nil)
	for _, index := range indices {
		store.Toggle(day, index, grid)
	}
	return store
}

func TestCompress(t *testing.T) {
	t.Run("adjacent indices merge and gaps split", func(t *testing.T) {
		store := storeWith(t, testDay, 2, 3, 4, 7, 8)

		ranges := Compress(store, time.UTC)

		require.Len(t, ranges, 2)
		assert.Equal(t, 2, ranges[0].StartIndex)
		assert.Equal(t, 4, ranges[0].EndIndex)
		assert.Equal(t, 7, ranges[1].StartIndex)
		assert.Equal(t, 8, ranges[1].EndIndex)

		dayStart := testDay.Start(time.UTC)
		assert.True(t, ranges[0].Start.Equal(dayStart.Add(time.Hour)))
		assert.True(t, ranges[0].End.Equal(dayStart.Add(2*time.Hour+30*time.Minute)))
	})

	t.Run("single index yields a one slot range", func(t *testing.T) {
		store := storeWith(t, testDay, 5)

		ranges := Compress(store, time.UTC)

		require.Len(t, ranges, 1)
		assert.Equal(t, 5, ranges[0].StartIndex)
		assert.Equal(t, 5, ranges[0].EndIndex)
		assert.Equal(t, 30*time.Minute, ranges[0].End.Sub(ranges[0].Start))
	})

	t.Run("ranges never cross days", func(t *testing.T) {
		next := DayKey{Year: 2026, Month: time.January, Day: 14}
		store := storeWith(t, testDay, 46, 47)
		grid := slotgrid.BuildSlots(next.Start(time.UTC), nil)
		store.Toggle(next, 0, grid)

		ranges := Compress(store, time.UTC)

		require.Len(t, ranges, 2)
		assert.Equal(t, testDay, ranges[0].Day)
		assert.Equal(t, next, ranges[1].Day)
	})

	t.Run("empty store compresses to nothing", func(t *testing.T) {
		assert.Nil(t, Compress(NewStore(), time.UTC))
	})
}

func TestSelectedSlots(t *testing.T) {
	store := storeWith(t, testDay, 3, 2)

	slots := SelectedSlots(store, time.UTC)

	require.Len(t, slots, 2)
	assert.Equal(t, 2, slots[0].Index)
	assert.Equal(t, 3, slots[1].Index)
	assert.True(t, slots[0].End.Equal(slots[1].Start))
}

func TestDaySummaries(t *testing.T) {
	next := DayKey{Year: 2026, Month: time.January, Day: 14}
	store := storeWith(t, testDay, 1, 2, 3)
	grid := slotgrid.BuildSlots(next.Start(time.UTC), nil)
	store.Toggle(next, 9, grid)

	summaries := DaySummaries(store)

	require.Len(t, summaries, 2)
	assert.Equal(t, DaySummary{Day: testDay, SlotCount: 3}, summaries[0])
	assert.Equal(t, DaySummary{Day: next, SlotCount: 1}, summaries[1])
}

func TestExport(t *testing.T) {
	t.Run("formats local wall clock values", func(t *testing.T) {
		store := storeWith(t, testDay, 18, 19)

		schedule := Export(Compress(store, time.UTC), time.UTC)

		require.Len(t, schedule.Slots, 1)
		assert.Equal(t, ShareableSlot{Date: "2026-01-13", StartTime: "09:00", EndTime: "10:00"}, schedule.Slots[0])
		assert.Equal(t, "UTC", schedule.Timezone)
	})

	t.Run("range ending at midnight formats as zero hour", func(t *testing.T) {
		store := storeWith(t, testDay, 47)

		schedule := Export(Compress(store, time.UTC), time.UTC)

		require.Len(t, schedule.Slots, 1)
		assert.Equal(t, "23:30", schedule.Slots[0].StartTime)
		assert.Equal(t, "00:00", schedule.Slots[0].EndTime)
	})

	t.Run("empty ranges export an empty slot list", func(t *testing.T) {
		schedule := Export(nil, time.UTC)

		assert.NotNil(t, schedule.Slots)
		assert.Empty(t, schedule.Slots)
		assert.Equal(t, "UTC", schedule.Timezone)
	})
}
