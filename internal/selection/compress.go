package selection

import (
	"time"

	"github.com/example/slotshare/internal/slotgrid"
)

// Range is a maximal run of consecutive selected slots on one day. Indices
// are inclusive; Start and End are the wall-clock bounds of the run, with End
// covering through the last slot.
type Range struct {
	Day        DayKey
	StartIndex int
	EndIndex   int
	Start      time.Time
	End        time.Time
}

// SelectedSlot is the per-slot expansion of a selection, one entry per index.
type SelectedSlot struct {
	Day   DayKey
	Index int
	Start time.Time
	End   time.Time
}

// DaySummary is the footer-chip view of one day's selections.
type DaySummary struct {
	Day       DayKey
	SlotCount int
}

// Compress merges each day's selected indices into minimal contiguous ranges,
// ordered by day then start index. Adjacent indices extend the open range; a
// gap emits it and opens the next.
func Compress(store *Store, loc *time.Location) []Range {
	if store == nil {
		return nil
	}

	var ranges []Range
	for _, day := range store.SelectedDays() {
		indices := store.Indices(day)
		dayStart := day.Start(loc)

		rangeStart := indices[0]
		rangeEnd := indices[0]
		for _, index := range indices[1:] {
			if index == rangeEnd+1 {
				rangeEnd = index
				continue
			}
			ranges = append(ranges, newRange(day, dayStart, rangeStart, rangeEnd))
			rangeStart, rangeEnd = index, index
		}
		ranges = append(ranges, newRange(day, dayStart, rangeStart, rangeEnd))
	}
	return ranges
}

func newRange(day DayKey, dayStart time.Time, startIndex, endIndex int) Range {
	return Range{
		Day:        day,
		StartIndex: startIndex,
		EndIndex:   endIndex,
		Start:      dayStart.Add(time.Duration(startIndex) * slotgrid.SlotDuration),
		End:        dayStart.Add(time.Duration(endIndex+1) * slotgrid.SlotDuration),
	}
}

// SelectedSlots expands the store into individual slots ordered by day then
// index.
func SelectedSlots(store *Store, loc *time.Location) []SelectedSlot {
	if store == nil {
		return nil
	}

	var out []SelectedSlot
	for _, day := range store.SelectedDays() {
		dayStart := day.Start(loc)
		for _, index := range store.Indices(day) {
			start := dayStart.Add(time.Duration(index) * slotgrid.SlotDuration)
			out = append(out, SelectedSlot{
				Day:   day,
				Index: index,
				Start: start,
				End:   start.Add(slotgrid.SlotDuration),
			})
		}
	}
	return out
}

// DaySummaries returns one chip record per selected day, ascending.
func DaySummaries(store *Store) []DaySummary {
	if store == nil {
		return nil
	}

	var out []DaySummary
	for _, day := range store.SelectedDays() {
		out = append(out, DaySummary{Day: day, SlotCount: len(store.Indices(day))})
	}
	return out
}
