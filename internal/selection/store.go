package selection

import (
	"sort"

	"github.com/example/slotshare/internal/slotgrid"
)

// Store tracks selected slot indices per calendar day. Availability is
// enforced only at toggle time against the grid supplied by the caller;
// selections made before a day is rebuilt with different events are kept
// as-is. A single caller is expected to mutate a Store serially.
type Store struct {
	days map[DayKey]map[int]struct{}
}

// NewStore returns an empty selection store.
func NewStore() *Store {
	return &Store{days: make(map[DayKey]map[int]struct{})}
}

// Toggle flips membership of index in the day's selection set. It is a no-op
// when index is outside [0, SlotsPerDay) or the slot at index in slots is not
// available.
func (s *Store) Toggle(day DayKey, index int, slots []slotgrid.TimeSlot) {
	if s == nil || index < 0 || index >= slotgrid.SlotsPerDay || index >= len(slots) {
		return
	}
	if !slots[index].Content.IsAvailable() {
		return
	}

	set := s.days[day]
	if set == nil {
		set = make(map[int]struct{})
		s.days[day] = set
	}
	if _, selected := set[index]; selected {
		delete(set, index)
	} else {
		set[index] = struct{}{}
	}
}

// IsSelected reports membership; unknown days are unselected.
func (s *Store) IsSelected(day DayKey, index int) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[day][index]
	return ok
}

// HasAnySelection reports whether any day has a non-empty selection set.
func (s *Store) HasAnySelection() bool {
	if s == nil {
		return false
	}
	for _, set := range s.days {
		if len(set) > 0 {
			return true
		}
	}
	return false
}

// SelectedDays returns the days with at least one selection, ascending.
func (s *Store) SelectedDays() []DayKey {
	if s == nil {
		return nil
	}
	days := make([]DayKey, 0, len(s.days))
	for day, set := range s.days {
		if len(set) > 0 {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	if len(days) == 0 {
		return nil
	}
	return days
}

// Indices returns the day's selected indices in ascending order.
func (s *Store) Indices(day DayKey) []int {
	if s == nil {
		return nil
	}
	set := s.days[day]
	if len(set) == 0 {
		return nil
	}
	indices := make([]int, 0, len(set))
	for index := range set {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}

// Clear drops the day's selections.
func (s *Store) Clear(day DayKey) {
	if s == nil {
		return
	}
	delete(s.days, day)
}
