package slotgrid

import "time"

// BuildSlots partitions the day starting at dayStart into 48 uniform slots and
// overlays the supplied events onto them. dayStart must already be normalized
// to local midnight. The function is total: an empty event list yields an
// all-available grid, and events outside the day (or with end before start)
// contribute nothing.
//
// Classification is a single left-to-right pass. A slot occupied by exactly
// one event becomes Event at the event's first slot and EventContinuation
// afterwards; a slot occupied by two or more events becomes Bundled at the
// first slot where any of them is new, and BundledContinuation afterwards. The
// pass never revisits a slot: an event that starts alone keeps its Event slot
// even when a second event begins overlapping it one slot later, and the later
// slot opens a fresh bundle. Callers depend on this exact behavior.
func BuildSlots(dayStart time.Time, events []CalendarEvent) []TimeSlot {
	slots := emptySlots(dayStart)

	// Group events by the slots they occupy, preserving input order.
	occupancy := make(map[int][]CalendarEvent)
	for _, event := range events {
		first, last, ok := occupiedRange(event, dayStart)
		if !ok {
			continue
		}
		for i := first; i <= last; i++ {
			if i >= 0 && i < SlotsPerDay {
				occupancy[i] = append(occupancy[i], event)
			}
		}
	}

	started := make(map[string]bool)

	for i := 0; i < SlotsPerDay; i++ {
		residents := occupancy[i]
		if len(residents) == 0 {
			continue
		}

		if len(residents) == 1 {
			event := residents[0]
			if started[event.ID] {
				slots[i].Content = EventContinuation()
				continue
			}
			slots[i].Content = Event(event, eventSpan(event, i, dayStart))
			started[event.ID] = true
			continue
		}

		anyNew := false
		for _, event := range residents {
			if !started[event.ID] {
				anyNew = true
				break
			}
		}
		if !anyNew {
			slots[i].Content = BundledContinuation()
			continue
		}

		slots[i].Content = Bundled(len(residents), bundledSpan(residents, i, dayStart))
		for _, event := range residents {
			started[event.ID] = true
		}
	}

	return slots
}

func emptySlots(dayStart time.Time) []TimeSlot {
	slots := make([]TimeSlot, SlotsPerDay)
	for i := range slots {
		start := dayStart.Add(time.Duration(i) * SlotDuration)
		slots[i] = TimeSlot{Start: start, End: start.Add(SlotDuration), Content: Available()}
	}
	return slots
}

// occupiedRange clips the event to [dayStart, dayStart+24h) and maps it to the
// inclusive slot index range it occupies. A start mid-slot claims that whole
// slot (floor) and an end mid-slot claims the whole following slot (ceil).
func occupiedRange(event CalendarEvent, dayStart time.Time) (first, last int, ok bool) {
	dayEnd := dayStart.Add(24 * time.Hour)

	effectiveStart := event.Start
	if effectiveStart.Before(dayStart) {
		effectiveStart = dayStart
	}
	effectiveEnd := event.End
	if effectiveEnd.After(dayEnd) {
		effectiveEnd = dayEnd
	}
	if !effectiveStart.Before(effectiveEnd) {
		return 0, 0, false
	}

	first = int(effectiveStart.Sub(dayStart) / SlotDuration)
	endOffset := effectiveEnd.Sub(dayStart)
	end := int(endOffset / SlotDuration)
	if endOffset%SlotDuration != 0 {
		end++
	}
	return first, end - 1, true
}

func eventSpan(event CalendarEvent, slotIndex int, dayStart time.Time) int {
	first, last, ok := occupiedRange(event, dayStart)
	if !ok || first != slotIndex {
		return 1
	}
	return last - first + 1
}

// bundledSpan extends to the farthest-reaching occupied slot among the
// co-resident events, not merely the current slot.
func bundledSpan(events []CalendarEvent, slotIndex int, dayStart time.Time) int {
	maxLast := slotIndex
	for _, event := range events {
		if _, last, ok := occupiedRange(event, dayStart); ok && last > maxLast {
			maxLast = last
		}
	}
	return maxLast - slotIndex + 1
}
