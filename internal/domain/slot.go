package domain

import (
	"sort"

	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// StaffAvailability lists the free slot start times of one staff member
// for a single date
type StaffAvailability struct {
	StaffID string
	Date    string
	Slots   []types.TimeString
}

// HasSlots returns true if at least one slot is free
func (a *StaffAvailability) HasSlots() bool {
	return len(a.Slots) > 0
}

// CombinedAvailability maps a slot start time to the ids of staff members
// free at that time
type CombinedAvailability map[types.TimeString][]string

// Add registers staffID as free at the given slot start
func (c CombinedAvailability) Add(slot types.TimeString, staffID string) {
	c[slot] = append(c[slot], staffID)
}

// Normalize sorts staff ids within every slot for deterministic output
func (c CombinedAvailability) Normalize() {
	for _, ids := range c {
		sort.Strings(ids)
	}
}

// SortedSlots returns the slot start times in ascending order
func (c CombinedAvailability) SortedSlots() []types.TimeString {
	slots := make([]types.TimeString, 0, len(c))
	for slot := range c {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].IsBefore(slots[j])
	})
	return slots
}
