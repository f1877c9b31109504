package booking

import (
	"github.com/slotbook/slotbook/pkg/slot"
)

// SlotAvailability is the display-ready state of one slot.
type SlotAvailability struct {
	Slot        slot.Slot
	BookedCount int
	SpotsLeft   int
	IsFull      bool
}

// ComputeAvailability joins bookings against slots by slot id and derives the
// booked count, remaining spots, and fullness for every slot. It has no side
// effects and never mutates its inputs; output order follows the slot input
// order (the repository returns slots ascending by start time). A booked
// count above capacity should not happen, but is treated as full rather than
// reported negative.
func ComputeAvailability(slots []slot.Slot, bookings []Booking) []SlotAvailability {
	countBySlot := make(map[string]int, len(slots))
	for _, b := range bookings {
		countBySlot[b.SlotID]++
	}

	views := make([]SlotAvailability, 0, len(slots))
	for _, s := range slots {
		booked := countBySlot[s.ID]
		spotsLeft := s.Capacity - booked
		if spotsLeft < 0 {
			spotsLeft = 0
		}
		views = append(views, SlotAvailability{
			Slot:        s,
			BookedCount: booked,
			SpotsLeft:   spotsLeft,
			IsFull:      spotsLeft == 0,
		})
	}
	return views
}

// CanAdmit reports whether a booking for email may be admitted given the
// bookings already known. It is false iff any existing booking carries the
// same address, compared case-insensitively with surrounding whitespace
// trimmed. The rule is one booking per candidate across all slots, not per
// slot.
func CanAdmit(email string, bookings []Booking) bool {
	candidate := NormalizeEmail(email)
	for _, b := range bookings {
		if NormalizeEmail(b.Email) == candidate {
			return false
		}
	}
	return true
}
