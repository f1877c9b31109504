package slot

import (
	"errors"
	"time"
)

// ErrSlotNotFound is returned when a slot id does not exist in the store,
// typically because the client rendered from stale data.
var ErrSlotNotFound = errors.New("slot not found")

// Slot is a bookable interview interval. Capacity is a property of the row:
// group slots are seeded with capacity 3, one-on-one host slots with
// capacity 1.
type Slot struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Capacity  int
	// HostID is empty for slots without a named interviewer.
	HostID     string
	MeetingURL string
}
