package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrDuplicateEmail means the candidate already holds a booking. The
	// store's unique index is the authoritative source of this error; the
	// pre-insert check in Admit only catches it earlier.
	ErrDuplicateEmail = errors.New("email has already booked a slot")
	// ErrSlotFull means every spot of the slot is taken. Full slots are not
	// selectable in the UI, so hitting this signals stale client state.
	ErrSlotFull = errors.New("slot is fully booked")
)

// Booking is one attendee's claim on one unit of a slot's capacity.
// Bookings are created exactly once and never updated or deleted here;
// cancellations and reschedules go through support.
type Booking struct {
	ID        string
	SlotID    string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Attendee is the booking form input.
type Attendee struct {
	Name  string
	Email string
}

// NormalizeEmail lowercases and trims the address. This is the only
// normalization applied before duplicate detection; plus-addressing and the
// like are deliberately left alone.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
