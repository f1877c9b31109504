package event_bus

import "time"

const BookingConfirmedEvent EventType = "booking.confirmed"

// BookingConfirmed is published after a booking has been persisted. It carries
// everything downstream consumers (the confirmation mailer) need, so they
// never have to query the store again.
type BookingConfirmed struct {
	BookingID     string
	SlotID        string
	AttendeeName  string
	AttendeeEmail string
	StartTime     time.Time
	EndTime       time.Time
	HostName      string
	HostCompany   string
	MeetingURL    string
}
