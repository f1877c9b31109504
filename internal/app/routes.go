package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Slots with availability
	r.HandleFunc("/api/slot", deps.BookingHandler.GetAvailability).Methods("GET")
	r.HandleFunc("/api/slot/{slotId}", deps.BookingHandler.GetSlot).Methods("GET")

	// Bookings
	r.HandleFunc("/api/booking", deps.BookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/booking", deps.BookingHandler.ListBookings).Methods("GET")

	// Weekly calendar grid
	r.HandleFunc("/api/schedule/week", deps.ScheduleHandler.GetWeek).Methods("GET")

	// Interviewer profiles
	r.HandleFunc("/api/host", deps.HostHandler.ListHosts).Methods("GET")
}
