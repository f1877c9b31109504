package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/slotbook/slotbook/internal/rest"
	"github.com/slotbook/slotbook/internal/utils"
	"github.com/slotbook/slotbook/pkg/slot"
)

type Handler struct {
	service *Service
	loc     *time.Location
}

// SlotAvailabilityDTO is one slot plus its derived availability state. The
// 12-hour labels are rendered in the configured display time zone.
type SlotAvailabilityDTO struct {
	ID          string    `json:"id"`
	StartTime   time.Time `json:"start"`
	EndTime     time.Time `json:"end"`
	StartLabel  string    `json:"startLabel"`
	EndLabel    string    `json:"endLabel"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"bookedCount"`
	SpotsLeft   int       `json:"spotsLeft"`
	IsFull      bool      `json:"isFull"`
	HostID      string    `json:"hostId,omitempty"`
}

type BookingDTO struct {
	ID        string    `json:"id"`
	SlotID    string    `json:"slotId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBookingDTO struct {
	SlotID string `json:"slotId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type ConfirmationDTO struct {
	Booking     BookingDTO `json:"booking"`
	Date        string     `json:"date"`
	StartLabel  string     `json:"startLabel"`
	EndLabel    string     `json:"endLabel"`
	HostName    string     `json:"hostName,omitempty"`
	HostCompany string     `json:"hostCompany,omitempty"`
	EmailSent   bool       `json:"emailSent"`
	Warning     string     `json:"warning,omitempty"`
}

func NewHandler(s *Service, loc *time.Location) *Handler {
	return &Handler{service: s, loc: loc}
}

// GetAvailability returns every slot with its availability state, ascending
// by start time.
// @Summary List slots with availability
// @Produce json
// @Success 200 {array} SlotAvailabilityDTO
// @Router /api/slot [get]
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.GetAvailability(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]SlotAvailabilityDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, NewSlotAvailabilityDTO(v, h.loc))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetSlot returns a single slot with its availability state.
// @Summary Get one slot with availability
// @Produce json
// @Success 200 {object} SlotAvailabilityDTO
// @Failure 404 {object} rest.ErrorResponse "Slot not found"
// @Router /api/slot/{slotId} [get]
func (h *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.service.GetSlotAvailability(r.Context(), vars["slotId"])
	if err != nil {
		if errors.Is(err, slot.ErrSlotNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Slot not found", "The slot may have been removed. Refresh and pick another one.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(NewSlotAvailabilityDTO(*view, h.loc)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ListBookings returns bookings, optionally filtered by email or slot.
// @Summary List bookings
// @Param email query string false "Filter by attendee email"
// @Param slotId query string false "Filter by slot"
// @Produce json
// @Success 200 {array} BookingDTO
// @Router /api/booking [get]
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		SlotID: r.URL.Query().Get("slotId"),
		Email:  r.URL.Query().Get("email"),
	}
	bookings, err := h.service.ListBookings(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		dtos = append(dtos, bookingToDTO(b))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateBooking admits a booking for a slot.
// @Summary Book a slot
// @Accept json
// @Produce json
// @Success 201 {object} ConfirmationDTO
// @Failure 400 {object} rest.ErrorResponse "Missing name or email"
// @Failure 404 {object} rest.ErrorResponse "Slot not found"
// @Failure 409 {object} rest.ErrorResponse "Duplicate email or slot full"
// @Router /api/booking [post]
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var dto CreateBookingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if dto.SlotID == "" || dto.Name == "" || NormalizeEmail(dto.Email) == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing required fields", "slotId, name, and email are all required.")
		return
	}

	confirmation, err := h.service.Admit(r.Context(), dto.SlotID, Attendee{Name: dto.Name, Email: dto.Email})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			rest.WriteError(w, http.StatusConflict, "Already booked", "This email has already booked a slot.")
		case errors.Is(err, ErrSlotFull):
			rest.WriteError(w, http.StatusConflict, "Slot is full", "All spots for this slot are taken. Refresh and pick another one.")
		case errors.Is(err, slot.ErrSlotNotFound):
			rest.WriteError(w, http.StatusNotFound, "Slot not found", "The slot may have been removed. Refresh and pick another one.")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(h.confirmationToDTO(*confirmation)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// NewSlotAvailabilityDTO renders one availability view with its 12-hour
// labels in loc. The schedule grid reuses it so slot cards look the same
// everywhere.
func NewSlotAvailabilityDTO(v SlotAvailability, loc *time.Location) SlotAvailabilityDTO {
	start := v.Slot.StartTime.In(loc)
	end := v.Slot.EndTime.In(loc)
	return SlotAvailabilityDTO{
		ID:          v.Slot.ID,
		StartTime:   v.Slot.StartTime,
		EndTime:     v.Slot.EndTime,
		StartLabel:  utils.FormatTime12(start),
		EndLabel:    utils.FormatTime12(end),
		Capacity:    v.Slot.Capacity,
		BookedCount: v.BookedCount,
		SpotsLeft:   v.SpotsLeft,
		IsFull:      v.IsFull,
		HostID:      v.Slot.HostID,
	}
}

func (h *Handler) confirmationToDTO(c Confirmation) ConfirmationDTO {
	start := c.Slot.StartTime.In(h.loc)
	end := c.Slot.EndTime.In(h.loc)
	dto := ConfirmationDTO{
		Booking:     bookingToDTO(c.Booking),
		Date:        start.Format("Monday, January 2"),
		StartLabel:  utils.FormatTime12(start),
		EndLabel:    utils.FormatTime12(end),
		HostName:    c.HostName,
		HostCompany: c.HostCompany,
		EmailSent:   c.EmailSent,
	}
	if !c.EmailSent {
		dto.Warning = "Your booking succeeded, but we could not send a confirmation email."
	}
	return dto
}

func bookingToDTO(b Booking) BookingDTO {
	return BookingDTO{
		ID:        b.ID,
		SlotID:    b.SlotID,
		Name:      b.Name,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
	}
}
