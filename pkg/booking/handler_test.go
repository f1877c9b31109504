package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/slotbook/slotbook/internal/event_bus"
	"github.com/slotbook/slotbook/internal/rest"
	"github.com/slotbook/slotbook/pkg/host"
	"github.com/slotbook/slotbook/pkg/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *slot.RepositoryStub, *host.RepositoryStub) {
	t.Helper()

	repo := NewRepositoryStub()
	slotRepo := slot.NewRepositoryStub()
	hostRepo := host.NewRepositoryStub()
	bus := event_bus.NewEventBus()
	service := NewService(repo, slotRepo, hostRepo, bus)
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	handler := NewHandler(service, loc)

	router := mux.NewRouter()
	router.HandleFunc("/api/slot", handler.GetAvailability).Methods("GET")
	router.HandleFunc("/api/slot/{slotId}", handler.GetSlot).Methods("GET")
	router.HandleFunc("/api/booking", handler.CreateBooking).Methods("POST")
	router.HandleFunc("/api/booking", handler.ListBookings).Methods("GET")
	return router, slotRepo, hostRepo
}

func postBooking(t *testing.T, router *mux.Router, body CreateBookingDTO) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/booking", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetAvailabilityEndpoint(t *testing.T) {
	router, slotRepo, _ := setupHandlerTest(t)

	// 18:00 UTC renders as 2:00 PM Eastern in July
	start := time.Date(2025, time.July, 28, 18, 0, 0, 0, time.UTC)
	_, err := slotRepo.StoreSlot(context.Background(), slot.Slot{ID: "slot-1", StartTime: start, EndTime: start.Add(30 * time.Minute), Capacity: 3})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/slot", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dtos []SlotAvailabilityDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "slot-1", dtos[0].ID)
	assert.Equal(t, "2:00 PM", dtos[0].StartLabel)
	assert.Equal(t, "2:30 PM", dtos[0].EndLabel)
	assert.Equal(t, 3, dtos[0].SpotsLeft)
	assert.False(t, dtos[0].IsFull)
}

func TestGetSlotEndpoint(t *testing.T) {
	t.Run("returns the slot", func(t *testing.T) {
		router, slotRepo, _ := setupHandlerTest(t)
		start := time.Date(2025, time.July, 28, 13, 0, 0, 0, time.UTC)
		_, err := slotRepo.StoreSlot(context.Background(), slot.Slot{ID: "slot-1", StartTime: start, EndTime: start.Add(30 * time.Minute), Capacity: 3})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/slot/slot-1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var dto SlotAvailabilityDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, "slot-1", dto.ID)
	})

	t.Run("returns 404 for an unknown slot", func(t *testing.T) {
		router, _, _ := setupHandlerTest(t)

		req := httptest.NewRequest("GET", "/api/slot/missing", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		var errResp rest.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Slot not found", errResp.Error)
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	start := time.Date(2025, time.July, 28, 18, 0, 0, 0, time.UTC)

	t.Run("creates a booking and returns the confirmation", func(t *testing.T) {
		router, slotRepo, hostRepo := setupHandlerTest(t)
		hostID, err := hostRepo.StoreHost(context.Background(), host.Host{Name: "Dana Reyes", Company: "Acme"})
		require.NoError(t, err)
		_, err = slotRepo.StoreSlot(context.Background(), slot.Slot{ID: "slot-1", StartTime: start, EndTime: start.Add(30 * time.Minute), Capacity: 3, HostID: hostID})
		require.NoError(t, err)

		rec := postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "Jane Doe", Email: "jane@example.com"})

		require.Equal(t, http.StatusCreated, rec.Code)
		var dto ConfirmationDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, "slot-1", dto.Booking.SlotID)
		assert.Equal(t, "Monday, July 28", dto.Date)
		assert.Equal(t, "2:00 PM", dto.StartLabel)
		assert.Equal(t, "2:30 PM", dto.EndLabel)
		assert.Equal(t, "Dana Reyes", dto.HostName)
		assert.True(t, dto.EmailSent)
		assert.Empty(t, dto.Warning)
	})

	t.Run("returns 400 when a field is missing", func(t *testing.T) {
		router, _, _ := setupHandlerTest(t)

		rec := postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "Jane Doe"})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var errResp rest.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Missing required fields", errResp.Error)
	})

	t.Run("returns 400 when the email is only whitespace", func(t *testing.T) {
		router, _, _ := setupHandlerTest(t)

		rec := postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "Jane Doe", Email: "   "})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 404 for an unknown slot", func(t *testing.T) {
		router, _, _ := setupHandlerTest(t)

		rec := postBooking(t, router, CreateBookingDTO{SlotID: "missing", Name: "Jane Doe", Email: "jane@example.com"})

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns 409 for a duplicate email", func(t *testing.T) {
		router, slotRepo, _ := setupHandlerTest(t)
		_, err := slotRepo.StoreSlot(context.Background(), slot.Slot{ID: "slot-1", StartTime: start, Capacity: 3})
		require.NoError(t, err)

		rec := postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "Jane Doe", Email: "jane@example.com"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "Jane Doe", Email: "Jane@Example.com"})

		require.Equal(t, http.StatusConflict, rec.Code)
		var errResp rest.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Already booked", errResp.Error)
		assert.Equal(t, "This email has already booked a slot.", errResp.Details)
	})

	t.Run("returns 409 when the slot is full", func(t *testing.T) {
		router, slotRepo, _ := setupHandlerTest(t)
		_, err := slotRepo.StoreSlot(context.Background(), slot.Slot{ID: "slot-1", StartTime: start, Capacity: 1})
		require.NoError(t, err)

		rec := postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "First", Email: "first@example.com"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "Second", Email: "second@example.com"})

		require.Equal(t, http.StatusConflict, rec.Code)
		var errResp rest.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "Slot is full", errResp.Error)
	})
}

func TestListBookingsEndpoint(t *testing.T) {
	router, slotRepo, _ := setupHandlerTest(t)
	start := time.Date(2025, time.July, 28, 18, 0, 0, 0, time.UTC)
	_, err := slotRepo.StoreSlot(context.Background(), slot.Slot{ID: "slot-1", StartTime: start, Capacity: 3})
	require.NoError(t, err)
	_, err = slotRepo.StoreSlot(context.Background(), slot.Slot{ID: "slot-2", StartTime: start.Add(time.Hour), Capacity: 3})
	require.NoError(t, err)

	rec := postBooking(t, router, CreateBookingDTO{SlotID: "slot-1", Name: "Jane", Email: "jane@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = postBooking(t, router, CreateBookingDTO{SlotID: "slot-2", Name: "John", Email: "john@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest("GET", "/api/booking?slotId=slot-2", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dtos []BookingDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, "john@example.com", dtos[0].Email)
}
