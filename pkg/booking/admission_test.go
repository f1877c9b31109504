package booking

import (
	"testing"
	"time"

	"github.com/slotbook/slotbook/pkg/slot"
	"github.com/stretchr/testify/assert"
)

func TestComputeAvailability(t *testing.T) {
	start := time.Date(2025, time.July, 28, 13, 0, 0, 0, time.UTC)
	slotA := slot.Slot{ID: "slot-a", StartTime: start, EndTime: start.Add(30 * time.Minute), Capacity: 3}
	slotB := slot.Slot{ID: "slot-b", StartTime: start.Add(30 * time.Minute), EndTime: start.Add(time.Hour), Capacity: 3}
	slotC := slot.Slot{ID: "slot-c", StartTime: start.Add(time.Hour), EndTime: start.Add(90 * time.Minute), Capacity: 1}

	t.Run("no bookings leaves every slot fully open", func(t *testing.T) {
		views := ComputeAvailability([]slot.Slot{slotA, slotB}, nil)

		assert.Len(t, views, 2)
		assert.Equal(t, 0, views[0].BookedCount)
		assert.Equal(t, 3, views[0].SpotsLeft)
		assert.False(t, views[0].IsFull)
	})

	t.Run("bookings are counted per slot", func(t *testing.T) {
		bookings := []Booking{
			{ID: "1", SlotID: "slot-a", Email: "one@example.com"},
			{ID: "2", SlotID: "slot-a", Email: "two@example.com"},
			{ID: "3", SlotID: "slot-b", Email: "three@example.com"},
		}

		views := ComputeAvailability([]slot.Slot{slotA, slotB, slotC}, bookings)

		assert.Equal(t, 2, views[0].BookedCount)
		assert.Equal(t, 1, views[0].SpotsLeft)
		assert.False(t, views[0].IsFull)
		assert.Equal(t, 1, views[1].BookedCount)
		assert.Equal(t, 2, views[1].SpotsLeft)
		assert.Equal(t, 0, views[2].BookedCount)
		assert.Equal(t, 1, views[2].SpotsLeft)
	})

	t.Run("slot at capacity is full", func(t *testing.T) {
		bookings := []Booking{
			{ID: "1", SlotID: "slot-a", Email: "one@example.com"},
			{ID: "2", SlotID: "slot-a", Email: "two@example.com"},
			{ID: "3", SlotID: "slot-a", Email: "three@example.com"},
		}

		views := ComputeAvailability([]slot.Slot{slotA}, bookings)

		assert.Equal(t, 3, views[0].BookedCount)
		assert.Equal(t, 0, views[0].SpotsLeft)
		assert.True(t, views[0].IsFull)
	})

	t.Run("overbooked slot reports zero spots, never negative", func(t *testing.T) {
		bookings := []Booking{
			{ID: "1", SlotID: "slot-c", Email: "one@example.com"},
			{ID: "2", SlotID: "slot-c", Email: "two@example.com"},
		}

		views := ComputeAvailability([]slot.Slot{slotC}, bookings)

		assert.Equal(t, 2, views[0].BookedCount)
		assert.Equal(t, 0, views[0].SpotsLeft)
		assert.True(t, views[0].IsFull)
	})

	t.Run("bookings for unknown slots are ignored", func(t *testing.T) {
		bookings := []Booking{
			{ID: "1", SlotID: "gone", Email: "one@example.com"},
		}

		views := ComputeAvailability([]slot.Slot{slotA}, bookings)

		assert.Equal(t, 0, views[0].BookedCount)
		assert.Equal(t, 3, views[0].SpotsLeft)
	})

	t.Run("output follows slot input order", func(t *testing.T) {
		views := ComputeAvailability([]slot.Slot{slotC, slotA, slotB}, nil)

		assert.Equal(t, "slot-c", views[0].Slot.ID)
		assert.Equal(t, "slot-a", views[1].Slot.ID)
		assert.Equal(t, "slot-b", views[2].Slot.ID)
	})
}

func TestCanAdmit(t *testing.T) {
	existing := []Booking{
		{ID: "1", SlotID: "slot-a", Email: "taken@example.com"},
		{ID: "2", SlotID: "slot-b", Email: "Other@Example.com"},
	}

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "new address is admitted", email: "fresh@example.com", want: true},
		{name: "exact duplicate is rejected", email: "taken@example.com", want: false},
		{name: "duplicate differing in case is rejected", email: "TAKEN@EXAMPLE.COM", want: false},
		{name: "duplicate with surrounding whitespace is rejected", email: "  taken@example.com  ", want: false},
		{name: "duplicate of a stored mixed-case address is rejected", email: "other@example.com", want: false},
		{name: "duplicate on another slot still counts", email: "other@example.com", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAdmit(tt.email, existing))
		})
	}

	t.Run("empty booking list admits anyone", func(t *testing.T) {
		assert.True(t, CanAdmit("anyone@example.com", nil))
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "jane+tag@example.com", NormalizeEmail("jane+tag@example.com"))
}
