package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// RepositoryStub is an in-memory Repository for tests. It enforces the same
// unique-email rule the store's index does.
type RepositoryStub struct {
	mu     sync.RWMutex
	items  map[string]Booking
	nextID int
	// InsertErr, when set, is returned by InsertBooking to simulate a
	// transient store failure.
	InsertErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{items: make(map[string]Booking), nextID: 1}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	original := make(map[string]Booking, len(r.items))
	for k, v := range r.items {
		original[k] = v
	}
	originalNextID := r.nextID
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.items = original
		r.nextID = originalNextID
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) ListBookings(ctx context.Context, filter Filter) ([]Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]Booking, 0, len(r.items))
	for _, b := range r.items {
		if filter.SlotID != "" && b.SlotID != filter.SlotID {
			continue
		}
		if filter.Email != "" && NormalizeEmail(b.Email) != NormalizeEmail(filter.Email) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *RepositoryStub) CountForSlot(ctx context.Context, slotID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, b := range r.items {
		if b.SlotID == slotID {
			count++
		}
	}
	return count, nil
}

func (r *RepositoryStub) InsertBooking(ctx context.Context, b Booking) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.InsertErr != nil {
		return nil, r.InsertErr
	}
	for _, existing := range r.items {
		if NormalizeEmail(existing.Email) == NormalizeEmail(b.Email) {
			return nil, ErrDuplicateEmail
		}
	}

	if b.ID == "" {
		b.ID = fmt.Sprintf("booking-%d", r.nextID)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	r.items[b.ID] = b
	r.nextID++
	return &b, nil
}
