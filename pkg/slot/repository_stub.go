package slot

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// RepositoryStub is an in-memory Repository for tests.
type RepositoryStub struct {
	mu     sync.RWMutex
	items  map[string]Slot
	nextID int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{items: make(map[string]Slot), nextID: 1}
}

func (r *RepositoryStub) ListSlots(ctx context.Context) ([]Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slots := make([]Slot, 0, len(r.items))
	for _, s := range r.items {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots, nil
}

func (r *RepositoryStub) GetSlot(ctx context.Context, id string) (*Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &s, nil
}

func (r *RepositoryStub) StoreSlot(ctx context.Context, s Slot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = fmt.Sprintf("slot-%d", r.nextID)
	}
	r.items[s.ID] = s
	r.nextID++
	return s.ID, nil
}
