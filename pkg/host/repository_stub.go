package host

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// RepositoryStub is an in-memory Repository for tests.
type RepositoryStub struct {
	mu     sync.RWMutex
	items  map[string]Host
	nextID int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{items: make(map[string]Host), nextID: 1}
}

func (r *RepositoryStub) ListHosts(ctx context.Context) ([]Host, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hosts := make([]Host, 0, len(r.items))
	for _, h := range r.items {
		hosts = append(hosts, h)
	}
	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Name < hosts[j].Name })
	return hosts, nil
}

func (r *RepositoryStub) GetHost(ctx context.Context, id string) (*Host, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.items[id]
	if !ok {
		return nil, ErrHostNotFound
	}
	return &h, nil
}

func (r *RepositoryStub) StoreHost(ctx context.Context, h Host) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.ID == "" {
		h.ID = fmt.Sprintf("host-%d", r.nextID)
	}
	r.items[h.ID] = h
	r.nextID++
	return h.ID, nil
}
