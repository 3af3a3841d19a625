package blocklist

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps blocklist entries in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	entries []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

func (s *InMemoryStore) Create(_ context.Context, e *Entry) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *e
	rec.ID = s.nextID
	rec.CreatedAt = time.Now().UTC()
	s.nextID++
	s.entries = append(s.entries, rec)

	out := rec
	return &out, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
