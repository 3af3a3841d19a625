package device

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps device records in process memory. Used in tests and
// when no database is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	devices []Device
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

func (s *InMemoryStore) Create(_ context.Context, d *Device) (*Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *d
	rec.ID = s.nextID
	rec.CreatedAt = time.Now().UTC()
	s.nextID++
	s.devices = append(s.devices, rec)

	out := rec
	return &out, nil
}

func (s *InMemoryStore) UpdateOwned(_ context.Context, id int64, ownerSubjectID string, patch Patch) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.devices {
		if s.devices[i].ID != id || s.devices[i].OwnerSubjectID != ownerSubjectID {
			continue
		}
		if patch.Network != nil {
			s.devices[i].Network = *patch.Network
		}
		if patch.Address != nil {
			s.devices[i].Address = *patch.Address
		}
		return 1, nil
	}
	return 0, nil
}

func (s *InMemoryStore) ListByOwner(_ context.Context, ownerSubjectID string) ([]Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Device, 0)
	for _, d := range s.devices {
		if d.OwnerSubjectID == ownerSubjectID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *InMemoryStore) FindOwned(_ context.Context, id int64, ownerSubjectID string) (*Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.devices {
		if d.ID == id && d.OwnerSubjectID == ownerSubjectID {
			out := d
			return &out, nil
		}
	}
	return nil, nil
}
