package user

import (
	"context"
	"fmt"
	"sync"

	dErrors "vcgate/pkg/domain-errors"
)

// InMemoryStore keeps user records in memory for tests and the demo
// environment.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by external subject id
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[string]*User)}
}

func (s *InMemoryStore) FindOrCreateBySubjectID(_ context.Context, candidate *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[candidate.SubjectID]; ok {
		return existing, nil
	}
	s.users[candidate.SubjectID] = candidate
	return candidate, nil
}

func (s *InMemoryStore) FindBySubjectID(_ context.Context, subjectID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[subjectID]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %q: %w", subjectID, dErrors.New(dErrors.CodeNotFound, "user not found"))
}
