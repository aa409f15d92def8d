// Package pending stores in-flight provider workflows, one per subject.
package pending

import (
	"context"
	"sync"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[domain.SubjectID]models.PendingRequest
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{requests: make(map[domain.SubjectID]models.PendingRequest)}
}

func (s *InMemoryStore) Find(_ context.Context, id domain.SubjectID) (*models.PendingRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &req, nil
}

func (s *InMemoryStore) Save(_ context.Context, request *models.PendingRequest) error {
	if request == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.SubjectID] = *request
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.SubjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requests, id)
	return nil
}
