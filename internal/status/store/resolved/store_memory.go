// Package resolved stores the terminal status of each subject.
//
// Stores never interpret ExpiresAt. Callers compare it against the request
// time and treat stale records as absent.
package resolved

import (
	"context"
	"sort"
	"sync"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
)

// InMemoryStore keeps one record per subject.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[domain.SubjectID]models.ResolvedStatus
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[domain.SubjectID]models.ResolvedStatus)}
}

// Find returns a copy of the record or sentinel.ErrNotFound.
func (s *InMemoryStore) Find(_ context.Context, id domain.SubjectID) (*models.ResolvedStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &rec, nil
}

// Save upserts by subject id.
func (s *InMemoryStore) Save(_ context.Context, record *models.ResolvedStatus) error {
	if record == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SubjectID] = *record
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id domain.SubjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// List returns every stored record, expired ones included, ordered by subject.
func (s *InMemoryStore) List(_ context.Context) ([]models.ResolvedStatus, error) {
	s.mu.RLock()
	out := make([]models.ResolvedStatus, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].SubjectID < out[j].SubjectID })
	return out, nil
}
