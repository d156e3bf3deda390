package lead

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Answers = rec.Answers.Clone()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		r.Answers = r.Answers.Clone()
		out[i] = r
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
