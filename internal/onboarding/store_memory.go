package onboarding

import (
	"context"
	"sort"
	"sync"

	"kycbridge/pkg/sentinel"
)

// InMemoryStore is the development and test implementation of Store.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record // keyed by record ID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*Record)}
}

func (s *InMemoryStore) Create(_ context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = cloneRecord(r)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.records[r.ID] = cloneRecord(r)
	return nil
}

func (s *InMemoryStore) FindByExternalID(_ context.Context, externalUserID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ExternalUserID == externalUserID {
			return cloneRecord(r), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListPending(_ context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for _, r := range s.records {
		if r.Status == StatusPending {
			out = append(out, cloneRecord(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func cloneRecord(r *Record) *Record {
	c := *r
	c.Payload = append([]byte(nil), r.Payload...)
	c.PartnerResponse = append([]byte(nil), r.PartnerResponse...)
	if r.SentAt != nil {
		at := *r.SentAt
		c.SentAt = &at
	}
	return &c
}
