package lead

import (
	"context"
	"sort"
	"strings"
	"sync"

	"kycbridge/pkg/sentinel"
)

// InMemoryStore is the development and test implementation of Store.
type InMemoryStore struct {
	mu    sync.RWMutex
	leads map[string]*Lead // keyed by external user ID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{leads: make(map[string]*Lead)}
}

func (s *InMemoryStore) Create(_ context.Context, l *Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.leads {
		if existing.Email == l.Email && existing.Phone == l.Phone {
			return sentinel.ErrDuplicate
		}
	}
	s.leads[l.ExternalUserID] = clone(l)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, l *Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[l.ExternalUserID]; !ok {
		return sentinel.ErrNotFound
	}
	s.leads[l.ExternalUserID] = clone(l)
	return nil
}

func (s *InMemoryStore) FindByExternalID(_ context.Context, externalUserID string) (*Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leads[externalUserID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(l), nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*Lead, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.Email == email {
			return clone(l), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByPhone(_ context.Context, phone string) (*Lead, error) {
	phone = strings.TrimSpace(phone)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.Phone == phone {
			return clone(l), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) List(_ context.Context) ([]*Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, clone(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// clone keeps callers from mutating stored state through shared slices.
func clone(l *Lead) *Lead {
	c := *l
	c.EventHistory = append([]EventEntry(nil), l.EventHistory...)
	if l.RejectionDetails != nil {
		rd := *l.RejectionDetails
		c.RejectionDetails = &rd
	}
	return &c
}
