package organization

import (
	"context"
	"sync"
)

// MemoryStorage keeps organizations in a map. It is the default storage and
// the one used in tests.
type MemoryStorage struct {
	mu   sync.RWMutex
	orgs map[string]Organization
}

func NewMemoryStorage(seed ...Organization) *MemoryStorage {
	s := &MemoryStorage{orgs: make(map[string]Organization, len(seed))}
	for _, org := range seed {
		s.orgs[org.Key] = org
	}
	return s
}

func (s *MemoryStorage) GetByKey(ctx context.Context, key string) (*Organization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, ok := s.orgs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &org, nil
}

func (s *MemoryStorage) Create(ctx context.Context, org *Organization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orgs[org.Key]; ok {
		return ErrKeyTaken
	}
	s.orgs[org.Key] = *org
	return nil
}
