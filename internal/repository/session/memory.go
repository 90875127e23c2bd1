package session

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/guestcart"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

type memoryRepo struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemory keeps cart snapshots in process memory. Sessions vanish on
// restart, which matches the session-scoped contract; it backs tests and
// single-instance deployments without a database round-trip per cart read.
func NewMemory(ttl time.Duration) Repository {
	return &memoryRepo{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (r *memoryRepo) ForToken(token string) guestcart.Store {
	return &memoryStore{repo: r, token: token}
}

func (r *memoryRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for token, e := range r.entries {
		if now.After(e.expiresAt) {
			delete(r.entries, token)
			n++
		}
	}
	return n, nil
}

type memoryStore struct {
	repo  *memoryRepo
	token string
}

func (s *memoryStore) Read(_ context.Context) ([]byte, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	e, ok := s.repo.entries[s.token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.repo.entries, s.token)
		return nil, domain.ErrNotFound
	}
	return e.payload, nil
}

func (s *memoryStore) Write(_ context.Context, payload []byte) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	s.repo.entries[s.token] = memoryEntry{payload: payload, expiresAt: time.Now().Add(s.repo.ttl)}
	return nil
}

func (s *memoryStore) Delete(_ context.Context) error {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	if _, ok := s.repo.entries[s.token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.repo.entries, s.token)
	return nil
}
