package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process fallback used when Redis is not
// configured. Expired entries are dropped by Purge.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]OAuthSession
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]OAuthSession),
	}
}

func (s *MemoryStore) Save(_ context.Context, state string, sess OAuthSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}
	s.sessions[state] = sess
	return nil
}

func (s *MemoryStore) Take(_ context.Context, state string) (*OAuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[state]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.sessions, state)

	if s.expired(sess) {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Purge removes expired sessions and reports how many were dropped.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for state, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, state)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) expired(sess OAuthSession) bool {
	return s.now().Sub(sess.CreatedAt) > s.ttl
}
