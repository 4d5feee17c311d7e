package repository

import (
	"context"
	"sync"
	"time"
)

type memSession struct {
	subject   string
	expiresAt time.Time
	hasTTL    bool
}

func (e memSession) isExpired(now time.Time) bool {
	return e.hasTTL && now.After(e.expiresAt)
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memSession
	now      func() time.Time
}

func NewMemorySessionStore() SessionStore {
	return newMemorySessionStore(time.Now)
}

func newMemorySessionStore(now func() time.Time) *memorySessionStore {
	return &memorySessionStore{
		sessions: make(map[string]memSession),
		now:      now,
	}
}

func (s *memorySessionStore) Save(_ context.Context, tokenID, subject string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	entry := memSession{subject: subject}
	if ttl > 0 {
		entry.hasTTL = true
		entry.expiresAt = now.Add(ttl)
	}
	s.sessions[sessionKey(tokenID)] = entry
	return nil
}

// pruneLocked drops expired sessions that were never looked up again.
// Callers must hold s.mu.
func (s *memorySessionStore) pruneLocked(now time.Time) {
	for key, entry := range s.sessions {
		if entry.isExpired(now) {
			delete(s.sessions, key)
		}
	}
}

func (s *memorySessionStore) Lookup(_ context.Context, tokenID string) (string, error) {
	key := sessionKey(tokenID)

	s.mu.RLock()
	entry, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok {
		return "", nil
	}
	if entry.isExpired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
		return "", nil
	}
	return entry.subject, nil
}

func (s *memorySessionStore) Revoke(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(tokenID))
	return nil
}
