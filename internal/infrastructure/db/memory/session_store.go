// Package memory keeps the client session in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/localtalent/console/internal/core/domain"
)

// SessionStore is an in-memory ports.SessionStore.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Valid() {
		return nil, domain.ErrNoSession
	}
	clone := *s.session
	return &clone, nil
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	if !session.Valid() {
		return fmt.Errorf("save session: %w: token and user are both required", domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
