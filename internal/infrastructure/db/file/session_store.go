// Package file persists the client session to a JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/localtalent/console/internal/core/domain"
)

// document mirrors the two durable entries of the session: the access token
// and the serialized user profile. Both live in one file so a write or a
// clear always touches them together.
type document struct {
	AccessToken string          `json:"access_token,omitempty"`
	User        json.RawMessage `json:"localtalent_user,omitempty"`
}

// SessionStore is a ports.SessionStore backed by a single file.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

// NewSessionStore returns a store that reads and writes path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Path returns the file backing the store.
func (s *SessionStore) Path() string { return s.path }

func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, domain.ErrNoSession
	}
	return decode(doc)
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	if !session.Valid() {
		return fmt.Errorf("save session: %w: token and user are both required", domain.ErrValidation)
	}
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	b, err := json.MarshalIndent(document{AccessToken: session.AccessToken, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// decode applies the pairing rule: a token without a readable profile is no
// session at all.
func decode(doc document) (*domain.Session, error) {
	if doc.AccessToken == "" || len(doc.User) == 0 || string(doc.User) == "null" {
		return nil, domain.ErrNoSession
	}
	var user domain.User
	if err := json.Unmarshal(doc.User, &user); err != nil || user.ID.IsZero() {
		return nil, domain.ErrNoSession
	}
	return &domain.Session{User: user, AccessToken: doc.AccessToken}, nil
}
