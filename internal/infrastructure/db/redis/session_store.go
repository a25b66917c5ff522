package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/localtalent/console/internal/core/domain"
)

const (
	DefaultPrefix = "localtalent:"

	tokenKey = "access_token"
	userKey  = "localtalent_user"
)

// SessionStore persists the session as two Redis keys.
// Key format: <prefix>access_token, <prefix>localtalent_user
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore wraps the given client. An empty prefix selects DefaultPrefix.
func NewSessionStore(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	vals, err := s.client.MGet(ctx, s.key(tokenKey), s.key(userKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	token, _ := vals[0].(string)
	raw, _ := vals[1].(string)
	if token == "" || raw == "" {
		return nil, domain.ErrNoSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID.IsZero() {
		return nil, domain.ErrNoSession
	}
	return &domain.Session{User: user, AccessToken: token}, nil
}

// Save writes both keys in a single MULTI/EXEC transaction.
func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if !session.Valid() {
		return fmt.Errorf("save session: %w: token and user are both required", domain.ErrValidation)
	}
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(tokenKey), session.AccessToken, 0)
		pipe.Set(ctx, s.key(userKey), string(user), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(tokenKey), s.key(userKey)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(name string) string {
	return s.prefix + name
}
