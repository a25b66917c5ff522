package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localtalent/console/internal/core/domain"
)

const (
	sessionCollection = "client_sessions"
	DefaultSlot       = "default"
)

// SessionStore keeps the session as one document per slot, so the token and
// the profile snapshot are replaced atomically.
type SessionStore struct {
	coll *mongo.Collection
	slot string
}

// NewSessionStore returns a store writing to the client_sessions collection.
func NewSessionStore(db *mongo.Database, slot string) *SessionStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &SessionStore{coll: db.Collection(sessionCollection), slot: slot}
}

type sessionDoc struct {
	Slot        string `bson:"_id"`
	AccessToken string `bson:"access_token"`
	User        string `bson:"localtalent_user"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	var doc sessionDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": s.slot}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	if doc.AccessToken == "" || doc.User == "" {
		return nil, domain.ErrNoSession
	}
	var user domain.User
	if err := json.Unmarshal([]byte(doc.User), &user); err != nil || user.ID.IsZero() {
		return nil, domain.ErrNoSession
	}
	return &domain.Session{User: user, AccessToken: doc.AccessToken}, nil
}

func (s *SessionStore) Save(ctx context.Context, session domain.Session) error {
	if !session.Valid() {
		return fmt.Errorf("save session: %w: token and user are both required", domain.ErrValidation)
	}
	user, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	doc := sessionDoc{
		Slot:        s.slot,
		AccessToken: session.AccessToken,
		User:        string(user),
		UpdatedAt:   time.Now().UTC().Unix(),
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": s.slot}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.slot}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Ping reports whether MongoDB is reachable.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
