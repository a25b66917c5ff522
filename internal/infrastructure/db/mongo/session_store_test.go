package mongo

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/localtalent/console/internal/core/domain"
)

// Runs against a live server when LOCALTALENT_TEST_MONGO_URI is set.
func TestSessionStore_Mongo(t *testing.T) {
	uri := os.Getenv("LOCALTALENT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LOCALTALENT_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "localtalent_test"})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	store := NewSessionStore(db, t.Name())
	t.Cleanup(func() { _ = store.Clear(ctx) })

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := store.Save(ctx, domain.Session{User: domain.User{ID: "7", Name: "Ana"}, AccessToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil || got.AccessToken != "tok" || got.User.Name != "Ana" {
		t.Fatalf("unexpected load %+v %v", got, err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}
