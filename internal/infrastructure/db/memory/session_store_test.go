package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/localtalent/console/internal/core/domain"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := store.Save(ctx, domain.Session{User: domain.User{ID: "1"}}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing token, got %v", err)
	}

	if err := store.Save(ctx, domain.Session{User: domain.User{ID: "1", Name: "Bo"}, AccessToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil || got.User.Name != "Bo" {
		t.Fatalf("unexpected load %+v %v", got, err)
	}

	got.AccessToken = "mutated"
	again, _ := store.Load(ctx)
	if again.AccessToken != "tok" {
		t.Fatalf("Load must return a copy")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}
