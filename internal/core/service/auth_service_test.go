package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/db/memory"
)

const loginOK = `{"data":{"user":{"id":1,"name":"Ana","email":"ana@example.com","role":"FREELANCER"},"tokens":{"accessToken":"tok-1"}},"message":"Welcome back"}`

func newAuth(tr *stubTransport) (*AuthService, *memory.SessionStore, *stubNavigator, *stubNotifier) {
	store := memory.NewSessionStore()
	nav := &stubNavigator{}
	notes := &stubNotifier{}
	return NewAuthService(newHelper(tr, notes), store, nav, zerolog.Nop()), store, nav, notes
}

func seed(t *testing.T, store *memory.SessionStore) {
	t.Helper()
	err := store.Save(context.Background(), domain.Session{
		User:        domain.User{ID: "1", Name: "Ana", Role: domain.RoleFreelancer},
		AccessToken: "stale",
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	tr := newStubTransport().on("POST", "/auth/login", 200, loginOK)
	svc, store, nav, notes := newAuth(tr)

	if err := svc.Login(context.Background(), "ana@example.com", "secret1"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if svc.State() != ports.StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", svc.State())
	}
	cur, ok := svc.Current()
	if !ok || cur.User.Name != "Ana" || cur.AccessToken != "tok-1" {
		t.Fatalf("unexpected current session: %+v", cur)
	}
	stored, err := store.Load(context.Background())
	if err != nil || stored.AccessToken != "tok-1" || stored.User.Role != domain.RoleFreelancer {
		t.Fatalf("session not persisted: %+v %v", stored, err)
	}
	if nav.lastRoute() != domain.RouteAdmin {
		t.Fatalf("expected navigation to %s, got %q", domain.RouteAdmin, nav.lastRoute())
	}
	if notes.count() != 1 || notes.sent[0].Description != "Welcome back" {
		t.Fatalf("expected one success notification, got %+v", notes.sent)
	}
	if svc.Loading() {
		t.Fatalf("loading must drop after login")
	}
}

func TestAuthService_Login_ValidationNeverReachesNetwork(t *testing.T) {
	tr := newStubTransport()
	svc, _, _, _ := newAuth(tr)

	cases := []struct{ email, password string }{
		{"not-an-email", "secret1"},
		{"ana@example.com", "12345"},
		{"", ""},
	}
	for _, tc := range cases {
		err := svc.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Login(%q, %q): expected ErrValidation, got %v", tc.email, tc.password, err)
		}
	}
	if len(tr.paths()) != 0 {
		t.Fatalf("validation failures must not send requests, sent %v", tr.paths())
	}
}

func TestAuthService_Login_Failure(t *testing.T) {
	tr := newStubTransport().on("POST", "/auth/login", 401, `{"message":"Invalid credentials"}`)
	svc, store, nav, notes := newAuth(tr)

	err := svc.Login(context.Background(), "ana@example.com", "wrongpw")
	if !errors.Is(err, domain.ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	if _, ok := svc.Current(); ok {
		t.Fatalf("identity must stay unset")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("nothing should be stored, got %v", err)
	}
	if nav.lastRoute() != "" {
		t.Fatalf("failed login must not navigate")
	}
	if notes.count() != 1 || notes.sent[0].Description != "Invalid credentials" || notes.sent[0].Variant != domain.VariantDestructive {
		t.Fatalf("expected destructive notification with server message, got %+v", notes.sent)
	}
}

func TestAuthService_Init_Restores(t *testing.T) {
	tr := newStubTransport().on("POST", "/auth/refresh", 200,
		`{"data":{"accessToken":"fresh","user":{"id":1,"name":"Ana","role":"FREELANCER"}}}`)
	svc, store, _, notes := newAuth(tr)
	seed(t, store)

	svc.Init(context.Background())

	if svc.State() != ports.StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", svc.State())
	}
	stored, _ := store.Load(context.Background())
	if stored.AccessToken != "fresh" {
		t.Fatalf("expected refreshed token to be persisted, got %q", stored.AccessToken)
	}
	if notes.count() != 0 {
		t.Fatalf("restore must be silent, got %+v", notes.sent)
	}
	if svc.Loading() {
		t.Fatalf("loading must drop after Init")
	}
}

func TestAuthService_Init_FailureClearsAndNavigates(t *testing.T) {
	tr := newStubTransport().on("POST", "/auth/refresh", 401, `{"message":"expired"}`)
	svc, store, nav, notes := newAuth(tr)
	seed(t, store)

	svc.Init(context.Background())

	if svc.State() != ports.StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", svc.State())
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("store should be cleared, got %v", err)
	}
	if nav.lastRoute() != domain.RouteLogin {
		t.Fatalf("expected navigation to login, got %q", nav.lastRoute())
	}
	if notes.count() != 0 {
		t.Fatalf("refresh failures during Init are silent")
	}
}

func TestAuthService_Init_NoSessionSkipsNetwork(t *testing.T) {
	tr := newStubTransport()
	svc, _, nav, _ := newAuth(tr)

	svc.Init(context.Background())

	if len(tr.paths()) != 0 || nav.lastRoute() != "" {
		t.Fatalf("Init without a stored session must do nothing, sent %v", tr.paths())
	}
	if svc.State() != ports.StateUnauthenticated || svc.Loading() {
		t.Fatalf("unexpected state after Init: %v loading=%v", svc.State(), svc.Loading())
	}
}

func TestAuthService_Register_LeavesCallerSignedOut(t *testing.T) {
	tr := newStubTransport().
		on("POST", "/auth/register", 201, `{"data":{"id":2,"name":"Bo"},"message":"Registered"}`).
		on("POST", "/auth/logout", 200, `{"message":"bye"}`)
	svc, store, _, notes := newAuth(tr)
	seed(t, store)

	if err := svc.Register(context.Background(), "Bo", "bo@example.com", "secret1", domain.RoleUser); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("register must clear the local session, got %v", err)
	}
	if _, ok := svc.Current(); ok {
		t.Fatalf("register must not sign the caller in")
	}
	got := tr.paths()
	if len(got) != 2 || got[1] != "POST /auth/logout" {
		t.Fatalf("expected register then logout, got %v", got)
	}
	if notes.count() != 1 || notes.sent[0].Description != "Registered" {
		t.Fatalf("only the register success should notify, got %+v", notes.sent)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tr := newStubTransport()
	svc, _, _, _ := newAuth(tr)

	err := svc.Register(context.Background(), "Bo", "bo@example.com", "secret1", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("admin self-registration must be rejected, got %v", err)
	}
	err = svc.Register(context.Background(), "", "bo@example.com", "secret1", domain.RoleUser)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing name must be rejected, got %v", err)
	}
	if len(tr.paths()) != 0 {
		t.Fatalf("validation failures must not send requests")
	}
}

func TestAuthService_Logout(t *testing.T) {
	tr := newStubTransport().
		on("POST", "/auth/login", 200, loginOK)
	svc, store, nav, _ := newAuth(tr)
	if err := svc.Login(context.Background(), "ana@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// logout endpoint is unrouted and answers 404; logout still completes
	svc.Logout(context.Background())

	if _, ok := svc.Current(); ok || svc.State() != ports.StateUnauthenticated {
		t.Fatalf("identity should be cleared")
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("store should be cleared, got %v", err)
	}
	if nav.lastRoute() != domain.RouteLogin {
		t.Fatalf("expected navigation to login, got %q", nav.lastRoute())
	}
}

func TestAuthService_TeardownKeepsStorage(t *testing.T) {
	tr := newStubTransport().on("POST", "/auth/login", 200, loginOK)
	svc, store, _, _ := newAuth(tr)
	if err := svc.Login(context.Background(), "ana@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	svc.Teardown()

	if _, ok := svc.Current(); ok {
		t.Fatalf("teardown should drop the in-memory identity")
	}
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("teardown must keep the stored session, got %v", err)
	}
}
