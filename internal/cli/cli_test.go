package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/localtalent/console/internal/core/domain"
)

const freelancerJSON = `{"id":7,"name":"Ana","email":"ana@example.com","role":"FREELANCER"}`

// fakeAPI answers the marketplace routes the commands use and records the
// bearer token of each request.
type fakeAPI struct {
	mu      sync.Mutex
	seen    []string
	bearers map[string]string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	key := r.Method + " " + r.URL.Path
	f.seen = append(f.seen, key)
	if f.bearers == nil {
		f.bearers = make(map[string]string)
	}
	f.bearers[key] = r.Header.Get("Authorization")
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch key {
	case "POST /auth/login":
		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "r1", Path: "/"})
		_, _ = w.Write([]byte(`{"message":"Welcome back","data":{"user":` + freelancerJSON + `,"tokens":{"accessToken":"tok1"}}}`))
	case "POST /auth/refresh":
		if c, err := r.Cookie("refreshToken"); err != nil || c.Value != "r1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"no refresh cookie"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"accessToken":"tok2","user":` + freelancerJSON + `}}`))
	case "POST /auth/logout":
		_, _ = w.Write([]byte(`{"message":"Logged out"}`))
	case "GET /service":
		_, _ = w.Write([]byte(`{"data":[{"id":3,"title":"Logo design","description":"A crisp vector logo","rate":50,"availability":"Weekdays","category":"design","approved":"APPROVED"}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	}
}

func (f *fakeAPI) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.seen {
		if s == key {
			return true
		}
	}
	return false
}

func (f *fakeAPI) bearer(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bearers[key]
}

type harness struct {
	api   *fakeAPI
	env   map[string]string
	now   time.Time
	out   bytes.Buffer
	errs  bytes.Buffer
	store string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &harness{
		api:   api,
		now:   time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
		store: dir,
		env: map[string]string{
			"LOCALTALENT_API_URL": srv.URL,
			"STORE_DRIVER":        "file",
			"STORE_PATH":          dir,
		},
	}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	h.errs.Reset()
	root := NewRootCmd(Options{
		Lookuper: envconfig.MapLookuper(h.env),
		Out:      &h.out,
		Err:      &h.errs,
		Now:      func() time.Time { return h.now },
	})
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestLogin_PersistsSessionAcrossRuns(t *testing.T) {
	h := newHarness(t)

	if err := h.run("login", "--email", "ana@example.com", "--password", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(h.out.String(), "Signed in as Ana (FREELANCER)") {
		t.Fatalf("unexpected output %q", h.out.String())
	}
	if !strings.Contains(h.errs.String(), "Welcome back") {
		t.Fatalf("expected success notification, got %q", h.errs.String())
	}

	if err := h.run("services", "list"); err != nil {
		t.Fatalf("services list: %v", err)
	}
	if !h.api.called("POST /auth/refresh") {
		t.Fatalf("expected stored session to be restored with a refresh")
	}
	if got := h.api.bearer("POST /auth/refresh"); got != "" {
		t.Fatalf("refresh must be anonymous, got %q", got)
	}
	if got := h.api.bearer("GET /service"); got != "Bearer tok2" {
		t.Fatalf("expected refreshed token, got %q", got)
	}
	out := h.out.String()
	if !strings.Contains(out, "Services List (1 items)") || !strings.Contains(out, "Logo design") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if !strings.Contains(out, "[Edit] [Delete]") {
		t.Fatalf("expected freelancer actions:\n%s", out)
	}
}

func TestLogin_ValidationNeverHitsNetwork(t *testing.T) {
	h := newHarness(t)

	err := h.run("login", "--email", "not-an-email", "--password", "123")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if h.api.called("POST /auth/login") {
		t.Fatalf("login must not be sent")
	}
}

func TestWhoami_SignedOut(t *testing.T) {
	h := newHarness(t)

	if err := h.run("whoami"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestBookingsCreate_PastDateRejected(t *testing.T) {
	h := newHarness(t)
	if err := h.run("login", "--email", "ana@example.com", "--password", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	err := h.run("bookings", "create", "3", "--date", "2026-03-01", "--time", "10:00", "--duration", "2")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if h.api.called("POST /booking") {
		t.Fatalf("booking must not be sent")
	}
}

func TestUsersList_RequiresAdmin(t *testing.T) {
	h := newHarness(t)
	if err := h.run("login", "--email", "ana@example.com", "--password", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := h.run("users", "list"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestLogout_ClearsStoredSession(t *testing.T) {
	h := newHarness(t)
	if err := h.run("login", "--email", "ana@example.com", "--password", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := h.run("logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !h.api.called("POST /auth/logout") {
		t.Fatalf("expected server logout")
	}

	if err := h.run("whoami"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected signed out after logout, got %v", err)
	}
}

func TestUnknownStoreDriver(t *testing.T) {
	h := newHarness(t)
	h.env["STORE_DRIVER"] = "sqlite"

	if err := h.run("whoami"); err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
