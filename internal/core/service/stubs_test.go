package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/request"
	"github.com/localtalent/console/internal/infrastructure/apiclient"
)

type call struct {
	Method string
	Path   string
	Body   []byte
	Field  string
}

type reply struct {
	status int
	body   string
}

// stubTransport answers requests from a route table keyed by "METHOD path".
// Unknown routes answer 404.
type stubTransport struct {
	mu     sync.Mutex
	routes map[string]reply
	calls  []call
}

func newStubTransport() *stubTransport {
	return &stubTransport{routes: make(map[string]reply)}
}

func (s *stubTransport) on(method, path string, status int, body string) *stubTransport {
	s.routes[method+" "+path] = reply{status: status, body: body}
	return s
}

func (s *stubTransport) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func (s *stubTransport) last() call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

func (s *stubTransport) answer(method, path string, body any, field string) (*apiclient.Response, error) {
	var raw []byte
	if body != nil {
		if up, ok := body.(ports.Upload); ok {
			raw = up.Content
		} else {
			raw, _ = json.Marshal(body)
		}
	}

	s.mu.Lock()
	s.calls = append(s.calls, call{Method: method, Path: path, Body: raw, Field: field})
	r, ok := s.routes[method+" "+path]
	s.mu.Unlock()

	if !ok {
		return nil, &apiclient.Error{StatusCode: 404, Message: "Not Found"}
	}
	if r.status >= 400 {
		var env struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal([]byte(r.body), &env)
		return nil, &apiclient.Error{StatusCode: r.status, Message: env.Message}
	}
	return &apiclient.Response{StatusCode: r.status, Body: []byte(r.body)}, nil
}

func (s *stubTransport) Get(_ context.Context, path string) (*apiclient.Response, error) {
	return s.answer("GET", path, nil, "")
}

func (s *stubTransport) Post(_ context.Context, path string, body any) (*apiclient.Response, error) {
	return s.answer("POST", path, body, "")
}

func (s *stubTransport) Put(_ context.Context, path string, body any) (*apiclient.Response, error) {
	return s.answer("PUT", path, body, "")
}

func (s *stubTransport) Delete(_ context.Context, path string) (*apiclient.Response, error) {
	return s.answer("DELETE", path, nil, "")
}

func (s *stubTransport) Upload(_ context.Context, path, field string, file ports.Upload) (*apiclient.Response, error) {
	return s.answer("UPLOAD", path, file, field)
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *stubNotifier) Notify(note domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type stubNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *stubNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *stubNavigator) lastRoute() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

func newHelper(t *stubTransport, n *stubNotifier) *request.Helper {
	return request.NewHelper(t, n, zerolog.Nop())
}
