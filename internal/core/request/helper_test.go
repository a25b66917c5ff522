package request

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/apiclient"
)

type stubTransport struct {
	resp *apiclient.Response
	err  error
	last string
}

func (s *stubTransport) answer(method, path string) (*apiclient.Response, error) {
	s.last = method + " " + path
	return s.resp, s.err
}

func (s *stubTransport) Get(_ context.Context, path string) (*apiclient.Response, error) {
	return s.answer("GET", path)
}

func (s *stubTransport) Post(_ context.Context, path string, _ any) (*apiclient.Response, error) {
	return s.answer("POST", path)
}

func (s *stubTransport) Put(_ context.Context, path string, _ any) (*apiclient.Response, error) {
	return s.answer("PUT", path)
}

func (s *stubTransport) Delete(_ context.Context, path string) (*apiclient.Response, error) {
	return s.answer("DELETE", path)
}

func (s *stubTransport) Upload(_ context.Context, path, field string, _ ports.Upload) (*apiclient.Response, error) {
	return s.answer("UPLOAD:"+field, path)
}

type stubNotifier struct {
	got []domain.Notification
}

func (n *stubNotifier) Notify(x domain.Notification) { n.got = append(n.got, x) }

func ok(body string) *stubTransport {
	return &stubTransport{resp: &apiclient.Response{StatusCode: 200, Body: []byte(body)}}
}

func failing(status int, message string) *stubTransport {
	return &stubTransport{err: fmt.Errorf("PUT /x: %w", &apiclient.Error{StatusCode: status, Message: message})}
}

type item struct {
	Title string `json:"title"`
}

func TestDo_GetNeverNotifies(t *testing.T) {
	n := &stubNotifier{}
	h := NewHelper(ok(`{"data":{"title":"Logo"}}`), n, zerolog.Nop())

	res := Get[item](context.Background(), h, "/service/1")
	if !res.OK() || res.Value.Title != "Logo" {
		t.Fatalf("unexpected result %+v", res)
	}

	h = NewHelper(failing(500, "boom"), n, zerolog.Nop())
	if res := Get[item](context.Background(), h, "/service/1"); res.OK() {
		t.Fatalf("expected failure")
	}
	if len(n.got) != 0 {
		t.Fatalf("GET must not notify, got %+v", n.got)
	}
}

func TestDo_MutationNotifiesServerMessage(t *testing.T) {
	n := &stubNotifier{}
	h := NewHelper(ok(`{"message":"Service created","data":{"title":"Logo"}}`), n, zerolog.Nop())

	res := Post[item](context.Background(), h, "/service", item{Title: "Logo"})
	if !res.OK() || res.Message != "Service created" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(n.got) != 1 || n.got[0].Description != "Service created" || n.got[0].Variant != domain.VariantDefault {
		t.Fatalf("unexpected notifications %+v", n.got)
	}
}

func TestUpload_NeverNotifies(t *testing.T) {
	n := &stubNotifier{}
	h := NewHelper(ok(`{"message":"Uploaded","data":{"title":"a.png"}}`), n, zerolog.Nop())
	if res := Upload[item](context.Background(), h, "/upload", ports.Upload{Filename: "a.png"}); !res.OK() {
		t.Fatalf("unexpected result %+v", res)
	}

	h = NewHelper(failing(413, "File too large"), n, zerolog.Nop())
	if res := Upload[item](context.Background(), h, "/upload", ports.Upload{Filename: "a.png"}); res.OK() {
		t.Fatalf("expected failure")
	}
	if len(n.got) != 0 {
		t.Fatalf("upload must not notify, got %+v", n.got)
	}
}

func TestDo_MutationDefaultSuccessMessage(t *testing.T) {
	n := &stubNotifier{}
	h := NewHelper(ok(`{"data":true}`), n, zerolog.Nop())

	Delete[bool](context.Background(), h, "/service/1")
	if len(n.got) != 1 || n.got[0].Description != successMessage {
		t.Fatalf("unexpected notifications %+v", n.got)
	}
}

func TestDo_FailureNotifiesDestructive(t *testing.T) {
	n := &stubNotifier{}
	h := NewHelper(failing(409, "Title already taken"), n, zerolog.Nop())

	res := Put[item](context.Background(), h, "/service/1", item{})
	if res.OK() || res.Failure.Kind != FailureBusiness || res.Failure.StatusCode != 409 {
		t.Fatalf("unexpected result %+v", res.Failure)
	}
	if len(n.got) != 1 || n.got[0].Variant != domain.VariantDestructive || n.got[0].Description != "Title already taken" {
		t.Fatalf("unexpected notifications %+v", n.got)
	}
}

func TestDo_SilentSuppresses(t *testing.T) {
	n := &stubNotifier{}
	h := NewHelper(failing(400, "nope"), n, zerolog.Nop())

	Post[item](context.Background(), h, "/auth/logout", nil, Silent())
	if len(n.got) != 0 {
		t.Fatalf("expected no notifications, got %+v", n.got)
	}
}

func TestDo_EmptyData(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"data":null}`} {
		h := NewHelper(ok(body), nil, zerolog.Nop())
		res := Post[item](context.Background(), h, "/auth/register", nil)
		if !res.OK() || !res.Empty {
			t.Fatalf("body %q: expected empty success, got %+v", body, res)
		}
	}
}

func TestDo_DecodeFailure(t *testing.T) {
	h := NewHelper(ok(`{"data":"not an object"}`), nil, zerolog.Nop())
	res := Get[item](context.Background(), h, "/service/1")
	if res.OK() || res.Failure.Kind != FailureDecode {
		t.Fatalf("expected decode failure, got %+v", res)
	}
}

func TestDo_Classification(t *testing.T) {
	cases := []struct {
		err  error
		kind FailureKind
	}{
		{fmt.Errorf("%w: refresh rejected", domain.ErrSessionExpired), FailureAuth},
		{&apiclient.Error{StatusCode: 403, Message: "forbidden"}, FailureAuth},
		{&apiclient.Error{StatusCode: 422, Message: "bad"}, FailureBusiness},
		{errors.New("dial tcp: connection refused"), FailureTransport},
	}
	for _, tc := range cases {
		h := NewHelper(&stubTransport{err: tc.err}, nil, zerolog.Nop())
		res := Get[item](context.Background(), h, "/service")
		if res.Failure == nil || res.Failure.Kind != tc.kind {
			t.Fatalf("%v: expected %s, got %+v", tc.err, tc.kind, res.Failure)
		}
		if !errors.Is(res.Failure, tc.err) {
			t.Fatalf("failure must unwrap to the cause")
		}
	}
}

func TestUpload_UsesFieldOverride(t *testing.T) {
	tr := ok(`{"data":{"title":"x"}}`)
	h := NewHelper(tr, nil, zerolog.Nop())

	Upload[item](context.Background(), h, "/upload", ports.Upload{Filename: "a.png"}, UploadField("avatar"))
	if tr.last != "UPLOAD:avatar /upload" {
		t.Fatalf("unexpected call %q", tr.last)
	}
}
