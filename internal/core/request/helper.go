// Package request is the uniform success/error layer over the API client.
// Callers get a Result and never an error or panic; failures may surface as
// transient notifications.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/apiclient"
)

// Method names the adapter operation a request goes through.
type Method string

const (
	MethodGet    Method = "get"
	MethodPost   Method = "post"
	MethodPut    Method = "put"
	MethodDelete Method = "del"
	MethodUpload Method = "postWithFile"
)

// mutating reports whether success and failure notifications apply. Uploads
// are a step of a larger save and leave feedback to that save.
func (m Method) mutating() bool {
	switch m {
	case MethodPost, MethodPut, MethodDelete:
		return true
	}
	return false
}

const (
	DefaultUploadField = "image"
	successMessage     = "Operation completed successfully"
)

// Transport is the HTTP adapter the helper drives.
type Transport interface {
	Get(ctx context.Context, path string) (*apiclient.Response, error)
	Post(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Put(ctx context.Context, path string, body any) (*apiclient.Response, error)
	Delete(ctx context.Context, path string) (*apiclient.Response, error)
	Upload(ctx context.Context, path, field string, file ports.Upload) (*apiclient.Response, error)
}

// Helper executes requests and converts failures into Results.
type Helper struct {
	transport Transport
	notifier  ports.Notifier
	log       zerolog.Logger
}

// NewHelper returns a Helper. A nil notifier drops notifications.
func NewHelper(transport Transport, notifier ports.Notifier, log zerolog.Logger) *Helper {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Helper{transport: transport, notifier: notifier, log: log}
}

type options struct {
	showToast   bool
	uploadField string
}

// Option adjusts a single request.
type Option func(*options)

// Silent suppresses success and failure notifications.
func Silent() Option {
	return func(o *options) { o.showToast = false }
}

// WithToast sets whether notifications are shown.
func WithToast(show bool) Option {
	return func(o *options) { o.showToast = show }
}

// UploadField overrides the multipart field name of an upload.
func UploadField(name string) Option {
	return func(o *options) { o.uploadField = name }
}

// envelope is the success body shape of the remote API.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Do executes method against path and decodes the envelope data into T.
func Do[T any](ctx context.Context, h *Helper, method Method, path string, body any, opts ...Option) Result[T] {
	o := options{showToast: true, uploadField: DefaultUploadField}
	for _, opt := range opts {
		opt(&o)
	}

	resp, err := h.send(ctx, method, path, body, o)
	if err != nil {
		return fail[T](h, method, path, classify(err), o)
	}

	var env envelope
	if len(bytes.TrimSpace(resp.Body)) > 0 {
		if err := json.Unmarshal(resp.Body, &env); err != nil {
			return fail[T](h, method, path, &Failure{Kind: FailureDecode, StatusCode: resp.StatusCode, Message: fallbackMessage, Err: err}, o)
		}
	}

	var res Result[T]
	res.Message = env.Message
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		res.Empty = true
	} else if err := json.Unmarshal(env.Data, &res.Value); err != nil {
		return fail[T](h, method, path, &Failure{Kind: FailureDecode, StatusCode: resp.StatusCode, Message: fallbackMessage, Err: err}, o)
	}

	if o.showToast && method.mutating() {
		h.notifier.Notify(domain.Notification{
			Title:       "Success",
			Description: messageOrDefault(env.Message, successMessage),
			Variant:     domain.VariantDefault,
		})
	}
	return res
}

// Get fetches path. GET requests never notify.
func Get[T any](ctx context.Context, h *Helper, path string, opts ...Option) Result[T] {
	return Do[T](ctx, h, MethodGet, path, nil, opts...)
}

// Post sends body to path.
func Post[T any](ctx context.Context, h *Helper, path string, body any, opts ...Option) Result[T] {
	return Do[T](ctx, h, MethodPost, path, body, opts...)
}

// Put sends body to path.
func Put[T any](ctx context.Context, h *Helper, path string, body any, opts ...Option) Result[T] {
	return Do[T](ctx, h, MethodPut, path, body, opts...)
}

// Delete removes the resource at path.
func Delete[T any](ctx context.Context, h *Helper, path string, opts ...Option) Result[T] {
	return Do[T](ctx, h, MethodDelete, path, nil, opts...)
}

// Upload posts file as multipart/form-data.
func Upload[T any](ctx context.Context, h *Helper, path string, file ports.Upload, opts ...Option) Result[T] {
	return Do[T](ctx, h, MethodUpload, path, file, opts...)
}

func (h *Helper) send(ctx context.Context, method Method, path string, body any, o options) (*apiclient.Response, error) {
	switch method {
	case MethodGet:
		return h.transport.Get(ctx, path)
	case MethodPost:
		return h.transport.Post(ctx, path, body)
	case MethodPut:
		return h.transport.Put(ctx, path, body)
	case MethodDelete:
		return h.transport.Delete(ctx, path)
	case MethodUpload:
		file, ok := body.(ports.Upload)
		if !ok {
			return nil, fmt.Errorf("upload %s: body must be a ports.Upload, got %T", path, body)
		}
		return h.transport.Upload(ctx, path, o.uploadField, file)
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
}

// fail logs f and, for mutating calls, emits a destructive notification
// carrying the server message or the fallback text.
func fail[T any](h *Helper, method Method, path string, f *Failure, o options) Result[T] {
	h.log.Warn().
		Err(f.Err).
		Str("method", string(method)).
		Str("path", path).
		Str("kind", f.Kind.String()).
		Int("status", f.StatusCode).
		Msg("request failed")

	if o.showToast && method.mutating() {
		h.notifier.Notify(domain.Notification{
			Title:       "Error",
			Description: f.Message,
			Variant:     domain.VariantDestructive,
		})
	}
	return Result[T]{Failure: f}
}

func messageOrDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

type nopNotifier struct{}

func (nopNotifier) Notify(domain.Notification) {}
