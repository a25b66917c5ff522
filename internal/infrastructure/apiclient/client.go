// Package apiclient is the HTTP adapter for the remote LocalTalent API. It
// attaches the stored bearer token to every request and transparently
// refreshes an expired token once per request before replaying it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/infrastructure/metrics"
)

const (
	// DefaultBaseURL is used when no API URL is configured.
	DefaultBaseURL = "http://localhost:8000/api"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"
	headerUserAgent     = "User-Agent"
	contentTypeJSON     = "application/json"
	clientUserAgent     = "localtalent-console/1.0"

	refreshPath = "/auth/refresh"
	pingPath    = "/service"
)

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Client is the LocalTalent API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	jar        http.CookieJar
	store      ports.SessionStore
	navigator  ports.Navigator
	log        zerolog.Logger

	refreshes singleflight.Group
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A cookie jar is attached when the
// client has none, because the refresh call relies on the session cookie.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithCookieJar sets the jar holding the remote session cookie.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithNavigator sets where the client redirects once a refresh fails.
func WithNavigator(n ports.Navigator) Option {
	return func(c *Client) {
		c.navigator = n
	}
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, store ports.SessionStore, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("apiclient: session store is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		store:      store,
		navigator:  nopNavigator{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.jar != nil {
		hc.Jar = c.jar
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("apiclient: cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc

	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, &outgoing{method: http.MethodGet, path: path})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	o, err := jsonRequest(http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, o)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	o, err := jsonRequest(http.MethodPut, path, body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, o)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, &outgoing{method: http.MethodDelete, path: path})
}

// Upload posts a single file as multipart/form-data under the given field.
func (c *Client) Upload(ctx context.Context, path, field string, file ports.Upload) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := fw.Write(file.Content); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	return c.do(ctx, &outgoing{
		method:      http.MethodPost,
		path:        path,
		body:        buf.Bytes(),
		contentType: mw.FormDataContentType(),
	})
}

// Ping checks that the API answers at all. Any status below 500 counts as
// reachable; the request is anonymous and never triggers a refresh.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, &outgoing{method: http.MethodGet, path: pingPath, anonymous: true})
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return parseError(resp.StatusCode, resp.Body)
	}
	return nil
}

// outgoing is a replayable request. retried is the per-request marker that
// limits each original request to a single refresh attempt.
type outgoing struct {
	method      string
	path        string
	body        []byte
	contentType string
	token       string
	anonymous   bool
	retried     bool
}

func jsonRequest(method, path string, body any) (*outgoing, error) {
	o := &outgoing{method: method, path: path}
	if body == nil {
		return o, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	o.body = b
	o.contentType = contentTypeJSON
	return o, nil
}

// do sends o and, on a first 401, refreshes the token and replays o once.
// The caller only ever observes the final response.
func (c *Client) do(ctx context.Context, o *outgoing) (*Response, error) {
	resp, err := c.send(ctx, o)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !o.retried && o.path != refreshPath {
		o.retried = true

		session, err := c.refresh(ctx)
		if err != nil {
			return nil, err
		}

		o.token = session.AccessToken
		resp, err = c.send(ctx, o)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, parseError(resp.StatusCode, resp.Body)
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, o *outgoing) (*Response, error) {
	var body io.Reader
	if len(o.body) > 0 {
		body = bytes.NewReader(o.body)
	}

	req, err := http.NewRequestWithContext(ctx, o.method, c.baseURL+o.path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if token := c.bearer(ctx, o); token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	req.Header.Set(headerUserAgent, clientUserAgent)
	if o.contentType != "" {
		req.Header.Set(headerContentType, o.contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(o.method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(o.method, "error").Inc()
		return nil, fmt.Errorf("%s %s: %w", o.method, o.path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(o.method, "error").Inc()
		return nil, fmt.Errorf("%s %s: read body: %w", o.method, o.path, err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(o.method, strconv.Itoa(resp.StatusCode)).Inc()

	c.log.Debug().
		Str("method", o.method).
		Str("path", o.path).
		Int("status", resp.StatusCode).
		Bool("retried", o.retried).
		Msg("api request")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// bearer returns the token to attach: the refreshed one on a replay,
// otherwise whatever the store currently holds. The refresh call only ever
// carries the session cookie.
func (c *Client) bearer(ctx context.Context, o *outgoing) string {
	if o.anonymous || o.path == refreshPath {
		return ""
	}
	if o.token != "" {
		return o.token
	}
	session, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			c.log.Warn().Err(err).Msg("read stored session")
		}
		return ""
	}
	return session.AccessToken
}

type nopNavigator struct{}

func (nopNavigator) Navigate(string) {}
