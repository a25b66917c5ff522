package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// FileJar is an http.CookieJar that mirrors the API's cookies to a file so
// the refresh cookie survives process restarts. Path, expiry and the Secure
// flag are kept alongside each cookie; expired cookies are never persisted
// or restored.
type FileJar struct {
	mu      sync.Mutex
	path    string
	base    *url.URL
	jar     *cookiejar.Jar
	cookies map[string]storedCookie
	now     func() time.Time
	log     zerolog.Logger
}

type storedCookie struct {
	Name     string     `json:"name"`
	Value    string     `json:"value"`
	Path     string     `json:"path"`
	Domain   string     `json:"domain,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
	Secure   bool       `json:"secure,omitempty"`
	HTTPOnly bool       `json:"http_only,omitempty"`
}

func (sc storedCookie) key() string { return sc.Domain + ";" + sc.Path + ";" + sc.Name }

func (sc storedCookie) expired(now time.Time) bool {
	return sc.Expires != nil && !sc.Expires.After(now)
}

func (sc storedCookie) cookie() *http.Cookie {
	c := &http.Cookie{
		Name:     sc.Name,
		Value:    sc.Value,
		Path:     sc.Path,
		Domain:   sc.Domain,
		Secure:   sc.Secure,
		HttpOnly: sc.HTTPOnly,
	}
	if sc.Expires != nil {
		c.Expires = *sc.Expires
	}
	return c
}

// NewFileJar loads any cookies previously saved at path for the API rooted at
// baseURL.
func NewFileJar(path, baseURL string, log zerolog.Logger) (*FileJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: parse base url: %w", err)
	}

	j := &FileJar{
		path:    path,
		base:    base,
		jar:     jar,
		cookies: make(map[string]storedCookie),
		now:     time.Now,
		log:     log,
	}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

// Cookies implements http.CookieJar.
func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// SetCookies implements http.CookieJar and persists the result.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	j.mu.Lock()
	now := j.now()
	for _, c := range cookies {
		sc := storedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     cookiePath(u, c),
			Domain:   strings.TrimPrefix(strings.ToLower(c.Domain), "."),
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
		switch {
		case c.MaxAge < 0:
			sc.Expires = &now
		case c.MaxAge > 0:
			exp := now.Add(time.Duration(c.MaxAge) * time.Second)
			sc.Expires = &exp
		case !c.Expires.IsZero():
			exp := c.Expires.UTC()
			sc.Expires = &exp
		}
		if sc.expired(now) {
			delete(j.cookies, sc.key())
			continue
		}
		j.cookies[sc.key()] = sc
	}
	j.mu.Unlock()

	if err := j.save(); err != nil {
		j.log.Warn().Err(err).Str("path", j.path).Msg("persist cookies")
	}
}

// cookiePath is the path a cookie applies to: its Path attribute, or the
// directory of the request path when the attribute is missing or relative.
func cookiePath(u *url.URL, c *http.Cookie) string {
	if strings.HasPrefix(c.Path, "/") {
		return c.Path
	}
	p := u.Path
	if p == "" || p[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(p, "/")
	if i == 0 {
		return "/"
	}
	return p[:i]
}

func (j *FileJar) load() error {
	b, err := os.ReadFile(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cookie jar: read %s: %w", j.path, err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(b, &stored); err != nil {
		j.log.Warn().Err(err).Str("path", j.path).Msg("discarding unreadable cookie file")
		return nil
	}

	now := j.now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		if sc.Name == "" || sc.expired(now) {
			continue
		}
		if sc.Path == "" {
			sc.Path = "/"
		}
		j.cookies[sc.key()] = sc
		cookies = append(cookies, sc.cookie())
	}
	j.jar.SetCookies(j.base, cookies)
	return nil
}

func (j *FileJar) save() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	stored := make([]storedCookie, 0, len(j.cookies))
	for k, sc := range j.cookies {
		if sc.expired(now) {
			delete(j.cookies, k)
			continue
		}
		stored = append(stored, sc)
	}
	sort.Slice(stored, func(a, b int) bool { return stored[a].key() < stored[b].key() })

	b, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return err
	}
	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, j.path)
}
