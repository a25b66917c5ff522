package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/infrastructure/metrics"
)

// refreshPayload is the data member of the POST /auth/refresh envelope.
type refreshPayload struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

var errIncompleteRefresh = errors.New("refresh response carries no token or user")

// refresh exchanges the session cookie for a new access token. Concurrent
// callers share one in-flight exchange; each of them then replays its own
// request with the shared result.
func (c *Client) refresh(ctx context.Context) (*domain.Session, error) {
	v, err, shared := c.refreshes.Do(refreshPath, func() (any, error) {
		return c.exchange(context.WithoutCancel(ctx))
	})
	if shared {
		metrics.SessionRefreshTotal.WithLabelValues("shared").Inc()
	}
	if err != nil {
		return nil, err
	}
	return v.(*domain.Session), nil
}

// exchange performs the refresh call itself. It bypasses the 401 interceptor
// and sends no bearer token. On failure the stored session is cleared and the
// navigator is sent to the login route.
func (c *Client) exchange(ctx context.Context) (*domain.Session, error) {
	session, err := c.callRefresh(ctx)
	if err != nil {
		metrics.SessionRefreshTotal.WithLabelValues("failure").Inc()
		c.log.Warn().Err(err).Msg("session refresh failed, redirecting to login")

		if clearErr := c.store.Clear(ctx); clearErr != nil {
			c.log.Error().Err(clearErr).Msg("clear stored session")
		}
		c.navigator.Navigate(domain.RouteLogin)
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionExpired, err)
	}

	if err := c.store.Save(ctx, *session); err != nil {
		c.log.Error().Err(err).Msg("persist refreshed session")
	}
	metrics.SessionRefreshTotal.WithLabelValues("success").Inc()
	c.log.Info().Str("user_id", session.User.ID.String()).Msg("session refreshed")

	return session, nil
}

func (c *Client) callRefresh(ctx context.Context) (*domain.Session, error) {
	resp, err := c.send(ctx, &outgoing{
		method:    http.MethodPost,
		path:      refreshPath,
		anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, parseError(resp.StatusCode, resp.Body)
	}

	var env struct {
		Data refreshPayload `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if env.Data.AccessToken == "" || env.Data.User == nil {
		return nil, errIncompleteRefresh
	}

	return &domain.Session{User: *env.Data.User, AccessToken: env.Data.AccessToken}, nil
}
