package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/request"
	"github.com/localtalent/console/internal/pkg/validate"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathLogout   = "/auth/logout"
	pathRefresh  = "/auth/refresh"
)

// AuthService holds the authenticated identity of one client. It is
// constructed by the composition root, restored with Init and released with
// Teardown; there is no package-level session state.
type AuthService struct {
	helper    *request.Helper
	store     ports.SessionStore
	navigator ports.Navigator
	log       zerolog.Logger

	// transition serializes lifecycle operations; mu guards the fields below.
	transition sync.Mutex
	mu         sync.RWMutex
	state      ports.SessionState
	loading    bool
	session    *domain.Session
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(helper *request.Helper, store ports.SessionStore, navigator ports.Navigator, log zerolog.Logger) *AuthService {
	return &AuthService{
		helper:    helper,
		store:     store,
		navigator: navigator,
		log:       log,
		state:     ports.StateUnauthenticated,
	}
}

type loginForm struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerForm struct {
	Name     string      `json:"name"     validate:"required"`
	Email    string      `json:"email"    validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role"     validate:"required,oneof=USER FREELANCER"`
}

type loginPayload struct {
	User   domain.User `json:"user"`
	Tokens struct {
		AccessToken string `json:"accessToken"`
	} `json:"tokens"`
}

type refreshPayload struct {
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
}

// Init restores a stored session with one silent refresh. It is best effort:
// it always returns, and loading drops whatever the outcome.
func (s *AuthService) Init(ctx context.Context) {
	s.transition.Lock()
	defer s.transition.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	if _, err := s.store.Load(ctx); err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			s.log.Warn().Err(err).Msg("read stored session")
		}
		s.adopt(nil)
		return
	}

	s.setState(ports.StateRestoring)
	res := request.Post[refreshPayload](ctx, s.helper, pathRefresh, struct{}{}, request.Silent())
	data, ok := res.Get()
	if !ok || data.AccessToken == "" || data.User == nil {
		s.log.Info().Msg("stored session could not be restored")
		s.clearStore(ctx)
		s.adopt(nil)
		s.navigator.Navigate(domain.RouteLogin)
		return
	}

	session := domain.Session{User: *data.User, AccessToken: data.AccessToken}
	if err := s.store.Save(ctx, session); err != nil {
		s.log.Error().Err(err).Msg("persist restored session")
	}
	s.adopt(&session)
	s.log.Info().Str("user_id", session.User.ID.String()).Str("role", string(session.User.Role)).Msg("session restored")
}

// Login authenticates against the remote API, persists the session and
// navigates to the admin area. Form errors are returned before any request.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	form := loginForm{Email: email, Password: password}
	if err := validate.Struct(form); err != nil {
		return err
	}

	s.transition.Lock()
	defer s.transition.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	res := request.Post[loginPayload](ctx, s.helper, pathLogin, form)
	data, ok := res.Get()
	if !ok {
		return fmt.Errorf("%w: %w", domain.ErrLoginFailed, res.Failure)
	}
	if data.Tokens.AccessToken == "" || data.User.ID.IsZero() {
		return fmt.Errorf("%w: response carries no session", domain.ErrLoginFailed)
	}

	session := domain.Session{User: data.User, AccessToken: data.Tokens.AccessToken}
	if err := s.store.Save(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.adopt(&session)
	s.log.Info().Str("user_id", session.User.ID.String()).Str("role", string(session.User.Role)).Msg("signed in")

	s.navigator.Navigate(domain.RouteAdmin)
	return nil
}

// Register creates an account. Whatever the backend returns, the caller is
// left signed out: local state is cleared and the server is told to log out.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) error {
	form := registerForm{Name: name, Email: email, Password: password, Role: role}
	if err := validate.Struct(form); err != nil {
		return err
	}

	s.transition.Lock()
	defer s.transition.Unlock()
	s.setLoading(true)
	defer s.setLoading(false)

	res := request.Post[json.RawMessage](ctx, s.helper, pathRegister, form)
	if !res.OK() {
		return fmt.Errorf("%w: %w", domain.ErrRequestFailed, res.Failure)
	}
	if !res.Empty {
		s.clearStore(ctx)
		s.adopt(nil)
		request.Post[json.RawMessage](ctx, s.helper, pathLogout, struct{}{}, request.Silent())
	}
	s.log.Info().Str("email", email).Str("role", string(role)).Msg("account registered")
	return nil
}

// Logout clears the stored session, notifies the server (result ignored),
// navigates to login and drops the in-memory identity.
func (s *AuthService) Logout(ctx context.Context) {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.clearStore(ctx)
	request.Post[json.RawMessage](ctx, s.helper, pathLogout, struct{}{}, request.Silent())
	s.navigator.Navigate(domain.RouteLogin)
	s.adopt(nil)
	s.log.Info().Msg("signed out")
}

func (s *AuthService) Expire() {
	s.adopt(nil)
}

// Teardown releases the in-memory identity without touching storage, so the
// next Init can restore it.
func (s *AuthService) Teardown() {
	s.transition.Lock()
	defer s.transition.Unlock()
	s.adopt(nil)
}

// Current returns a copy of the adopted session.
func (s *AuthService) Current() (*domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, false
	}
	clone := *s.session
	return &clone, true
}

func (s *AuthService) State() ports.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether a lifecycle operation is in progress.
func (s *AuthService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *AuthService) adopt(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	if session == nil {
		s.state = ports.StateUnauthenticated
	} else {
		s.state = ports.StateAuthenticated
	}
}

func (s *AuthService) setState(state ports.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

func (s *AuthService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *AuthService) clearStore(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("clear stored session")
	}
}
