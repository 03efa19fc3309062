// Package session owns the client's notion of who is logged in.
//
// The persisted bearer token is the only durable artifact; the user record is
// always fetched from the server. A Store moves through Init -> Loading ->
// Ready -> Closed, and consumers must not make auth-dependent decisions while
// Loading reports true.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jaekwang-park/taskhub/internal/model"
	"github.com/jaekwang-park/taskhub/internal/tokenstore"
)

// API is the subset of the API client the store needs.
type API interface {
	Register(ctx context.Context, req model.RegisterRequest) error
	Login(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context) (model.User, error)
	CurrentUserWithToken(ctx context.Context, token string) (model.User, error)
}

type State int

const (
	StateInit State = iota
	StateLoading
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Store struct {
	api    API
	tokens tokenstore.Store
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	state State
	user  *model.User
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(api API, tokens tokenstore.Store, opts ...Option) *Store {
	s := &Store{
		api:    api,
		tokens: tokens,
		logger: slog.Default(),
		now:    time.Now,
		state:  StateInit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading is true until Restore has finished.
func (s *Store) Loading() bool {
	st := s.State()
	return st == StateInit || st == StateLoading
}

// User returns a copy of the current user.
func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

func (s *Store) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.IsAdmin()
}

// Restore re-establishes the session from a persisted token. It never
// returns an authentication failure: an unusable token just leaves the
// session anonymous. Only ErrClosed is returned.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.state = StateLoading
	s.mu.Unlock()

	user := s.restoreUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}
	s.user = user
	s.state = StateReady
	return nil
}

func (s *Store) restoreUser(ctx context.Context) *model.User {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNoToken) {
			s.logger.WarnContext(ctx, "failed to read persisted token", "error", err)
		}
		return nil
	}

	if claims, err := ParseClaims(token); err == nil && claims.Expired(s.now()) {
		s.logger.InfoContext(ctx, "persisted token expired", "expired_at", claims.ExpiresAt)
		s.clearToken(ctx)
		return nil
	}

	user, err := s.api.CurrentUserWithToken(ctx, token)
	if err != nil {
		s.logger.InfoContext(ctx, "session restore failed", "error", err)
		s.clearToken(ctx)
		return nil
	}

	s.logger.DebugContext(ctx, "session restored", "user_id", user.ID)
	return &user
}

// Login authenticates and commits the session. The token is persisted only
// after the user fetch succeeds, so a failure leaves no trace.
func (s *Store) Login(ctx context.Context, username, password string) error {
	if s.State() == StateClosed {
		return ErrClosed
	}

	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	user, err := s.api.CurrentUserWithToken(ctx, token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return ErrClosed
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.user = &user
	s.state = StateReady

	s.logger.InfoContext(ctx, "logged in", "user_id", user.ID, "role", string(user.Role))
	return nil
}

// Register creates the account and then logs in with the same credentials.
// Success means both happened.
func (s *Store) Register(ctx context.Context, req model.RegisterRequest) error {
	if s.State() == StateClosed {
		return ErrClosed
	}

	req.Role = model.RoleUser
	if err := s.api.Register(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrRegistration, err)
	}
	s.logger.InfoContext(ctx, "account registered", "username", req.Username)

	return s.Login(ctx, req.Username, req.Password)
}

// Logout drops the token and the user. Storage failures are logged.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearToken(ctx)
	s.user = nil
	if s.state != StateClosed {
		s.state = StateReady
	}
	s.logger.InfoContext(ctx, "logged out")
}

// RefreshUser replaces the in-memory user with the server's current record.
func (s *Store) RefreshUser(ctx context.Context) error {
	if s.State() == StateClosed {
		return ErrClosed
	}
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A logout may have landed while the request was in flight.
	if s.user == nil || s.state == StateClosed {
		return ErrNotAuthenticated
	}
	s.user = &user
	return nil
}

// Close tears the store down. The persisted token is kept for the next run.
func (s *Store) Close() {
	s.mu.Lock()
	s.state = StateClosed
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) clearToken(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to clear persisted token", "error", err)
	}
}
