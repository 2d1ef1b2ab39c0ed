// Package session owns the authenticated user's state. The store is an
// explicit object handed to every view that needs it; there are no package
// globals. Every mutation round-trips to the API and replaces the in-memory
// user with the server's response wholesale — the contract is "every
// mutation is a full reload", never a merge.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"ehpadacademy/internal/api"
	"ehpadacademy/internal/auth"
	"ehpadacademy/internal/types"
)

// Store holds the authenticated user record, the game-configuration bundle,
// and the in-memory bearer token. Gamification mutations (XP, badges, theme
// completion) are best-effort: failures are logged and swallowed so a flaky
// connection never interrupts a quiz in progress. Login, registration and
// the initial load surface their errors.
type Store struct {
	client *api.Client
	tokens *auth.TokenStore
	logger *zap.Logger

	mu         sync.RWMutex
	token      string
	user       *types.User
	loading    bool
	gameConfig *types.GameConfig
}

// Options configures a Store.
type Options struct {
	// BaseURL is the server root, without the /api suffix.
	BaseURL string
	// Timeout bounds API requests; zero means the client default.
	Timeout time.Duration
	// Tokens persists the bearer token between runs.
	Tokens *auth.TokenStore
	Logger *zap.Logger
}

// New creates a store and the API client it drives. The client reads the
// bearer token from the store on every request, so a login or logout takes
// effect immediately.
func New(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Store{
		tokens: opts.Tokens,
		logger: opts.Logger,
	}
	s.client = api.New(api.Config{
		BaseURL: opts.BaseURL,
		Timeout: opts.Timeout,
		Token:   s.Token,
		Logger:  opts.Logger,
	})
	return s
}

// Client exposes the API client sharing this store's credentials.
func (s *Store) Client() *api.Client {
	return s.client
}

// Token returns the current in-memory bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user record, or nil when logged out. The record
// is replaced wholesale on every mutation and never edited in place, so a
// pointer handed out here stays internally consistent.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// GameConfig returns the lazily-loaded game configuration, or nil when the
// config endpoint was unreachable.
func (s *Store) GameConfig() *types.GameConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameConfig
}

// Loading reports whether Initialize is still running.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LoggedIn reports whether a user record is present.
func (s *Store) LoggedIn() bool {
	return s.User() != nil
}

// Initialize restores the session from the stored token. An absent token
// leaves the store logged out; an expired, rejected, or otherwise unusable
// token is discarded silently — startup never surfaces an auth error, it
// downgrades to logged-out. The game-configuration bundle is loaded
// best-effort afterwards.
func (s *Store) Initialize(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.tokens.Load()
	if err != nil {
		return fmt.Errorf("load stored token: %w", err)
	}

	if token != "" && auth.Expired(token, time.Now()) {
		s.logger.Info("stored token expired, discarding")
		s.discardToken()
		token = ""
	}

	if token != "" {
		s.setToken(token)
		user, err := s.client.CurrentUser(ctx)
		if err != nil {
			s.logger.Info("stored token rejected, logging out", zap.Error(err))
			s.discardToken()
		} else {
			s.setUser(user)
		}
	}

	s.loadGameConfig(ctx)
	return nil
}

// Login exchanges credentials for a token, persists it, and fetches the
// user record. Errors are returned to the caller.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.setToken(resp.AccessToken)
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		s.logger.Warn("could not persist token", zap.Error(err))
	}

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.discardToken()
		return err
	}
	s.setUser(user)

	if s.GameConfig() == nil {
		s.loadGameConfig(ctx)
	}
	return nil
}

// Register creates an account then logs in with the same credentials.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	req := api.RegisterRequest{Name: name, Email: email, Password: password}
	if err := s.client.Register(ctx, req); err != nil {
		return fmt.Errorf("erreur d'inscription : %w", err)
	}
	return s.Login(ctx, email, password)
}

// Logout discards the token and the in-memory user. No network call.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("could not clear stored token", zap.Error(err))
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

// UpdateUser applies partial profile fields. No-op when logged out;
// failures are logged and swallowed.
func (s *Store) UpdateUser(ctx context.Context, update types.UserUpdate) {
	user := s.User()
	if user == nil {
		return
	}
	updated, err := s.client.UpdateUser(ctx, user.ID, update)
	if err != nil {
		s.logger.Warn("user update failed", zap.Error(err))
		return
	}
	s.setUser(updated)
}

// AddXP grants experience points. No-op when logged out; failures are
// logged and swallowed.
func (s *Store) AddXP(ctx context.Context, points int) {
	user := s.User()
	if user == nil {
		return
	}
	updated, err := s.client.AddXP(ctx, user.ID, points)
	if err != nil {
		s.logger.Warn("xp grant failed", zap.Int("points", points), zap.Error(err))
		return
	}
	s.setUser(updated)
}

// UnlockBadge grants a badge. Idempotent: a badge already held produces no
// network call at all.
func (s *Store) UnlockBadge(ctx context.Context, badgeID string) {
	user := s.User()
	if user == nil || user.HasBadge(badgeID) {
		return
	}
	updated, err := s.client.AddBadge(ctx, user.ID, badgeID)
	if err != nil {
		s.logger.Warn("badge unlock failed", zap.String("badge", badgeID), zap.Error(err))
		return
	}
	s.setUser(updated)
}

// CompleteTheme marks a theme completed. Idempotent: a theme already in the
// completed set produces no network call at all.
func (s *Store) CompleteTheme(ctx context.Context, themeID string) {
	user := s.User()
	if user == nil || user.HasCompletedTheme(themeID) {
		return
	}
	updated, err := s.client.CompleteTheme(ctx, user.ID, themeID)
	if err != nil {
		s.logger.Warn("theme completion failed", zap.String("theme", themeID), zap.Error(err))
		return
	}
	s.setUser(updated)
}

func (s *Store) loadGameConfig(ctx context.Context) {
	cfg, err := s.client.GameConfig(ctx)
	if err != nil {
		s.logger.Debug("game config unavailable", zap.Error(err))
		return
	}
	s.mu.Lock()
	s.gameConfig = cfg
	s.mu.Unlock()
}

func (s *Store) discardToken() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("could not clear stored token", zap.Error(err))
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

func (s *Store) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Store) setUser(user *types.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
