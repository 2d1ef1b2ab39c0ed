// Package auth persists the bearer token between runs. The token is the only
// state the client keeps on disk; everything else is refetched from the
// server on startup.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore reads and writes the bearer token at a fixed path.
type TokenStore struct {
	path string
}

// NewTokenStore creates a store for the given file path. When path is empty
// the token lives under the user config directory.
func NewTokenStore(path string) (*TokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "ehpad-academy", "token")
	}
	return &TokenStore{path: path}, nil
}

// Path returns the file the token is stored at.
func (s *TokenStore) Path() string {
	return s.path
}

// Load returns the stored token, or "" when none exists.
func (s *TokenStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save writes the token with owner-only permissions.
func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. A missing file is not an error.
func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Expired reports whether the token carries an exp claim in the past.
// The signature is deliberately not verified: the client has no key and the
// server remains the authority. Tokens that do not parse as JWTs, or carry
// no exp claim, are reported as not expired and left for the server to
// judge on the first /auth/me call.
func Expired(token string, now time.Time) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
