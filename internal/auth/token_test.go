package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	store, err := NewTokenStore(filepath.Join(t.TempDir(), "nested", "token"))
	if err != nil {
		t.Fatalf("NewTokenStore: %v", err)
	}

	// Empty before anything is saved.
	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" {
		t.Fatalf("Load on fresh store = %q, want empty", token)
	}

	if err := store.Save("tok-abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-abc" {
		t.Errorf("Load = %q, want tok-abc", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, _ = store.Load()
	if token != "" {
		t.Errorf("Load after Clear = %q, want empty", token)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user1", "exp": exp.Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !Expired(signedToken(t, now.Add(-time.Hour)), now) {
		t.Errorf("token past exp should be expired")
	}
	if Expired(signedToken(t, now.Add(time.Hour)), now) {
		t.Errorf("token before exp should not be expired")
	}

	// Opaque tokens are left for the server to judge.
	if Expired("not-a-jwt", now) {
		t.Errorf("opaque token must not be reported expired")
	}
}
