package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ehpadacademy/internal/types"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(Config{
		BaseURL: srv.URL,
		Token:   func() string { return token },
	})
	return client, srv
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.User{ID: "user1"})
	}), "tok-123")

	if _, err := client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotRequestID == "" {
		t.Errorf("expected X-Request-ID header to be set")
	}
}

func TestNoTokenMeansUnauthenticatedCall(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}), "")

	if _, err := client.Themes(context.Background()); err != nil {
		t.Fatalf("Themes: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty for anonymous call", gotAuth)
	}
}

func TestQueryStringParameters(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(types.User{ID: "user1", XP: 20})
	}), "tok")

	user, err := client.AddXP(context.Background(), "user1", 20)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if gotPath != "/api/users/user1/xp" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "xp_points=20" {
		t.Errorf("query = %q, want xp_points=20", gotQuery)
	}
	if user.XP != 20 {
		t.Errorf("user.XP = %d, want 20", user.XP)
	}
}

func TestServerDetailSurfaced(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Email already registered"}`))
	}), "")

	err := client.Register(context.Background(), RegisterRequest{Name: "a", Email: "a@b.c", Password: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Detail != "Email already registered" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestNonJSONSuccessBodyIsAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>proxy splash page</html>"))
	}), "")

	_, err := client.ListActivities(context.Background(), ActivityFilter{PublicOnly: true, Limit: 100})
	if err == nil {
		t.Fatalf("expected error for non-JSON response")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&Error{Status: http.StatusUnauthorized}) {
		t.Errorf("401 should be an auth error")
	}
	if !IsAuthError(&Error{Status: http.StatusForbidden}) {
		t.Errorf("403 should be an auth error")
	}
	if IsAuthError(&Error{Status: http.StatusInternalServerError}) {
		t.Errorf("500 is not an auth error")
	}
	if IsAuthError(context.Canceled) {
		t.Errorf("non-api errors are not auth errors")
	}
}

func TestActivityListQuery(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}), "")

	if _, err := client.ListActivities(context.Background(), ActivityFilter{PublicOnly: true, Limit: 100}); err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if gotQuery != "is_public=true&limit=100" {
		t.Errorf("query = %q, want is_public=true&limit=100", gotQuery)
	}
}

func TestQuizAnswerQuery(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"is_correct":true,"correct_answer":1}`))
	}), "tok")

	result, err := client.SubmitQuizAnswer(context.Background(), "sess-1", 7, 1)
	if err != nil {
		t.Fatalf("SubmitQuizAnswer: %v", err)
	}
	if gotPath != "/api/quiz/sessions/sess-1/answer" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "question_id=7&user_answer=1" {
		t.Errorf("query = %q", gotQuery)
	}
	if !result.IsCorrect {
		t.Errorf("expected is_correct to decode true")
	}
}
