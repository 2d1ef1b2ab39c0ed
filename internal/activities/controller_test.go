package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ehpadacademy/internal/auth"
	"ehpadacademy/internal/session"
	"ehpadacademy/internal/types"
)

func sampleActivities() []types.Activity {
	return []types.Activity{
		{ID: "act1", Title: "Atelier Cuisine", Category: "Cognitive", Description: "Atelier de préparation de recettes simples."},
		{ID: "act2", Title: "Jardinage", Category: "Physique", Description: "Activité de plantation adaptée."},
	}
}

func TestFilterBySearchTerm(t *testing.T) {
	got := Filter(sampleActivities(), "jardin", "all")
	if len(got) != 1 || got[0].Title != "Jardinage" {
		t.Errorf("Filter(jardin) = %+v, want only Jardinage", got)
	}
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(sampleActivities(), "", "cognitive")
	if len(got) != 1 || got[0].Title != "Atelier Cuisine" {
		t.Errorf("Filter(cognitive) = %+v, want only Atelier Cuisine", got)
	}
}

func TestFilterMatchesDescription(t *testing.T) {
	got := Filter(sampleActivities(), "plantation", "all")
	if len(got) != 1 || got[0].ID != "act2" {
		t.Errorf("description match failed: %+v", got)
	}
}

func TestFilterCombines(t *testing.T) {
	// Search matches both via different fields, category narrows to one.
	got := Filter(sampleActivities(), "a", "physique")
	if len(got) != 1 || got[0].ID != "act2" {
		t.Errorf("combined filter = %+v", got)
	}
	if got := Filter(sampleActivities(), "jardin", "cognitive"); len(got) != 0 {
		t.Errorf("conflicting filters should match nothing, got %+v", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("Graines, Petits outils ,Jardinières,,  ")
	want := []string{"Graines", "Petits outils", "Jardinières"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SplitList mismatch (-want +got):\n%s", diff)
	}
	if got := SplitList(""); got != nil {
		t.Errorf("empty input should yield nil, got %+v", got)
	}
}

// activityServer emulates the activities endpoints plus just enough auth
// for a logged-in session.
type activityServer struct {
	user       *types.User
	activities []types.Activity

	lastCreated *types.Activity
	lastUpdated *types.Activity
	deleted     []string
	fetches     int
}

func (s *activityServer) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.user)
	})
	mux.HandleFunc("/api/config/game", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.GameConfig{})
	})
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.user)
	})
	mux.HandleFunc("/api/activities/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.fetches++
			writeJSON(w, s.activities)
		case http.MethodPost:
			var a types.Activity
			json.NewDecoder(r.Body).Decode(&a)
			a.ID = "new-id"
			s.lastCreated = &a
			s.activities = append(s.activities, a)
			writeJSON(w, a)
		case http.MethodPut:
			var a types.Activity
			json.NewDecoder(r.Body).Decode(&a)
			a.ID = strings.TrimPrefix(r.URL.Path, "/api/activities/")
			s.lastUpdated = &a
			writeJSON(w, a)
		case http.MethodDelete:
			id := strings.TrimPrefix(r.URL.Path, "/api/activities/")
			s.deleted = append(s.deleted, id)
			w.WriteHeader(http.StatusNoContent)
		}
	})
	return mux
}

func newLibrary(t *testing.T, srv *activityServer, login bool) *Controller {
	t.Helper()
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)
	tokens, err := auth.NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("NewTokenStore: %v", err)
	}
	store := session.New(session.Options{BaseURL: ts.URL, Tokens: tokens})
	if login {
		if err := store.Login(context.Background(), "a@b.c", "secret"); err != nil {
			t.Fatalf("Login: %v", err)
		}
	}
	return NewController(store, nil)
}

func validDraft() Draft {
	return Draft{
		Title:        "Atelier Chant",
		Category:     "Sociale",
		Duration:     "45 min",
		Participants: "8-10 personnes",
		Description:  "Chants d'autrefois en groupe.",
		Difficulty:   "Facile",
		Material:     "Paroles imprimées, Lecteur CD",
		Objectives:   "Stimuler la mémoire, Favoriser la socialisation",
		IsPublic:     true,
	}
}

func TestCreateSetsAuthorAndRefetches(t *testing.T) {
	srv := &activityServer{user: &types.User{ID: "user1", Name: "Alex Martin"}}
	lib := newLibrary(t, srv, true)

	if err := lib.Save(context.Background(), "", validDraft()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if srv.lastCreated == nil {
		t.Fatalf("no create reached the server")
	}
	if srv.lastCreated.Author != "Alex Martin" {
		t.Errorf("author = %q, want Alex Martin", srv.lastCreated.Author)
	}
	want := []string{"Paroles imprimées", "Lecteur CD"}
	if diff := cmp.Diff(want, srv.lastCreated.Material); diff != "" {
		t.Errorf("material not normalized (-want +got):\n%s", diff)
	}
	if srv.fetches != 1 {
		t.Errorf("expected one re-fetch after create, got %d", srv.fetches)
	}
}

func TestAnonymousCreateUsesInvite(t *testing.T) {
	srv := &activityServer{user: &types.User{}}
	lib := newLibrary(t, srv, false)

	if err := lib.Save(context.Background(), "", validDraft()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if srv.lastCreated.Author != AnonymousAuthor {
		t.Errorf("author = %q, want %q", srv.lastCreated.Author, AnonymousAuthor)
	}
}

func TestEditOverwritesAuthor(t *testing.T) {
	// The edit flow rewrites the author to the editing user. Known
	// behavior carried over from the original platform.
	srv := &activityServer{user: &types.User{ID: "user1", Name: "Claire Dubois"}}
	lib := newLibrary(t, srv, true)

	if err := lib.Save(context.Background(), "act1", validDraft()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if srv.lastUpdated == nil {
		t.Fatalf("no update reached the server")
	}
	if srv.lastUpdated.Author != "Claire Dubois" {
		t.Errorf("author = %q, want the editing user's name", srv.lastUpdated.Author)
	}
	if srv.lastCreated != nil {
		t.Errorf("edit must use PUT, not POST")
	}
}

func TestValidation(t *testing.T) {
	srv := &activityServer{user: &types.User{Name: "Alex"}}
	lib := newLibrary(t, srv, true)

	draft := validDraft()
	draft.Title = "  "
	err := lib.Save(context.Background(), "", draft)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("empty title: err = %v, want ErrValidation", err)
	}

	draft = validDraft()
	draft.Objectives = " , ,"
	err = lib.Save(context.Background(), "", draft)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("empty objectives: err = %v, want ErrValidation", err)
	}
	if srv.lastCreated != nil {
		t.Errorf("invalid draft must not reach the server")
	}
}

func TestDeleteRefetches(t *testing.T) {
	srv := &activityServer{user: &types.User{Name: "Alex"}, activities: sampleActivities()}
	lib := newLibrary(t, srv, true)

	if err := lib.Delete(context.Background(), "act1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(srv.deleted) != 1 || srv.deleted[0] != "act1" {
		t.Errorf("deleted = %+v", srv.deleted)
	}
	if srv.fetches != 1 {
		t.Errorf("expected re-fetch after delete, got %d", srv.fetches)
	}
}

func TestMarkdownExport(t *testing.T) {
	a := &types.Activity{
		Title:      "Jardinage Adapté",
		Category:   "Physique",
		Duration:   "45 min",
		Author:     "Équipe pédagogique",
		Material:   []string{"Graines", "Petits outils"},
		Objectives: []string{"Stimulation sensorielle"},
	}
	md := Markdown(a)
	for _, want := range []string{"# Jardinage Adapté", "## 🎯 Objectifs", "- Graines", "Équipe pédagogique"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
