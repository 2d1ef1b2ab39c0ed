package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"ehpadacademy/internal/activities"
	"ehpadacademy/internal/auth"
	"ehpadacademy/internal/budget"
	"ehpadacademy/internal/catalog"
	"ehpadacademy/internal/session"
	"ehpadacademy/internal/types"
)

func testStore(t *testing.T, baseURL string) *session.Store {
	t.Helper()
	tokens, err := auth.NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("token store: %v", err)
	}
	return session.New(session.Options{BaseURL: baseURL, Tokens: tokens})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomePageThemeStates(t *testing.T) {
	model := NewHomePageModel()
	model.SetSize(100, 30)

	user := &types.User{
		Name:            "Sophie",
		XP:              140,
		CompletedThemes: []string{"legislation"},
	}
	model.UpdateContent(user, catalog.Themes())

	view := model.View()
	if !strings.Contains(view, "Sophie") {
		t.Fatalf("expected user name in view")
	}
	if !strings.Contains(view, "Terminé") {
		t.Fatalf("expected completed marker for legislation")
	}
	if !strings.Contains(view, "Verrouillé") {
		t.Fatalf("expected a locked theme")
	}

	if got := model.SelectedTheme().ID; got != "legislation" {
		t.Fatalf("expected cursor on first theme, got %q", got)
	}
	if model.SelectedLocked() {
		t.Fatalf("first theme must never be locked")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := model.SelectedTheme().ID; got != "animation_types" {
		t.Fatalf("expected cursor on second theme, got %q", got)
	}
	if model.SelectedLocked() {
		t.Fatalf("second theme unlocked once the first is completed")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	if !model.SelectedLocked() {
		t.Fatalf("third theme locked while second is incomplete")
	}
}

func TestHomePageGuestBanner(t *testing.T) {
	model := NewHomePageModel()
	model.SetSize(100, 30)
	model.UpdateContent(nil, catalog.Themes())

	if !strings.Contains(model.View(), "Mode invité") {
		t.Fatalf("expected guest banner when logged out")
	}
}

func TestQuizPageEmptyAndLoadingStates(t *testing.T) {
	model := NewQuizPageModel()
	model.SetSize(100, 30)

	if !strings.Contains(model.View(), "Aucun quiz") {
		t.Fatalf("expected empty state before a controller is attached")
	}
}

func TestBudgetPageScenarioFlow(t *testing.T) {
	store := testStore(t, "http://127.0.0.1:1")
	quiz := budget.NewScenarioQuiz(store, nil)
	quiz.Load(context.Background())

	model := NewBudgetPageModel()
	model.SetSize(100, 30)
	model.UpdateContent(quiz)

	view := model.View()
	if !strings.Contains(view, "Choisissez un scénario") {
		t.Fatalf("expected scenario list")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = model.View()
	if !strings.Contains(view, "Budget :") {
		t.Fatalf("expected opened scenario to show its budget")
	}

	model, _ = model.Update(keyRunes("2"))
	if !model.ReadyToSubmit() {
		t.Fatalf("expected a picked answer ready to submit")
	}

	if err := model.Quiz().Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	view = model.View()
	if !strings.Contains(view, "Bonne réponse") && !strings.Contains(view, "Mauvaise réponse") {
		t.Fatalf("expected a verdict after submit")
	}
}

func TestBudgetPageCalculatorTotals(t *testing.T) {
	model := NewBudgetPageModel()
	model.SetSize(100, 30)

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.Tab() != TabCalculator {
		t.Fatalf("expected calculator tab after tab key")
	}

	model, _ = model.Update(keyRunes("1000"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(keyRunes("400"))

	view := model.View()
	if !strings.Contains(view, "400.00€") {
		t.Fatalf("expected running total in view:\n%s", view)
	}
	if !strings.Contains(view, "600.00€") {
		t.Fatalf("expected remaining amount in view:\n%s", view)
	}
}

func TestActivitiesPageListAndForm(t *testing.T) {
	sheets := []types.Activity{
		{ID: "a1", Title: "Atelier Jardinage", Category: "Physique", Duration: "45 min", Author: "Marie", Description: "Plantation de fleurs"},
		{ID: "a2", Title: "Atelier Cuisine", Category: "Cognitive", Duration: "60 min", Author: "Paul", Description: "Stimulation cognitive"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sheets)
	}))
	defer srv.Close()

	store := testStore(t, srv.URL)
	lib := activities.NewController(store, nil)
	if err := lib.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	model := NewActivitiesPageModel()
	model.SetSize(100, 30)
	model.UpdateContent(lib)

	view := model.View()
	if !strings.Contains(view, "Atelier Jardinage") || !strings.Contains(view, "Atelier Cuisine") {
		t.Fatalf("expected both sheets in the list")
	}

	// Search narrows the list live.
	model, _ = model.Update(keyRunes("/"))
	model, _ = model.Update(keyRunes("jardin"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	view = model.View()
	if strings.Contains(view, "Atelier Cuisine") {
		t.Fatalf("expected cuisine sheet filtered out")
	}

	// Open the detail view.
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.Mode() != ModeDetail {
		t.Fatalf("expected detail mode, got %v", model.Mode())
	}
	if !strings.Contains(model.View(), "Jardinage") {
		t.Fatalf("expected rendered sheet in detail view")
	}

	// Edit pre-fills the form from the sheet.
	model, _ = model.Update(keyRunes("e"))
	if model.Mode() != ModeForm {
		t.Fatalf("expected form mode, got %v", model.Mode())
	}
	draft := model.Draft()
	if draft.Title != "Atelier Jardinage" || draft.Category != "Physique" {
		t.Fatalf("expected pre-filled draft, got %+v", draft)
	}
	if model.EditID() != "a1" {
		t.Fatalf("expected edit id a1, got %q", model.EditID())
	}
}

func TestActivitiesPageDeleteConfirmation(t *testing.T) {
	sheets := []types.Activity{{ID: "a1", Title: "Loto sonore", Category: "Sociale"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sheets)
	}))
	defer srv.Close()

	store := testStore(t, srv.URL)
	lib := activities.NewController(store, nil)
	if err := lib.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	model := NewActivitiesPageModel()
	model.SetSize(100, 30)
	model.UpdateContent(lib)

	model, _ = model.Update(keyRunes("d"))
	if model.Mode() != ModeConfirmDelete {
		t.Fatalf("expected confirmation mode")
	}
	if !strings.Contains(model.View(), "Loto sonore") {
		t.Fatalf("expected sheet title in confirmation prompt")
	}

	model, _ = model.Update(keyRunes("n"))
	if model.Mode() != ModeList {
		t.Fatalf("expected n to cancel the deletion")
	}
}

func TestLoginPageToggleAndCredentials(t *testing.T) {
	model := NewLoginPageModel()
	model.SetSize(100, 30)

	if !strings.Contains(model.View(), "Connexion") {
		t.Fatalf("expected login form by default")
	}

	model, _ = model.Update(keyRunes("marie@ehpad.fr"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model, _ = model.Update(keyRunes("secret"))

	_, email, password := model.Credentials()
	if email != "marie@ehpad.fr" || password != "secret" {
		t.Fatalf("unexpected credentials %q %q", email, password)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !model.Registering() {
		t.Fatalf("expected registration mode after ctrl+r")
	}
	if !strings.Contains(model.View(), "Créer un compte") {
		t.Fatalf("expected registration form title")
	}
}

func TestProfilePageAvatarGating(t *testing.T) {
	model := NewProfilePageModel()
	model.SetSize(100, 30)

	user := &types.User{Name: "Sophie", Email: "sophie@ehpad.fr", XP: 120, Avatar: "avatar1", Badges: []string{"first_quiz"}}
	model.UpdateContent(user, catalog.Avatars(), catalog.Badges())

	view := model.View()
	if !strings.Contains(view, "Sophie") || !strings.Contains(view, "Niveau 1") {
		t.Fatalf("expected identity and level in view")
	}
	if !strings.Contains(view, "niveau 5 requis") {
		t.Fatalf("expected locked avatar hint")
	}

	if !model.SelectedUnlocked() {
		t.Fatalf("default avatar must be available")
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
	if model.SelectedUnlocked() {
		t.Fatalf("second avatar gated at level 5")
	}
}
