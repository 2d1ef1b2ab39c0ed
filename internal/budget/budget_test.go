package budget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"ehpadacademy/internal/auth"
	"ehpadacademy/internal/session"
	"ehpadacademy/internal/types"
)

type budgetServer struct {
	user          types.User
	scenarios     []types.BudgetScenario
	scenariosFail bool

	xpCalls atomic.Int64
}

func (b *budgetServer) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, b.user)
	})
	mux.HandleFunc("/api/config/game", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.GameConfig{})
	})
	mux.HandleFunc("/api/budget/scenarios", func(w http.ResponseWriter, r *http.Request) {
		if b.scenariosFail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, b.scenarios)
	})
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/xp") {
			b.xpCalls.Add(1)
			points, _ := strconv.Atoi(r.URL.Query().Get("xp_points"))
			b.user.XP += points
		}
		writeJSON(w, b.user)
	})
	return mux
}

func testScenario() types.BudgetScenario {
	return types.BudgetScenario{
		ID:     "scenario1",
		Title:  "Budget Annuel Animation",
		Budget: 5000,
		Questions: []types.BudgetQuestion{
			{
				Question:      "Quel est le budget par résident pour l'année ?",
				Options:       []string{"80€", "100€", "120€", "150€"},
				CorrectAnswer: 1,
			},
		},
	}
}

func newBudgetHarness(t *testing.T, srv *budgetServer) (*ScenarioQuiz, *session.Store) {
	t.Helper()
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)
	tokens, err := auth.NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("NewTokenStore: %v", err)
	}
	store := session.New(session.Options{BaseURL: ts.URL, Tokens: tokens})
	if err := store.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	return NewScenarioQuiz(store, nil), store
}

func TestCorrectScenarioAnswerGrantsThirtyXPOnce(t *testing.T) {
	srv := &budgetServer{user: types.User{ID: "user1"}, scenarios: []types.BudgetScenario{testScenario()}}
	quiz, store := newBudgetHarness(t, srv)
	ctx := context.Background()

	quiz.Load(ctx)
	if err := quiz.Select(0); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := quiz.SelectAnswer(1); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := quiz.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !quiz.Correct() {
		t.Errorf("answer 1 should be correct")
	}
	if store.User().XP != 30 {
		t.Errorf("XP = %d, want 30", store.User().XP)
	}
	if srv.xpCalls.Load() != 1 {
		t.Errorf("xp endpoint called %d times, want 1", srv.xpCalls.Load())
	}

	// A second submit must not double-award.
	if err := quiz.Submit(ctx); err != ErrAlreadyAnswered {
		t.Errorf("second Submit = %v, want ErrAlreadyAnswered", err)
	}
	if srv.xpCalls.Load() != 1 {
		t.Errorf("xp endpoint called again on double submit")
	}
}

func TestWrongScenarioAnswerGrantsNothing(t *testing.T) {
	srv := &budgetServer{user: types.User{ID: "user1"}, scenarios: []types.BudgetScenario{testScenario()}}
	quiz, store := newBudgetHarness(t, srv)
	ctx := context.Background()

	quiz.Load(ctx)
	quiz.Select(0)
	quiz.SelectAnswer(0)
	if err := quiz.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if quiz.Correct() {
		t.Errorf("answer 0 is wrong")
	}
	if store.User().XP != 0 || srv.xpCalls.Load() != 0 {
		t.Errorf("wrong answer must not grant XP")
	}
}

func TestScenarioSelectionClearsPriorResult(t *testing.T) {
	srv := &budgetServer{user: types.User{ID: "user1"}, scenarios: []types.BudgetScenario{testScenario(), testScenario()}}
	quiz, _ := newBudgetHarness(t, srv)
	ctx := context.Background()

	quiz.Load(ctx)
	quiz.Select(0)
	quiz.SelectAnswer(1)
	quiz.Submit(ctx)

	quiz.Select(1)
	if quiz.Answered() || quiz.Answer() != -1 {
		t.Errorf("selecting a scenario must clear answer and result")
	}
	if quiz.QuestionNumber() != 1 {
		t.Errorf("cursor should reset to the first question")
	}
}

func TestScenarioFallbackToCatalog(t *testing.T) {
	srv := &budgetServer{user: types.User{ID: "user1"}, scenariosFail: true}
	quiz, _ := newBudgetHarness(t, srv)

	quiz.Load(context.Background())
	if len(quiz.Scenarios()) == 0 {
		t.Fatalf("expected built-in scenarios when the endpoint fails")
	}
	if quiz.Scenarios()[0].ID != "scenario1" {
		t.Errorf("unexpected fallback scenario %q", quiz.Scenarios()[0].ID)
	}
}

func TestSubmitGuards(t *testing.T) {
	srv := &budgetServer{user: types.User{ID: "user1"}, scenarios: []types.BudgetScenario{testScenario()}}
	quiz, _ := newBudgetHarness(t, srv)
	ctx := context.Background()

	if err := quiz.Submit(ctx); err != ErrNoScenario {
		t.Errorf("Submit without scenario = %v, want ErrNoScenario", err)
	}
	quiz.Load(ctx)
	quiz.Select(0)
	if err := quiz.Submit(ctx); err != ErrNoAnswer {
		t.Errorf("Submit without answer = %v, want ErrNoAnswer", err)
	}
	if err := quiz.SelectAnswer(17); err == nil {
		t.Errorf("out-of-range answer should fail")
	}
}

func TestCalculatorTotals(t *testing.T) {
	calc := NewCalculator([]string{"Matériel artistique", "Intervenants extérieurs", "Sorties"})
	calc.TotalBudget = "1000"
	calc.SetAmount(0, "400")
	calc.SetAmount(1, "400")
	calc.SetAmount(2, "300")

	if got := calc.Total(); got != 1100 {
		t.Errorf("Total = %v, want 1100", got)
	}
	if !calc.OverBudget() {
		t.Errorf("1100 > 1000 should be over budget")
	}
	if got := FormatAmount(calc.Overage()); got != "100.00€" {
		t.Errorf("overage = %q, want 100.00€", got)
	}
	if got := calc.Remaining(); got != -100 {
		t.Errorf("Remaining = %v, want -100", got)
	}
}

func TestCalculatorTreatsGarbageAsZero(t *testing.T) {
	calc := NewCalculator([]string{"Sorties", "Fêtes"})
	calc.TotalBudget = "500"
	calc.SetAmount(0, "abc")
	calc.SetAmount(1, "  250 ")

	if got := calc.Total(); got != 250 {
		t.Errorf("Total = %v, want 250 (garbage parses as zero)", got)
	}
	if calc.OverBudget() {
		t.Errorf("250 <= 500 must not flag overspend")
	}

	// Empty budget parses as zero too: any spend is an overspend.
	calc.TotalBudget = ""
	if !calc.OverBudget() {
		t.Errorf("spend against an empty budget is over budget")
	}
}
