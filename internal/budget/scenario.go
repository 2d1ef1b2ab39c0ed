// Package budget implements the two budget-simulation tools: a scripted
// scenario quiz judged entirely client-side, and a free-form calculator.
// The two share nothing; only the scenario quiz touches the session store,
// and only to grant XP.
package budget

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ehpadacademy/internal/catalog"
	"ehpadacademy/internal/session"
	"ehpadacademy/internal/types"
)

// XPPerCorrectAnswer is granted for a correct scenario answer. The themed
// quiz pays 20; the scenario quiz has always paid 30 and the two values are
// kept distinct on purpose.
const XPPerCorrectAnswer = 30

var (
	// ErrNoScenario rejects answering before a scenario is selected.
	ErrNoScenario = errors.New("budget: no scenario selected")
	// ErrNoAnswer rejects a submit without a chosen option.
	ErrNoAnswer = errors.New("budget: no answer selected")
	// ErrAlreadyAnswered rejects a second submit for the same question.
	ErrAlreadyAnswered = errors.New("budget: answer already submitted")
)

// ScenarioQuiz runs the scripted scenario exercise. Correctness is a strict
// local comparison against the scenario's embedded answer index; nothing
// about pass or fail is persisted.
type ScenarioQuiz struct {
	store  *session.Store
	logger *zap.Logger

	scenarios []types.BudgetScenario
	selected  *types.BudgetScenario
	current   int
	answer    int
	answered  bool
	correct   bool
}

// NewScenarioQuiz creates the controller bound to the session store.
func NewScenarioQuiz(store *session.Store, logger *zap.Logger) *ScenarioQuiz {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioQuiz{store: store, logger: logger, answer: -1}
}

// Load fetches the scenario catalog from the server, falling back to the
// built-in catalog when the endpoint is unreachable.
func (s *ScenarioQuiz) Load(ctx context.Context) {
	scenarios, err := s.store.Client().BudgetScenarios(ctx)
	if err != nil || len(scenarios) == 0 {
		if err != nil {
			s.logger.Debug("budget scenarios unavailable, using built-in catalog", zap.Error(err))
		}
		scenarios = catalog.BudgetScenarios()
	}
	s.scenarios = scenarios
}

// Scenarios returns the loaded catalog.
func (s *ScenarioQuiz) Scenarios() []types.BudgetScenario { return s.scenarios }

// Select picks a scenario and clears any prior answer and result.
func (s *ScenarioQuiz) Select(index int) error {
	if index < 0 || index >= len(s.scenarios) {
		return fmt.Errorf("budget: scenario %d out of range", index)
	}
	s.selected = &s.scenarios[index]
	s.current = 0
	s.answer = -1
	s.answered = false
	s.correct = false
	return nil
}

// Deselect returns to the scenario list.
func (s *ScenarioQuiz) Deselect() {
	s.selected = nil
	s.answer = -1
	s.answered = false
	s.correct = false
}

// Selected returns the active scenario, nil when on the list.
func (s *ScenarioQuiz) Selected() *types.BudgetScenario { return s.selected }

// CurrentQuestion returns the question under the cursor.
func (s *ScenarioQuiz) CurrentQuestion() *types.BudgetQuestion {
	if s.selected == nil || s.current >= len(s.selected.Questions) {
		return nil
	}
	return &s.selected.Questions[s.current]
}

// QuestionNumber returns the 1-based cursor position.
func (s *ScenarioQuiz) QuestionNumber() int { return s.current + 1 }

// SelectAnswer records the chosen option for the current question.
func (s *ScenarioQuiz) SelectAnswer(index int) error {
	question := s.CurrentQuestion()
	if question == nil {
		return ErrNoScenario
	}
	if s.answered {
		return ErrAlreadyAnswered
	}
	if index < 0 || index >= len(question.Options) {
		return fmt.Errorf("budget: option %d out of range", index)
	}
	s.answer = index
	return nil
}

// Submit judges the answer locally. A correct answer grants the fixed XP
// award exactly once; submitting again for the same question is rejected.
func (s *ScenarioQuiz) Submit(ctx context.Context) error {
	question := s.CurrentQuestion()
	if question == nil {
		return ErrNoScenario
	}
	if s.answered {
		return ErrAlreadyAnswered
	}
	if s.answer < 0 {
		return ErrNoAnswer
	}

	s.answered = true
	s.correct = s.answer == question.CorrectAnswer
	if s.correct {
		s.store.AddXP(ctx, XPPerCorrectAnswer)
	}
	return nil
}

// Answered reports whether the current question has been judged.
func (s *ScenarioQuiz) Answered() bool { return s.answered }

// Correct reports the local verdict for the submitted answer.
func (s *ScenarioQuiz) Correct() bool { return s.correct }

// Answer returns the chosen option index, -1 when none.
func (s *ScenarioQuiz) Answer() int { return s.answer }
