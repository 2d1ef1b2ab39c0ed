// Package quiz drives one themed quiz attempt against the remote API: a
// question cursor, the pending selection, the revealed verdict, and the
// running score. The server judges every answer; the controller only mirrors
// its verdicts and hands out the gamification rewards at the end.
package quiz

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ehpadacademy/internal/session"
	"ehpadacademy/internal/types"
)

// XPPerCorrectAnswer is granted for each answer the server judges correct.
const XPPerCorrectAnswer = 20

// PassPercent is the completion threshold for a theme.
const PassPercent = 70.0

// BadgePercent is the extra threshold for the theme-specific mastery badges.
const BadgePercent = 80.0

// themeBadges maps the themes that carry a mastery badge to the badge id
// unlocked at BadgePercent.
var themeBadges = map[string]string{
	"legislation":       "legislation_master",
	"animation_types":   "animation_expert",
	"budget_management": "budget_wizard",
}

// State is the controller's position in the quiz flow.
type State int

const (
	// StateLoading is the initial state before Start has finished.
	StateLoading State = iota
	// StateUnavailable is terminal: the theme has no questions.
	StateUnavailable
	// StateAnswering waits for a selection on the current question.
	StateAnswering
	// StateRevealed shows the verdict for the submitted answer.
	StateRevealed
	// StateCompleted is terminal: the cursor passed the last question.
	StateCompleted
)

var (
	// ErrNotAnswering rejects an operation outside the answering state.
	ErrNotAnswering = errors.New("quiz: not awaiting an answer")
	// ErrNoSelection rejects a submit without a selected option.
	ErrNoSelection = errors.New("quiz: no answer selected")
	// ErrNoSession rejects a submit when no server session is open
	// (anonymous visitors can browse questions but not answer them).
	ErrNoSession = errors.New("quiz: no active session")
)

// Controller runs one quiz attempt. Not safe for concurrent use; it lives
// on the single UI event loop like every other view state.
type Controller struct {
	store  *session.Store
	logger *zap.Logger

	themeID   string
	theme     *types.Theme
	questions []types.Question
	sess      *types.QuizSession

	state      State
	current    int
	selected   int
	lastResult *types.AnswerResult
	score      int

	// firstPass records whether the user had zero completed themes when
	// the attempt started, which controls the first_quiz badge.
	firstPass bool
}

// New creates a controller bound to the session store.
func New(store *session.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{store: store, logger: logger, selected: -1}
}

// Start loads the theme, its questions, and opens a server session when a
// user is logged in. Any fetch failure is returned as-is so the caller can
// show an error and navigate home.
func (c *Controller) Start(ctx context.Context, themeID string) error {
	c.resetLocal()
	c.themeID = themeID

	themes, err := c.store.Client().Themes(ctx)
	if err != nil {
		return fmt.Errorf("load themes: %w", err)
	}
	for i := range themes {
		if themes[i].ID == themeID {
			c.theme = &themes[i]
			break
		}
	}
	if c.theme == nil {
		return fmt.Errorf("unknown theme %q", themeID)
	}

	questions, err := c.store.Client().ThemeQuestions(ctx, themeID)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	c.questions = questions

	if user := c.store.User(); user != nil {
		sess, err := c.store.Client().StartQuizSession(ctx, user.ID, themeID)
		if err != nil {
			return fmt.Errorf("open session: %w", err)
		}
		c.sess = sess
		c.firstPass = len(user.CompletedThemes) == 0
	}

	if len(c.questions) == 0 {
		c.state = StateUnavailable
		return nil
	}
	c.state = StateAnswering
	return nil
}

// SelectAnswer records the chosen option. Allowed only while answering.
func (c *Controller) SelectAnswer(index int) error {
	if c.state != StateAnswering {
		return ErrNotAnswering
	}
	if index < 0 || index >= len(c.CurrentQuestion().Options) {
		return fmt.Errorf("quiz: option %d out of range", index)
	}
	c.selected = index
	return nil
}

// Submit posts the selection to the server. The verdict drives the score
// and a fixed XP award; the state moves to revealed either way.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state != StateAnswering {
		return ErrNotAnswering
	}
	if c.selected < 0 {
		return ErrNoSelection
	}
	if c.sess == nil {
		return ErrNoSession
	}

	question := c.CurrentQuestion()
	result, err := c.store.Client().SubmitQuizAnswer(ctx, c.sess.ID, question.ID, c.selected)
	if err != nil {
		return fmt.Errorf("submit answer: %w", err)
	}

	c.lastResult = result
	if result.IsCorrect {
		c.score++
		c.store.AddXP(ctx, XPPerCorrectAnswer)
	}
	c.state = StateRevealed
	return nil
}

// Next advances past a revealed answer: either to the next question or,
// from the last one, into the completed state with its reward logic.
func (c *Controller) Next(ctx context.Context) error {
	if c.state != StateRevealed {
		return errors.New("quiz: nothing to advance from")
	}
	if c.current < len(c.questions)-1 {
		c.current++
		c.selected = -1
		c.lastResult = nil
		c.state = StateAnswering
		return nil
	}
	c.complete(ctx)
	return nil
}

// complete applies the end-of-quiz rules. The three grant calls are
// independent and each idempotent in the store, so their order does not
// matter and a failure in one never blocks the others.
func (c *Controller) complete(ctx context.Context) {
	c.state = StateCompleted
	pct := c.Percentage()
	if pct < PassPercent {
		return
	}

	c.store.CompleteTheme(ctx, c.themeID)

	if badge, ok := themeBadges[c.themeID]; ok && pct >= BadgePercent {
		c.store.UnlockBadge(ctx, badge)
	}
	if c.firstPass {
		c.store.UnlockBadge(ctx, "first_quiz")
	}
}

// Reset discards all local state and starts a fresh attempt (new session).
func (c *Controller) Reset(ctx context.Context) error {
	return c.Start(ctx, c.themeID)
}

func (c *Controller) resetLocal() {
	c.theme = nil
	c.questions = nil
	c.sess = nil
	c.state = StateLoading
	c.current = 0
	c.selected = -1
	c.lastResult = nil
	c.score = 0
	c.firstPass = false
}

// State returns the current flow state.
func (c *Controller) State() State { return c.state }

// Theme returns the theme metadata, nil before Start.
func (c *Controller) Theme() *types.Theme { return c.theme }

// CurrentQuestion returns the question under the cursor.
func (c *Controller) CurrentQuestion() *types.Question {
	if c.current >= len(c.questions) {
		return nil
	}
	return &c.questions[c.current]
}

// QuestionNumber returns the 1-based cursor position.
func (c *Controller) QuestionNumber() int { return c.current + 1 }

// TotalQuestions returns the question count.
func (c *Controller) TotalQuestions() int { return len(c.questions) }

// Selected returns the chosen option index, -1 when none.
func (c *Controller) Selected() int { return c.selected }

// LastResult returns the server verdict for the revealed answer.
func (c *Controller) LastResult() *types.AnswerResult { return c.lastResult }

// Score returns the running correct count.
func (c *Controller) Score() int { return c.score }

// Percentage returns the score as a percentage of the question count.
func (c *Controller) Percentage() float64 {
	if len(c.questions) == 0 {
		return 0
	}
	return float64(c.score) * 100 / float64(len(c.questions))
}

// Passed reports whether the attempt reached the completion threshold.
func (c *Controller) Passed() bool {
	return c.state == StateCompleted && c.Percentage() >= PassPercent
}
