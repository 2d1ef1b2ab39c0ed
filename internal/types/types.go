// Package types provides the shared data model for the EHPAD Academy client.
// Structs mirror the wire format of the remote API; JSON tags follow the
// server's snake_case field names. Derivations that the server does not own
// (level from XP, theme locking) live here so every view computes them the
// same way.
package types

import "time"

// User is the authenticated account record. The client never mutates fields
// in place: every mutating operation replaces the whole record with the
// server's response.
type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Avatar            string     `json:"avatar"`
	Level             int        `json:"level"`
	XP                int        `json:"xp"`
	Badges            []string   `json:"badges"`
	CompletedThemes   []string   `json:"completed_themes"`
	CreatedActivities []Activity `json:"created_activities,omitempty"`
}

// UserUpdate carries the partial fields accepted by PUT /users/{id}.
// Nil pointers are omitted from the payload.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// HasBadge reports whether the badge is already in the user's badge set.
func (u *User) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// HasCompletedTheme reports whether the theme is in the completed set.
func (u *User) HasCompletedTheme(themeID string) bool {
	for _, t := range u.CompletedThemes {
		if t == themeID {
			return true
		}
	}
	return false
}

// Theme is one subject area gating a quiz and a completion badge track.
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Order       int    `json:"order"`
}

// Question is one multiple-choice quiz question. CorrectAnswer is the index
// into Options; the server is authoritative for the verdict, the field is
// only used to highlight the right option once an answer is revealed.
type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizSession is a server-tracked attempt at a themed question set.
type QuizSession struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Theme  string `json:"theme"`
}

// AnswerResult is the server's verdict for a submitted answer.
type AnswerResult struct {
	IsCorrect     bool `json:"is_correct"`
	CorrectAnswer int  `json:"correct_answer"`
}

// Activity is one facilitation activity sheet from the library.
type Activity struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Duration     string    `json:"duration"`
	Participants string    `json:"participants"`
	Material     []string  `json:"material"`
	Objectives   []string  `json:"objectives"`
	Description  string    `json:"description"`
	Difficulty   string    `json:"difficulty"`
	Author       string    `json:"author"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// BudgetScenario is one static budget-simulation exercise: a total budget,
// an itemized expected spend, and an attached question set.
type BudgetScenario struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Budget      float64          `json:"budget"`
	Expenses    []BudgetExpense  `json:"expenses"`
	Questions   []BudgetQuestion `json:"questions"`
}

// BudgetExpense is one category line of a scenario's expected spend.
type BudgetExpense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// BudgetQuestion is a multiple-choice question embedded in a scenario.
// Unlike quiz questions the verdict is purely local: CorrectAnswer is
// compared client-side.
type BudgetQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Badge is a persistent, idempotently-granted achievement marker.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Avatar is a profile picture unlocked either by default or at a level.
type Avatar struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	Unlocked      bool   `json:"unlocked"`
	RequiredLevel int    `json:"required_level"`
}

// UnlockedFor reports whether the avatar is available at the given level.
func (a Avatar) UnlockedFor(level int) bool {
	return a.Unlocked || level >= a.RequiredLevel
}

// GameConfig is the game-configuration bundle from GET /config/game.
type GameConfig struct {
	XPPerLevel     int `json:"xp_per_level"`
	QuizXPReward   int `json:"quiz_xp_reward"`
	PassThreshold  int `json:"pass_threshold"`
	BadgeThreshold int `json:"badge_threshold"`
}
