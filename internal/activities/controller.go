// Package activities manages the activity-sheet library: fetching the
// public catalog, filtering it locally, and the create/edit/delete flows.
// The server owns the records; after every successful mutation the whole
// list is re-fetched instead of patching local state.
package activities

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ehpadacademy/internal/api"
	"ehpadacademy/internal/session"
	"ehpadacademy/internal/types"
)

// PageSize caps the library fetch.
const PageSize = 100

// XPPerCreatedSheet is granted when a logged-in user creates a sheet.
const XPPerCreatedSheet = 50

// AnonymousAuthor is the author name recorded when nobody is logged in.
const AnonymousAuthor = "Invité"

// Categories lists the selectable activity categories.
func Categories() []string {
	return []string{"Cognitive", "Physique", "Sociale"}
}

// Difficulties lists the selectable difficulty levels.
func Difficulties() []string {
	return []string{"Facile", "Moyenne", "Difficile"}
}

// ErrValidation wraps the French field-validation messages shown inline.
var ErrValidation = errors.New("validation")

// Draft carries the raw form fields for a create or edit. Material and
// Objectives hold comma-separated free text that is normalized into lists
// on save.
type Draft struct {
	Title        string
	Category     string
	Duration     string
	Participants string
	Description  string
	Difficulty   string
	Material     string
	Objectives   string
	IsPublic     bool
}

// Controller holds the library's local state: the fetched list and the two
// filter inputs. Nothing here is persisted.
type Controller struct {
	store  *session.Store
	logger *zap.Logger

	activities []types.Activity

	// SearchTerm matches case-insensitively against title or description.
	SearchTerm string
	// CategoryFilter is an exact case-insensitive category, or "all".
	CategoryFilter string
}

// NewController creates the library controller.
func NewController(store *session.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{store: store, logger: logger, CategoryFilter: "all"}
}

// Fetch loads the public sheets, up to PageSize. Errors are returned for
// inline display.
func (c *Controller) Fetch(ctx context.Context) error {
	activities, err := c.store.Client().ListActivities(ctx, api.ActivityFilter{PublicOnly: true, Limit: PageSize})
	if err != nil {
		return err
	}
	c.activities = activities
	return nil
}

// Activities returns the unfiltered fetched list.
func (c *Controller) Activities() []types.Activity {
	return c.activities
}

// Filtered applies the search term and category filter to the fetched list.
func (c *Controller) Filtered() []types.Activity {
	return Filter(c.activities, c.SearchTerm, c.CategoryFilter)
}

// Filter returns the sheets whose title or description contains the search
// term (case-insensitive) and whose category matches exactly
// (case-insensitive), with "all" or "" matching every category.
func Filter(activities []types.Activity, searchTerm, category string) []types.Activity {
	term := strings.ToLower(searchTerm)
	category = strings.ToLower(category)

	var out []types.Activity
	for _, a := range activities {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Description), term)
		matchesCategory := category == "" || category == "all" ||
			strings.ToLower(a.Category) == category
		if matchesSearch && matchesCategory {
			out = append(out, a)
		}
	}
	return out
}

// Save validates the draft and creates it (empty id) or updates the sheet
// with that id. The author field is always overwritten with the current
// user's name before the call. On success the list is re-fetched.
func (c *Controller) Save(ctx context.Context, id string, draft Draft) error {
	activity, err := c.buildActivity(draft)
	if err != nil {
		return err
	}

	if id == "" {
		_, err = c.store.Client().CreateActivity(ctx, activity)
		if err == nil {
			c.rewardCreation(ctx)
		}
	} else {
		_, err = c.store.Client().UpdateActivity(ctx, id, activity)
	}
	if err != nil {
		return fmt.Errorf("erreur lors de la sauvegarde : %w", err)
	}
	return c.Fetch(ctx)
}

// rewardCreation grants the creation XP and, for a first sheet, the
// creator badge. Both are best-effort like every gamification side effect.
func (c *Controller) rewardCreation(ctx context.Context) {
	user := c.store.User()
	if user == nil {
		return
	}
	first := len(user.CreatedActivities) == 0
	c.store.AddXP(ctx, XPPerCreatedSheet)
	if first {
		c.store.UnlockBadge(ctx, "creator")
	}
}

// Delete removes a sheet by id and re-fetches the list. Callers are
// expected to have asked the user for confirmation first.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.store.Client().DeleteActivity(ctx, id); err != nil {
		return fmt.Errorf("erreur lors de la suppression : %w", err)
	}
	return c.Fetch(ctx)
}

// buildActivity validates required fields and normalizes the free-text
// lists. The author is taken from the session at save time, overwriting
// whatever the record carried before.
func (c *Controller) buildActivity(draft Draft) (types.Activity, error) {
	required := map[string]string{
		"titre":        draft.Title,
		"catégorie":    draft.Category,
		"durée":        draft.Duration,
		"participants": draft.Participants,
		"description":  draft.Description,
		"difficulté":   draft.Difficulty,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return types.Activity{}, fmt.Errorf("%w: le champ %s est obligatoire", ErrValidation, field)
		}
	}

	material := SplitList(draft.Material)
	objectives := SplitList(draft.Objectives)
	if len(objectives) == 0 {
		return types.Activity{}, fmt.Errorf("%w: veuillez ajouter au moins un objectif", ErrValidation)
	}
	if len(material) == 0 {
		return types.Activity{}, fmt.Errorf("%w: veuillez ajouter au moins un matériel", ErrValidation)
	}

	return types.Activity{
		Title:        strings.TrimSpace(draft.Title),
		Category:     draft.Category,
		Duration:     strings.TrimSpace(draft.Duration),
		Participants: strings.TrimSpace(draft.Participants),
		Material:     material,
		Objectives:   objectives,
		Description:  strings.TrimSpace(draft.Description),
		Difficulty:   draft.Difficulty,
		Author:       c.authorName(),
		IsPublic:     draft.IsPublic,
	}, nil
}

func (c *Controller) authorName() string {
	if user := c.store.User(); user != nil && user.Name != "" {
		return user.Name
	}
	return AnonymousAuthor
}

// SplitList turns comma-separated free text into a trimmed list, dropping
// empty items.
func SplitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
