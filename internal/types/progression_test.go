package types

import "testing"

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp       int
		level    int
		progress int
	}{
		{0, 0, 0},
		{20, 0, 20},
		{99, 0, 99},
		{100, 1, 0},
		{150, 1, 50},
		{1000, 10, 0},
		{1234, 12, 34},
		{-5, 0, 0},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.level {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.level)
		}
		if got := LevelProgress(c.xp); got != c.progress {
			t.Errorf("LevelProgress(%d) = %d, want %d", c.xp, got, c.progress)
		}
	}
}

func TestNextLevelXP(t *testing.T) {
	if got := NextLevelXP(0); got != 100 {
		t.Errorf("NextLevelXP(0) = %d, want 100", got)
	}
	if got := NextLevelXP(250); got != 300 {
		t.Errorf("NextLevelXP(250) = %d, want 300", got)
	}
}

func TestThemeLocked(t *testing.T) {
	themes := []Theme{
		{ID: "legislation", Order: 0},
		{ID: "animation_types", Order: 1},
		{ID: "project_management", Order: 2},
		{ID: "budget_management", Order: 3},
	}

	// Ordinal 0 is never locked, even with nothing completed.
	if ThemeLocked(themes, nil, 0) {
		t.Fatalf("first theme must never be locked")
	}

	// Theme N is locked iff theme N-1 is not completed.
	if !ThemeLocked(themes, nil, 1) {
		t.Errorf("second theme should be locked with empty completed set")
	}
	if ThemeLocked(themes, []string{"legislation"}, 1) {
		t.Errorf("second theme should unlock once legislation is completed")
	}
	if !ThemeLocked(themes, []string{"legislation"}, 2) {
		t.Errorf("third theme should stay locked until animation_types is completed")
	}
	if ThemeLocked(themes, []string{"legislation", "animation_types"}, 2) {
		t.Errorf("third theme should unlock once animation_types is completed")
	}

	// Completing a later theme does not unlock an earlier gate.
	if !ThemeLocked(themes, []string{"budget_management"}, 1) {
		t.Errorf("second theme must ignore unrelated completions")
	}
}

func TestUserMembership(t *testing.T) {
	u := &User{
		Badges:          []string{"first_quiz"},
		CompletedThemes: []string{"legislation"},
	}
	if !u.HasBadge("first_quiz") || u.HasBadge("creator") {
		t.Errorf("HasBadge gave wrong answer")
	}
	if !u.HasCompletedTheme("legislation") || u.HasCompletedTheme("animation_types") {
		t.Errorf("HasCompletedTheme gave wrong answer")
	}
}

func TestAvatarUnlockedFor(t *testing.T) {
	a := Avatar{ID: "avatar2", RequiredLevel: 5}
	if a.UnlockedFor(4) {
		t.Errorf("avatar should be locked below required level")
	}
	if !a.UnlockedFor(5) {
		t.Errorf("avatar should unlock at required level")
	}
	def := Avatar{ID: "avatar1", Unlocked: true}
	if !def.UnlockedFor(0) {
		t.Errorf("default avatar should always be unlocked")
	}
}
