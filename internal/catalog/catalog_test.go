package catalog

import "testing"

func TestThemesAreOrdered(t *testing.T) {
	themes := Themes()
	if len(themes) != 4 {
		t.Fatalf("got %d themes", len(themes))
	}
	for i, theme := range themes {
		if theme.Order != i {
			t.Errorf("theme %s has order %d at position %d", theme.ID, theme.Order, i)
		}
	}
	if themes[0].ID != "legislation" {
		t.Errorf("first theme = %s, want legislation", themes[0].ID)
	}
}

func TestBadgeCatalogCoversQuizBadges(t *testing.T) {
	ids := map[string]bool{}
	for _, b := range Badges() {
		ids[b.ID] = true
	}
	for _, want := range []string{"first_quiz", "legislation_master", "animation_expert", "budget_wizard", "creator"} {
		if !ids[want] {
			t.Errorf("badge catalog missing %s", want)
		}
	}
}

func TestDefaultAvatarUnlocked(t *testing.T) {
	avatars := Avatars()
	if len(avatars) == 0 || !avatars[0].Unlocked {
		t.Fatalf("first avatar must be unlocked by default")
	}
}
