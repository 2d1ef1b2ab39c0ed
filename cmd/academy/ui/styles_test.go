package ui

import (
	"strings"
	"testing"
)

func TestDetectThemeHonorsEnv(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("ACADEMY_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme with ACADEMY_DARK_MODE=1")
	}

	t.Setenv("ACADEMY_DARK_MODE", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme by default")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for dark terminal background")
	}
}

func TestRenderDividerWidth(t *testing.T) {
	s := DefaultStyles()
	divider := s.RenderDivider(10)
	if !strings.Contains(divider, "─") {
		t.Fatalf("expected divider runes, got %q", divider)
	}
}
