package types

// XPPerLevel is the number of experience points per level. The server derives
// the authoritative level the same way; the client recomputes it locally so
// progress bars stay consistent between refetches.
const XPPerLevel = 100

// LevelForXP derives the level for an XP total: integer division by 100.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp / XPPerLevel
}

// LevelProgress returns the XP accumulated inside the current level,
// i.e. the progress-bar numerator out of XPPerLevel.
func LevelProgress(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % XPPerLevel
}

// NextLevelXP returns the XP total at which the next level is reached.
func NextLevelXP(xp int) int {
	return (LevelForXP(xp) + 1) * XPPerLevel
}

// ThemeLocked reports whether the theme at position i in the ordered theme
// list is locked for a user with the given completed set. The first theme is
// always unlocked; any later theme is locked until the one before it has
// been completed.
func ThemeLocked(themes []Theme, completed []string, i int) bool {
	if i <= 0 || i >= len(themes) {
		return false
	}
	prev := themes[i-1].ID
	for _, id := range completed {
		if id == prev {
			return false
		}
	}
	return true
}
