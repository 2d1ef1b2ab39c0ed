package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ehpadacademy/internal/types"
)

// HomePageModel is the dashboard: the user's progression header and the
// theme cards, in catalog order, with locked and completed states.
type HomePageModel struct {
	width    int
	height   int
	viewport viewport.Model
	progress progress.Model

	// Data
	user   *types.User
	themes []types.Theme
	cursor int

	styles Styles
}

// NewHomePageModel creates the dashboard page.
func NewHomePageModel() HomePageModel {
	p := progress.New(progress.WithDefaultGradient())
	vp := viewport.New(80, 20)
	vp.SetContent("")
	return HomePageModel{
		viewport: vp,
		progress: p,
		styles:   DefaultStyles(),
		width:    80,
		height:   20,
	}
}

// Init initializes the model.
func (m HomePageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m HomePageModel) Update(msg tea.Msg) (HomePageModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
		case "j", "down":
			if m.cursor < len(m.themes)-1 {
				m.cursor++
				m.refresh()
			}
		case "pgup":
			m.viewport.HalfViewUp()
		case "pgdown":
			m.viewport.HalfViewDown()
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m HomePageModel) View() string {
	if len(m.themes) == 0 {
		return m.styles.Content.Render("Chargement des thèmes…")
	}
	return m.viewport.View()
}

// SetSize updates the size of the viewport.
func (m *HomePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	m.progress.Width = w - 4
}

// SelectedTheme returns the theme under the cursor, or nil while loading.
func (m *HomePageModel) SelectedTheme() *types.Theme {
	if m.cursor < 0 || m.cursor >= len(m.themes) {
		return nil
	}
	return &m.themes[m.cursor]
}

// SelectedLocked reports whether the theme under the cursor is still
// locked; the first theme never is.
func (m *HomePageModel) SelectedLocked() bool {
	var completed []string
	if m.user != nil {
		completed = m.user.CompletedThemes
	}
	return types.ThemeLocked(m.themes, completed, m.cursor)
}

// UpdateContent replaces the user record and theme list and re-renders.
func (m *HomePageModel) UpdateContent(user *types.User, themes []types.Theme) {
	m.user = user
	m.themes = themes
	if m.cursor >= len(themes) {
		m.cursor = 0
	}
	m.refresh()
}

func (m *HomePageModel) refresh() {
	var sb strings.Builder

	// 1. Progression header
	if m.user != nil {
		level := types.LevelForXP(m.user.XP)
		sb.WriteString(m.styles.Bold.Render(m.user.Name))
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  ·  Niveau %d", level)))
		sb.WriteString(m.styles.XP.Render(fmt.Sprintf("  ·  %d XP", m.user.XP)))
		sb.WriteString("\n")
		frac := float64(types.LevelProgress(m.user.XP)) / float64(types.XPPerLevel)
		sb.WriteString(m.progress.ViewAs(frac))
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d XP jusqu'au niveau %d", types.NextLevelXP(m.user.XP)-m.user.XP, level+1)))
		sb.WriteString("\n\n")
	} else {
		sb.WriteString(m.styles.Subtitle.Render("Mode invité — connectez-vous pour gagner de l'XP et des badges."))
		sb.WriteString("\n\n")
	}

	// 2. Theme cards
	sb.WriteString(m.styles.Title.Render("Thèmes de formation") + "\n")
	var completed []string
	if m.user != nil {
		completed = m.user.CompletedThemes
	}
	for i, th := range m.themes {
		locked := types.ThemeLocked(m.themes, completed, i)
		done := m.user != nil && m.user.HasCompletedTheme(th.ID)

		icon := "○"
		style := m.styles.Body
		status := ""
		switch {
		case done:
			icon = "✓"
			style = m.styles.Success
			status = m.styles.Success.Render(" Terminé")
		case locked:
			icon = "🔒"
			style = m.styles.Locked
			status = m.styles.Locked.Render(" Verrouillé")
		}

		line := fmt.Sprintf(" %s %s %s", icon, th.Icon, th.Name)
		if i == m.cursor {
			line = m.styles.Selected.Render("▸" + line)
		} else {
			line = style.Render(" " + line)
		}
		sb.WriteString(line + status + "\n")
		sb.WriteString(m.styles.Muted.Render("      "+th.Description) + "\n")
	}

	// 3. Badge row
	if m.user != nil && len(m.user.Badges) > 0 {
		sb.WriteString("\n" + m.styles.Bold.Render("Badges") + " ")
		badges := make([]string, 0, len(m.user.Badges))
		for _, b := range m.user.Badges {
			badges = append(badges, m.styles.Badge.Render(b))
		}
		sb.WriteString(strings.Join(badges, " ") + "\n")
	}

	hints := m.styles.Muted.Render("↑/↓ naviguer  [Entrée] lancer le quiz  [b] budget  [a] activités  [p] profil  [q] quitter")
	sb.WriteString("\n" + hints + "\n")

	m.viewport.SetContent(sb.String())
}
