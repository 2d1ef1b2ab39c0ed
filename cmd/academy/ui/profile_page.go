package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ehpadacademy/internal/types"
)

// ProfilePageModel shows the account: level and XP, the avatar picker with
// level gating, and the badge gallery. Picking an avatar is relayed to the
// app model, which performs the profile update.
type ProfilePageModel struct {
	width    int
	height   int
	viewport viewport.Model
	progress progress.Model

	user    *types.User
	avatars []types.Avatar
	badges  []types.Badge
	cursor  int

	styles Styles
}

// NewProfilePageModel creates the profile page.
func NewProfilePageModel() ProfilePageModel {
	p := progress.New(progress.WithDefaultGradient())
	vp := viewport.New(80, 20)
	vp.SetContent("")
	return ProfilePageModel{
		viewport: vp,
		progress: p,
		styles:   DefaultStyles(),
		width:    80,
		height:   20,
	}
}

// Init initializes the model.
func (m ProfilePageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ProfilePageModel) Update(msg tea.Msg) (ProfilePageModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "h", "left":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
		case "l", "right":
			if m.cursor < len(m.avatars)-1 {
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
func (m ProfilePageModel) View() string {
	if m.user == nil {
		return m.styles.Content.Render("Connectez-vous pour voir votre profil.")
	}
	return m.viewport.View()
}

// SetSize updates the size of the viewport.
func (m *ProfilePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	m.progress.Width = w - 4
}

// SelectedAvatar returns the avatar under the cursor, or nil.
func (m *ProfilePageModel) SelectedAvatar() *types.Avatar {
	if m.cursor < 0 || m.cursor >= len(m.avatars) {
		return nil
	}
	return &m.avatars[m.cursor]
}

// SelectedUnlocked reports whether the avatar under the cursor is available
// at the user's current level.
func (m *ProfilePageModel) SelectedUnlocked() bool {
	a := m.SelectedAvatar()
	if a == nil || m.user == nil {
		return false
	}
	return a.UnlockedFor(types.LevelForXP(m.user.XP))
}

// UpdateContent replaces the profile data and re-renders.
func (m *ProfilePageModel) UpdateContent(user *types.User, avatars []types.Avatar, badges []types.Badge) {
	m.user = user
	m.avatars = avatars
	m.badges = badges
	if m.cursor >= len(avatars) {
		m.cursor = 0
	}
	m.refresh()
}

func (m *ProfilePageModel) refresh() {
	if m.user == nil {
		m.viewport.SetContent("")
		return
	}

	var sb strings.Builder
	level := types.LevelForXP(m.user.XP)

	// 1. Identity and progression
	sb.WriteString(m.styles.Title.Render(m.user.Name) + "\n")
	sb.WriteString(m.styles.Muted.Render(m.user.Email) + "\n\n")
	sb.WriteString(m.styles.Bold.Render(fmt.Sprintf("Niveau %d", level)))
	sb.WriteString(m.styles.XP.Render(fmt.Sprintf("  %d XP", m.user.XP)) + "\n")
	frac := float64(types.LevelProgress(m.user.XP)) / float64(types.XPPerLevel)
	sb.WriteString(m.progress.ViewAs(frac) + "\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d XP jusqu'au niveau %d", types.NextLevelXP(m.user.XP)-m.user.XP, level+1)) + "\n\n")

	// 2. Avatar picker
	sb.WriteString(m.styles.Bold.Render("Avatar") + "\n")
	for i, a := range m.avatars {
		unlocked := a.UnlockedFor(level)
		label := fmt.Sprintf(" %s %s", a.Image, a.Name)
		switch {
		case a.ID == m.user.Avatar:
			label += " (actuel)"
		case !unlocked:
			label += fmt.Sprintf(" — niveau %d requis", a.RequiredLevel)
		}

		switch {
		case i == m.cursor && unlocked:
			sb.WriteString(m.styles.Selected.Render("▸"+label) + "\n")
		case i == m.cursor:
			sb.WriteString(m.styles.Warning.Render("▸"+label) + "\n")
		case unlocked:
			sb.WriteString(m.styles.Body.Render(" "+label) + "\n")
		default:
			sb.WriteString(m.styles.Locked.Render(" 🔒"+label) + "\n")
		}
	}
	sb.WriteString("\n")

	// 3. Badge gallery
	sb.WriteString(m.styles.Bold.Render("Badges") + "\n")
	for _, b := range m.badges {
		if m.user.HasBadge(b.ID) {
			sb.WriteString(m.styles.Badge.Render(b.Icon+" "+b.Name) + " " + m.styles.Muted.Render(b.Description) + "\n")
		} else {
			sb.WriteString(m.styles.BadgeDark.Render("? "+b.Name) + " " + m.styles.Locked.Render(b.Description) + "\n")
		}
	}

	// 4. Completed themes
	if len(m.user.CompletedThemes) > 0 {
		sb.WriteString("\n" + m.styles.Bold.Render("Thèmes validés") + "\n")
		for _, t := range m.user.CompletedThemes {
			sb.WriteString(m.styles.Success.Render(" ✓ "+t) + "\n")
		}
	}

	sb.WriteString("\n" + m.styles.Muted.Render("←/→ choisir un avatar  [Entrée] appliquer  [L] déconnexion  [Esc] accueil") + "\n")
	m.viewport.SetContent(sb.String())
}
