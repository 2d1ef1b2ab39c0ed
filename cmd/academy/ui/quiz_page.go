package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ehpadacademy/internal/quiz"
)

// QuizPageModel renders one quiz run: question, options, the revealed
// verdict with explanation, and the completion screen. The controller owns
// the rules; this model only draws its state.
type QuizPageModel struct {
	width    int
	height   int
	viewport viewport.Model
	progress progress.Model

	ctrl *quiz.Controller

	styles Styles
}

// NewQuizPageModel creates the quiz page.
func NewQuizPageModel() QuizPageModel {
	p := progress.New(progress.WithDefaultGradient())
	vp := viewport.New(80, 20)
	vp.SetContent("")
	return QuizPageModel{
		viewport: vp,
		progress: p,
		styles:   DefaultStyles(),
		width:    80,
		height:   20,
	}
}

// Init initializes the model.
func (m QuizPageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages. Answer keys are handled by the app model so the
// controller calls stay in one place; this only scrolls.
func (m QuizPageModel) Update(msg tea.Msg) (QuizPageModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
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
func (m QuizPageModel) View() string {
	if m.ctrl == nil {
		return m.styles.Content.Render("Aucun quiz en cours.")
	}
	return m.viewport.View()
}

// SetSize updates the size of the viewport.
func (m *QuizPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	m.progress.Width = w - 4
}

// UpdateContent re-renders from the controller's current state.
func (m *QuizPageModel) UpdateContent(ctrl *quiz.Controller) {
	m.ctrl = ctrl
	if ctrl == nil {
		m.viewport.SetContent("")
		return
	}

	var sb strings.Builder

	theme := ctrl.Theme()
	if theme != nil {
		sb.WriteString(m.styles.Header.Render(fmt.Sprintf(" %s %s ", theme.Icon, theme.Name)) + "\n\n")
	}

	switch ctrl.State() {
	case quiz.StateLoading:
		sb.WriteString(m.styles.Muted.Render("Chargement du quiz…") + "\n")
	case quiz.StateUnavailable:
		sb.WriteString(m.styles.Warning.Render("Aucune question disponible pour ce thème.") + "\n")
		sb.WriteString(m.styles.Muted.Render("[Esc] retour à l'accueil") + "\n")
	case quiz.StateCompleted:
		m.renderCompleted(&sb)
	default:
		m.renderQuestion(&sb)
	}

	m.viewport.SetContent(sb.String())
}

func (m *QuizPageModel) renderQuestion(sb *strings.Builder) {
	ctrl := m.ctrl
	q := ctrl.CurrentQuestion()
	if q == nil {
		return
	}

	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("Question %d/%d", ctrl.QuestionNumber(), ctrl.TotalQuestions())) + "\n")
	frac := float64(ctrl.QuestionNumber()-1) / float64(ctrl.TotalQuestions())
	sb.WriteString(m.progress.ViewAs(frac) + "\n\n")

	sb.WriteString(m.styles.Bold.Render(q.Question) + "\n\n")

	revealed := ctrl.State() == quiz.StateRevealed
	result := ctrl.LastResult()
	for i, opt := range q.Options {
		label := fmt.Sprintf(" %d. %s", i+1, opt)
		switch {
		case revealed && result != nil && i == result.CorrectAnswer:
			sb.WriteString(m.styles.Success.Render("✓"+label) + "\n")
		case revealed && i == ctrl.Selected() && result != nil && !result.IsCorrect:
			sb.WriteString(m.styles.Error.Render("✗"+label) + "\n")
		case !revealed && i == ctrl.Selected():
			sb.WriteString(m.styles.Selected.Render("▸"+label) + "\n")
		default:
			sb.WriteString(m.styles.Body.Render(" "+label) + "\n")
		}
	}
	sb.WriteString("\n")

	if revealed {
		if result != nil && result.IsCorrect {
			sb.WriteString(m.styles.Success.Render("Bonne réponse !") + m.styles.XP.Render(fmt.Sprintf("  +%d XP", quiz.XPPerCorrectAnswer)) + "\n")
		} else {
			sb.WriteString(m.styles.Error.Render("Mauvaise réponse.") + "\n")
		}
		if q.Explanation != "" {
			sb.WriteString(m.styles.Info.Render(q.Explanation) + "\n")
		}
		sb.WriteString("\n" + m.styles.Muted.Render("[Entrée] question suivante  [Esc] abandonner") + "\n")
	} else {
		sb.WriteString(m.styles.Muted.Render("1-4 choisir  [Entrée] valider  [Esc] abandonner") + "\n")
	}
}

func (m *QuizPageModel) renderCompleted(sb *strings.Builder) {
	ctrl := m.ctrl

	sb.WriteString(m.styles.Title.Render("Quiz terminé !") + "\n")
	sb.WriteString(m.styles.Bold.Render(fmt.Sprintf("Score : %d/%d (%.0f%%)", ctrl.Score(), ctrl.TotalQuestions(), ctrl.Percentage())) + "\n\n")

	if ctrl.Passed() {
		sb.WriteString(m.styles.Success.Render("Thème validé ! 🎉") + "\n")
		if ctrl.Percentage() >= quiz.BadgePercent {
			sb.WriteString(m.styles.XP.Render("Score de maîtrise atteint — badge débloqué !") + "\n")
		}
	} else {
		sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("Il faut %.0f%% pour valider le thème. Réessayez !", quiz.PassPercent)) + "\n")
	}

	sb.WriteString("\n" + m.styles.Muted.Render("[r] recommencer  [Esc] retour à l'accueil") + "\n")
}
