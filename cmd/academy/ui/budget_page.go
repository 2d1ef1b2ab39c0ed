package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ehpadacademy/internal/budget"
	"ehpadacademy/internal/catalog"
)

// BudgetTab selects which half of the budget page is active.
type BudgetTab int

const (
	// TabScenario shows the scenario walkthrough and its question.
	TabScenario BudgetTab = iota
	// TabCalculator shows the free-form budget calculator.
	TabCalculator
)

// BudgetPageModel renders the budget simulation: scenario exercises on one
// tab, the free calculator on the other. Selection and answer picking are
// local; the app model drives the one network action (answer submission).
type BudgetPageModel struct {
	width  int
	height int

	quiz *budget.ScenarioQuiz
	calc *budget.Calculator

	tab            BudgetTab
	scenarioCursor int

	budgetInput textinput.Model
	inputs      []textinput.Model
	focus       int

	styles Styles
}

// NewBudgetPageModel creates the budget page with the calculator wired to
// the standard category list.
func NewBudgetPageModel() BudgetPageModel {
	categories := catalog.CalculatorCategories()
	calc := budget.NewCalculator(categories)

	bi := textinput.New()
	bi.Placeholder = "Budget total (€)"
	bi.CharLimit = 12
	bi.Width = 16
	bi.Focus()

	inputs := make([]textinput.Model, len(categories))
	for i, cat := range categories {
		ti := textinput.New()
		ti.Placeholder = cat
		ti.CharLimit = 12
		ti.Width = 16
		inputs[i] = ti
	}

	return BudgetPageModel{
		calc:        calc,
		budgetInput: bi,
		inputs:      inputs,
		styles:      DefaultStyles(),
		width:       80,
		height:      20,
	}
}

// Init initializes the model.
func (m BudgetPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m BudgetPageModel) Update(msg tea.Msg) (BudgetPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if m.tab == TabScenario {
				m.tab = TabCalculator
			} else {
				m.tab = TabScenario
			}
			return m, nil
		}

		if m.tab == TabScenario {
			return m.updateScenario(msg), nil
		}
		return m.updateCalculator(msg)
	}
	return m, nil
}

func (m BudgetPageModel) updateScenario(msg tea.KeyMsg) BudgetPageModel {
	if m.quiz == nil {
		return m
	}

	if m.quiz.Selected() == nil {
		switch msg.String() {
		case "k", "up":
			if m.scenarioCursor > 0 {
				m.scenarioCursor--
			}
		case "j", "down":
			if m.scenarioCursor < len(m.quiz.Scenarios())-1 {
				m.scenarioCursor++
			}
		case "enter":
			// Selection failure just leaves the list visible.
			_ = m.quiz.Select(m.scenarioCursor)
		}
		return m
	}

	switch msg.String() {
	case "esc", "backspace":
		m.quiz.Deselect()
	case "1", "2", "3", "4":
		if !m.quiz.Answered() {
			_ = m.quiz.SelectAnswer(int(msg.String()[0] - '1'))
		}
	}
	return m
}

func (m BudgetPageModel) updateCalculator(msg tea.KeyMsg) (BudgetPageModel, tea.Cmd) {
	switch msg.String() {
	case "up", "shift+tab":
		m.focus--
		if m.focus < 0 {
			m.focus = len(m.inputs)
		}
		m.applyFocus()
		return m, nil
	case "down", "enter":
		m.focus++
		if m.focus > len(m.inputs) {
			m.focus = 0
		}
		m.applyFocus()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.budgetInput, cmd = m.budgetInput.Update(msg)
		m.calc.TotalBudget = m.budgetInput.Value()
	} else {
		i := m.focus - 1
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		m.calc.SetAmount(i, m.inputs[i].Value())
	}
	return m, cmd
}

func (m *BudgetPageModel) applyFocus() {
	m.budgetInput.Blur()
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if m.focus == 0 {
		m.budgetInput.Focus()
	} else {
		m.inputs[m.focus-1].Focus()
	}
}

// View renders the page.
func (m BudgetPageModel) View() string {
	var sb strings.Builder

	scenarioTab := " Scénarios "
	calcTab := " Calculatrice "
	if m.tab == TabScenario {
		sb.WriteString(m.styles.Selected.Render(scenarioTab) + m.styles.Muted.Render(calcTab))
	} else {
		sb.WriteString(m.styles.Muted.Render(scenarioTab) + m.styles.Selected.Render(calcTab))
	}
	sb.WriteString("\n\n")

	if m.tab == TabScenario {
		m.viewScenario(&sb)
	} else {
		m.viewCalculator(&sb)
	}

	return m.styles.Content.Render(sb.String())
}

func (m BudgetPageModel) viewScenario(sb *strings.Builder) {
	if m.quiz == nil || len(m.quiz.Scenarios()) == 0 {
		sb.WriteString(m.styles.Muted.Render("Chargement des scénarios…") + "\n")
		return
	}

	sel := m.quiz.Selected()
	if sel == nil {
		sb.WriteString(m.styles.Title.Render("Choisissez un scénario") + "\n")
		for i, sc := range m.quiz.Scenarios() {
			line := fmt.Sprintf(" %s — budget %s", sc.Title, budget.FormatAmount(sc.Budget))
			if i == m.scenarioCursor {
				sb.WriteString(m.styles.Selected.Render("▸"+line) + "\n")
			} else {
				sb.WriteString(m.styles.Body.Render(" "+line) + "\n")
			}
			sb.WriteString(m.styles.Muted.Render("   "+sc.Description) + "\n")
		}
		sb.WriteString("\n" + m.styles.Muted.Render("↑/↓ naviguer  [Entrée] ouvrir  [Tab] calculatrice  [Esc] accueil") + "\n")
		return
	}

	sb.WriteString(m.styles.Title.Render(sel.Title) + "\n")
	sb.WriteString(m.styles.Bold.Render("Budget : "+budget.FormatAmount(sel.Budget)) + "\n\n")
	for _, e := range sel.Expenses {
		sb.WriteString(m.styles.Body.Render(fmt.Sprintf(" · %-28s %10s", e.Category, budget.FormatAmount(e.Amount))) + "\n")
	}
	sb.WriteString("\n")

	q := m.quiz.CurrentQuestion()
	if q == nil {
		return
	}
	sb.WriteString(m.styles.Bold.Render(q.Question) + "\n")
	for i, opt := range q.Options {
		label := fmt.Sprintf(" %d. %s", i+1, opt)
		switch {
		case m.quiz.Answered() && i == q.CorrectAnswer:
			sb.WriteString(m.styles.Success.Render("✓"+label) + "\n")
		case m.quiz.Answered() && i == m.quiz.Answer() && !m.quiz.Correct():
			sb.WriteString(m.styles.Error.Render("✗"+label) + "\n")
		case !m.quiz.Answered() && i == m.quiz.Answer():
			sb.WriteString(m.styles.Selected.Render("▸"+label) + "\n")
		default:
			sb.WriteString(m.styles.Body.Render(" "+label) + "\n")
		}
	}
	sb.WriteString("\n")

	if m.quiz.Answered() {
		if m.quiz.Correct() {
			sb.WriteString(m.styles.Success.Render("Bonne réponse !") + m.styles.XP.Render(fmt.Sprintf("  +%d XP", budget.XPPerCorrectAnswer)) + "\n")
		} else {
			sb.WriteString(m.styles.Error.Render("Mauvaise réponse.") + "\n")
		}
		sb.WriteString(m.styles.Muted.Render("[Esc] retour aux scénarios") + "\n")
	} else {
		sb.WriteString(m.styles.Muted.Render("1-4 choisir  [Entrée] valider  [Esc] retour") + "\n")
	}
}

func (m BudgetPageModel) viewCalculator(sb *strings.Builder) {
	sb.WriteString(m.styles.Title.Render("Calculatrice de budget") + "\n")

	sb.WriteString(m.styles.Bold.Render("Budget total : ") + m.budgetInput.View() + "\n\n")
	for i, ti := range m.inputs {
		sb.WriteString(m.styles.Body.Render(fmt.Sprintf(" %-28s ", m.calc.Categories[i].Name)) + ti.View() + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render("Total dépensé : "+budget.FormatAmount(m.calc.Total())) + "\n")
	if m.calc.OverBudget() {
		sb.WriteString(m.styles.Error.Render("Dépassement : "+budget.FormatAmount(m.calc.Overage())) + "\n")
	} else {
		sb.WriteString(m.styles.Success.Render("Restant : "+budget.FormatAmount(m.calc.Remaining())) + "\n")
	}

	sb.WriteString("\n" + m.styles.Muted.Render("↑/↓ champ  [Tab] scénarios  [Esc] accueil") + "\n")
}

// SetSize records the available space.
func (m *BudgetPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Tab returns the active tab.
func (m *BudgetPageModel) Tab() BudgetTab {
	return m.tab
}

// Quiz returns the scenario quiz driven by this page, or nil before the
// first UpdateContent.
func (m *BudgetPageModel) Quiz() *budget.ScenarioQuiz {
	return m.quiz
}

// ReadyToSubmit reports whether the scenario tab has an unanswered pick
// waiting for submission.
func (m *BudgetPageModel) ReadyToSubmit() bool {
	return m.tab == TabScenario && m.quiz != nil && m.quiz.Selected() != nil &&
		!m.quiz.Answered() && m.quiz.Answer() >= 0
}

// UpdateContent attaches the scenario quiz.
func (m *BudgetPageModel) UpdateContent(quiz *budget.ScenarioQuiz) {
	m.quiz = quiz
	if m.scenarioCursor >= len(quiz.Scenarios()) {
		m.scenarioCursor = 0
	}
}
