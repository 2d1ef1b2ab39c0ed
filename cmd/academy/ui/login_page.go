package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginPageModel is the combined login / registration form. Submission is
// relayed to the app model, which talks to the API.
type LoginPageModel struct {
	width  int
	height int

	registering bool
	nameInput   textinput.Model
	emailInput  textinput.Model
	passInput   textinput.Model
	focus       int
	errMsg      string
	busy        bool

	styles Styles
}

// NewLoginPageModel creates the login page.
func NewLoginPageModel() LoginPageModel {
	name := textinput.New()
	name.Placeholder = "Nom"
	name.CharLimit = 64
	name.Width = 32

	email := textinput.New()
	email.Placeholder = "Adresse e-mail"
	email.CharLimit = 128
	email.Width = 32
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "Mot de passe"
	pass.CharLimit = 128
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return LoginPageModel{
		nameInput:  name,
		emailInput: email,
		passInput:  pass,
		styles:     DefaultStyles(),
		width:      80,
		height:     20,
	}
}

// Init initializes the model.
func (m LoginPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.busy {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % m.fieldCount()
		m.applyFocus()
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + m.fieldCount() - 1) % m.fieldCount()
		m.applyFocus()
		return m, nil
	case "ctrl+r":
		m.registering = !m.registering
		m.focus = 0
		m.errMsg = ""
		m.applyFocus()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentField() {
	case "name":
		m.nameInput, cmd = m.nameInput.Update(key)
	case "email":
		m.emailInput, cmd = m.emailInput.Update(key)
	case "password":
		m.passInput, cmd = m.passInput.Update(key)
	}
	return m, cmd
}

func (m LoginPageModel) fieldCount() int {
	if m.registering {
		return 3
	}
	return 2
}

func (m LoginPageModel) currentField() string {
	if m.registering {
		switch m.focus {
		case 0:
			return "name"
		case 1:
			return "email"
		default:
			return "password"
		}
	}
	if m.focus == 0 {
		return "email"
	}
	return "password"
}

func (m *LoginPageModel) applyFocus() {
	m.nameInput.Blur()
	m.emailInput.Blur()
	m.passInput.Blur()
	switch m.currentField() {
	case "name":
		m.nameInput.Focus()
	case "email":
		m.emailInput.Focus()
	case "password":
		m.passInput.Focus()
	}
}

// View renders the page.
func (m LoginPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(Logo(m.styles) + "\n")
	if m.registering {
		sb.WriteString(m.styles.Title.Render("Créer un compte") + "\n")
		sb.WriteString(m.styles.Bold.Render("Nom           ") + m.nameInput.View() + "\n")
	} else {
		sb.WriteString(m.styles.Title.Render("Connexion") + "\n")
	}
	sb.WriteString(m.styles.Bold.Render("E-mail        ") + m.emailInput.View() + "\n")
	sb.WriteString(m.styles.Bold.Render("Mot de passe  ") + m.passInput.View() + "\n")

	if m.busy {
		sb.WriteString("\n" + m.styles.Info.Render("Connexion en cours…") + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString("\n" + m.styles.Error.Render(m.errMsg) + "\n")
	}

	toggle := "[Ctrl+R] créer un compte"
	if m.registering {
		toggle = "[Ctrl+R] j'ai déjà un compte"
	}
	sb.WriteString("\n" + m.styles.Muted.Render("[Entrée] valider  "+toggle+"  [Esc] continuer en invité") + "\n")

	return m.styles.Content.Render(sb.String())
}

// SetSize records the available space.
func (m *LoginPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Registering reports whether the form is in account-creation mode.
func (m *LoginPageModel) Registering() bool {
	return m.registering
}

// Credentials returns the current form values.
func (m *LoginPageModel) Credentials() (name, email, password string) {
	return strings.TrimSpace(m.nameInput.Value()),
		strings.TrimSpace(m.emailInput.Value()),
		m.passInput.Value()
}

// SetBusy toggles the in-flight indicator while a login runs.
func (m *LoginPageModel) SetBusy(v bool) {
	m.busy = v
}

// SetError shows a login or registration failure inline.
func (m *LoginPageModel) SetError(msg string) {
	m.errMsg = msg
	m.busy = false
}
