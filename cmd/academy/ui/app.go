package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ehpadacademy/internal/activities"
	"ehpadacademy/internal/budget"
	"ehpadacademy/internal/catalog"
	"ehpadacademy/internal/quiz"
	"ehpadacademy/internal/session"
	"ehpadacademy/internal/types"
)

// Page identifies the active view.
type Page int

const (
	// PageHome is the dashboard with the theme cards.
	PageHome Page = iota
	// PageLogin is the login / registration form.
	PageLogin
	// PageQuiz is a quiz run.
	PageQuiz
	// PageBudget is the budget simulation.
	PageBudget
	// PageActivities is the activity-sheet library.
	PageActivities
	// PageProfile is the account page.
	PageProfile
)

// Messages produced by the async commands.
type (
	errMsg          struct{ err error }
	initDoneMsg     struct{ themes []types.Theme }
	loginResultMsg  struct{ err error }
	quizChangedMsg  struct{}
	budgetLoadedMsg struct{}
	budgetJudgedMsg struct{}
	libraryMsg      struct{ err error }
	savedMsg        struct{ err error }
	deletedMsg      struct{ err error }
	profileMsg      struct {
		avatars []types.Avatar
		badges  []types.Badge
	}
	avatarSetMsg struct{}
	loggedOutMsg struct{}
)

// App is the root model: it owns the session store and the feature
// controllers, routes keys to the active page, and runs every network
// action as a command so the UI never blocks on the API.
type App struct {
	store  *session.Store
	logger *zap.Logger

	quizCtrl   *quiz.Controller
	budgetQuiz *budget.ScenarioQuiz
	library    *activities.Controller

	page       Page
	startPage  Page
	startTheme string

	width   int
	height  int
	loading bool
	status  string
	spinner spinner.Model

	themes  []types.Theme
	avatars []types.Avatar
	badges  []types.Badge

	home       HomePageModel
	loginPage  LoginPageModel
	quizPage   QuizPageModel
	budgetPage BudgetPageModel
	libPage    ActivitiesPageModel
	profile    ProfilePageModel

	styles Styles
}

// NewApp creates the root model bound to a session store.
func NewApp(store *session.Store, logger *zap.Logger) App {
	if logger == nil {
		logger = zap.NewNop()
	}
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return App{
		store:      store,
		logger:     logger,
		quizCtrl:   quiz.New(store, logger),
		budgetQuiz: budget.NewScenarioQuiz(store, logger),
		library:    activities.NewController(store, logger),
		spinner:    sp,
		loading:    true,
		home:       NewHomePageModel(),
		loginPage:  NewLoginPageModel(),
		quizPage:   NewQuizPageModel(),
		budgetPage: NewBudgetPageModel(),
		libPage:    NewActivitiesPageModel(),
		profile:    NewProfilePageModel(),
		styles:     styles,
	}
}

// Init restores the session and loads the theme catalog.
func (m App) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.initCmd())
}

func (m App) initCmd() tea.Cmd {
	store := m.store
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		if err := store.Initialize(ctx); err != nil {
			logger.Warn("session restore failed", zap.Error(err))
		}
		return initDoneMsg{themes: catalog.FetchThemes(ctx, store.Client())}
	}
}

// Update handles messages.
func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		content := msg.Height - 3 // header + footer
		if content < 5 {
			content = 5
		}
		m.home.SetSize(msg.Width, content)
		m.loginPage.SetSize(msg.Width, content)
		m.quizPage.SetSize(msg.Width, content)
		m.budgetPage.SetSize(msg.Width, content)
		m.libPage.SetSize(msg.Width, content)
		m.profile.SetSize(msg.Width, content)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case errMsg:
		m.loading = false
		if errors.Is(msg.err, quiz.ErrNoSession) {
			m.status = "Connectez-vous pour répondre aux quiz."
		} else {
			m.status = msg.err.Error()
		}
		return m, nil

	case initDoneMsg:
		m.loading = false
		m.themes = msg.themes
		m.home.UpdateContent(m.store.User(), m.themes)
		switch {
		case m.startTheme != "":
			m.page = PageQuiz
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.startQuizCmd(m.startTheme))
		case m.startPage == PageBudget:
			m.page = PageBudget
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadBudgetCmd())
		case m.startPage == PageActivities:
			m.page = PageActivities
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetchLibraryCmd())
		case !m.store.LoggedIn():
			m.page = PageLogin
		}
		return m, nil

	case loginResultMsg:
		m.loading = false
		if msg.err != nil {
			m.loginPage.SetError(loginErrorText(msg.err))
			return m, nil
		}
		m.loginPage.SetBusy(false)
		m.status = ""
		m.home.UpdateContent(m.store.User(), m.themes)
		m.page = PageHome
		return m, nil

	case quizChangedMsg:
		m.loading = false
		m.home.UpdateContent(m.store.User(), m.themes)
		m.quizPage.UpdateContent(m.quizCtrl)
		return m, nil

	case budgetLoadedMsg:
		m.loading = false
		m.budgetPage.UpdateContent(m.budgetQuiz)
		return m, nil

	case budgetJudgedMsg:
		m.loading = false
		m.home.UpdateContent(m.store.User(), m.themes)
		return m, nil

	case libraryMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.libPage.UpdateContent(m.library)
		return m, nil

	case savedMsg:
		m.loading = false
		if msg.err != nil {
			m.libPage.SetFormError(msg.err.Error())
			return m, nil
		}
		m.libPage.CloseForm()
		m.home.UpdateContent(m.store.User(), m.themes)
		m.libPage.UpdateContent(m.library)
		return m, nil

	case deletedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.libPage.CloseForm()
		m.libPage.UpdateContent(m.library)
		return m, nil

	case profileMsg:
		m.loading = false
		m.avatars = msg.avatars
		m.badges = msg.badges
		m.profile.UpdateContent(m.store.User(), m.avatars, m.badges)
		return m, nil

	case avatarSetMsg:
		m.loading = false
		m.profile.UpdateContent(m.store.User(), m.avatars, m.badges)
		return m, nil

	case loggedOutMsg:
		m.loading = false
		m.home.UpdateContent(nil, m.themes)
		m.page = PageLogin
		return m, nil
	}

	return m.routeToPage(msg)
}

func (m App) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// While a command is in flight, only quitting is allowed.
	if m.loading {
		return m, nil
	}
	m.status = ""

	switch m.page {
	case PageHome:
		return m.handleHomeKey(key)
	case PageLogin:
		return m.handleLoginKey(key)
	case PageQuiz:
		return m.handleQuizKey(key)
	case PageBudget:
		return m.handleBudgetKey(key)
	case PageActivities:
		return m.handleLibraryKey(key)
	case PageProfile:
		return m.handleProfileKey(key)
	}
	return m, nil
}

func (m App) handleHomeKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		theme := m.home.SelectedTheme()
		if theme == nil {
			return m, nil
		}
		if m.home.SelectedLocked() {
			m.status = "Terminez d'abord le thème précédent."
			return m, nil
		}
		m.page = PageQuiz
		m.loading = true
		m.quizPage.UpdateContent(nil)
		return m, tea.Batch(m.spinner.Tick, m.startQuizCmd(theme.ID))
	case "b":
		m.page = PageBudget
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadBudgetCmd())
	case "a":
		m.page = PageActivities
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchLibraryCmd())
	case "p":
		if !m.store.LoggedIn() {
			m.page = PageLogin
			return m, nil
		}
		m.page = PageProfile
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadProfileCmd())
	case "c":
		m.page = PageLogin
		return m, nil
	}
	return m.routeToPage(key)
}

func (m App) handleLoginKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		// Guest mode: everything works except persistence and XP.
		m.page = PageHome
		m.home.UpdateContent(m.store.User(), m.themes)
		return m, nil
	case "enter":
		name, email, password := m.loginPage.Credentials()
		if email == "" || password == "" {
			m.loginPage.SetError("E-mail et mot de passe sont obligatoires.")
			return m, nil
		}
		if m.loginPage.Registering() && name == "" {
			m.loginPage.SetError("Le nom est obligatoire.")
			return m, nil
		}
		m.loading = true
		m.loginPage.SetBusy(true)
		return m, tea.Batch(m.spinner.Tick, m.loginCmd(m.loginPage.Registering(), name, email, password))
	}
	return m.routeToPage(key)
}

func (m App) handleQuizKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.page = PageHome
		m.home.UpdateContent(m.store.User(), m.themes)
		return m, nil
	case "1", "2", "3", "4":
		if m.quizCtrl.State() == quiz.StateAnswering {
			if err := m.quizCtrl.SelectAnswer(int(key.String()[0] - '1')); err == nil {
				m.quizPage.UpdateContent(m.quizCtrl)
			}
		}
		return m, nil
	case "enter":
		switch m.quizCtrl.State() {
		case quiz.StateAnswering:
			if m.quizCtrl.Selected() < 0 {
				return m, nil
			}
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.submitQuizCmd())
		case quiz.StateRevealed:
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.nextQuizCmd())
		}
		return m, nil
	case "r":
		if m.quizCtrl.State() == quiz.StateCompleted {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.resetQuizCmd())
		}
		return m, nil
	}
	return m.routeToPage(key)
}

func (m App) handleBudgetKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		// Inside a scenario Esc backs out one level; on the list it
		// leaves the page.
		if m.budgetPage.Tab() == TabScenario && m.budgetQuiz.Selected() != nil {
			return m.routeToPage(key)
		}
		m.page = PageHome
		m.home.UpdateContent(m.store.User(), m.themes)
		return m, nil
	case "enter":
		if m.budgetPage.ReadyToSubmit() {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.submitBudgetCmd())
		}
	}
	return m.routeToPage(key)
}

func (m App) handleLibraryKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.String() == "esc" && m.libPage.Mode() == ModeList:
		m.page = PageHome
		m.home.UpdateContent(m.store.User(), m.themes)
		return m, nil
	case key.String() == "ctrl+s" && m.libPage.Mode() == ModeForm:
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.saveActivityCmd(m.libPage.EditID(), m.libPage.Draft()))
	case key.String() == "y" && m.libPage.Mode() == ModeConfirmDelete:
		selected := m.libPage.Selected()
		if selected == nil {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.deleteActivityCmd(selected.ID))
	}
	return m.routeToPage(key)
}

func (m App) handleProfileKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.page = PageHome
		m.home.UpdateContent(m.store.User(), m.themes)
		return m, nil
	case "enter":
		avatar := m.profile.SelectedAvatar()
		if avatar == nil {
			return m, nil
		}
		if !m.profile.SelectedUnlocked() {
			m.status = fmt.Sprintf("Avatar verrouillé — niveau %d requis.", avatar.RequiredLevel)
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.setAvatarCmd(avatar.ID))
	case "L":
		m.loading = true
		return m, m.logoutCmd()
	}
	return m.routeToPage(key)
}

// routeToPage forwards a message to the active page model.
func (m App) routeToPage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case PageHome:
		m.home, cmd = m.home.Update(msg)
	case PageLogin:
		m.loginPage, cmd = m.loginPage.Update(msg)
	case PageQuiz:
		m.quizPage, cmd = m.quizPage.Update(msg)
	case PageBudget:
		m.budgetPage, cmd = m.budgetPage.Update(msg)
	case PageActivities:
		m.libPage, cmd = m.libPage.Update(msg)
	case PageProfile:
		m.profile, cmd = m.profile.Update(msg)
	}
	return m, cmd
}

// View renders the header, the active page, and the status footer.
func (m App) View() string {
	header := m.styles.Header.Render(" EHPAD Academy ")
	if user := m.store.User(); user != nil {
		header += m.styles.Muted.Render(fmt.Sprintf("  %s · niveau %d · %d XP", user.Name, types.LevelForXP(user.XP), user.XP))
	} else {
		header += m.styles.Muted.Render("  mode invité")
	}

	var body string
	switch m.page {
	case PageLogin:
		body = m.loginPage.View()
	case PageQuiz:
		body = m.quizPage.View()
	case PageBudget:
		body = m.budgetPage.View()
	case PageActivities:
		body = m.libPage.View()
	case PageProfile:
		body = m.profile.View()
	default:
		body = m.home.View()
	}

	footer := ""
	switch {
	case m.loading:
		footer = m.styles.Footer.Render(m.spinner.View() + " chargement…")
	case m.status != "":
		footer = m.styles.Error.Render(" " + m.status)
	}

	return header + "\n" + body + "\n" + footer
}

// ---- commands -------------------------------------------------------------

func (m App) loginCmd(register bool, name, email, password string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if register {
			err = store.Register(ctx, name, email, password)
		} else {
			err = store.Login(ctx, email, password)
		}
		return loginResultMsg{err: err}
	}
}

func (m App) logoutCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.Logout()
		return loggedOutMsg{}
	}
}

func (m App) startQuizCmd(themeID string) tea.Cmd {
	ctrl := m.quizCtrl
	return func() tea.Msg {
		if err := ctrl.Start(context.Background(), themeID); err != nil {
			return errMsg{err: err}
		}
		return quizChangedMsg{}
	}
}

func (m App) submitQuizCmd() tea.Cmd {
	ctrl := m.quizCtrl
	return func() tea.Msg {
		if err := ctrl.Submit(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return quizChangedMsg{}
	}
}

func (m App) nextQuizCmd() tea.Cmd {
	ctrl := m.quizCtrl
	return func() tea.Msg {
		if err := ctrl.Next(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return quizChangedMsg{}
	}
}

func (m App) resetQuizCmd() tea.Cmd {
	ctrl := m.quizCtrl
	return func() tea.Msg {
		if err := ctrl.Reset(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return quizChangedMsg{}
	}
}

func (m App) loadBudgetCmd() tea.Cmd {
	q := m.budgetQuiz
	return func() tea.Msg {
		q.Load(context.Background())
		return budgetLoadedMsg{}
	}
}

func (m App) submitBudgetCmd() tea.Cmd {
	q := m.budgetQuiz
	return func() tea.Msg {
		if err := q.Submit(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return budgetJudgedMsg{}
	}
}

func (m App) fetchLibraryCmd() tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		return libraryMsg{err: lib.Fetch(context.Background())}
	}
}

func (m App) saveActivityCmd(id string, draft activities.Draft) tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		return savedMsg{err: lib.Save(context.Background(), id, draft)}
	}
}

func (m App) deleteActivityCmd(id string) tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		return deletedMsg{err: lib.Delete(context.Background(), id)}
	}
}

func (m App) loadProfileCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		avatars, badges := catalog.FetchProfileCatalogs(context.Background(), store.Client())
		return profileMsg{avatars: avatars, badges: badges}
	}
}

func (m App) setAvatarCmd(avatarID string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.UpdateUser(context.Background(), types.UserUpdate{Avatar: &avatarID})
		return avatarSetMsg{}
	}
}

// loginErrorText maps API failures to the form's French messages.
func loginErrorText(err error) string {
	return "Échec de la connexion : " + err.Error()
}

// Run starts the interactive program on the home page.
func Run(store *session.Store, logger *zap.Logger) error {
	return RunFrom(store, logger, PageHome, "")
}

// RunFrom starts the interactive program on a specific page; a non-empty
// themeID opens a quiz for that theme directly.
func RunFrom(store *session.Store, logger *zap.Logger, page Page, themeID string) error {
	app := NewApp(store, logger)
	app.startPage = page
	app.startTheme = themeID
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
