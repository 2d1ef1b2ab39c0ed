package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"ehpadacademy/internal/activities"
	"ehpadacademy/internal/types"
)

// ActivitiesMode selects which view of the library is showing.
type ActivitiesMode int

const (
	// ModeList shows the searchable sheet list.
	ModeList ActivitiesMode = iota
	// ModeDetail shows one rendered sheet.
	ModeDetail
	// ModeForm shows the create/edit form.
	ModeForm
	// ModeConfirmDelete asks before a deletion.
	ModeConfirmDelete
)

// Form field order. Category, difficulty and visibility are cycled rather
// than typed, so they sit between the text inputs in the focus ring.
const (
	fieldTitle = iota
	fieldCategory
	fieldDuration
	fieldParticipants
	fieldDescription
	fieldMaterial
	fieldObjectives
	fieldPublic
	fieldCount
)

// ActivitiesPageModel renders the activity-sheet library: the filtered
// list, a sheet detail view, and the create/edit form. Filtering is local;
// fetch, save and delete go through the app model.
type ActivitiesPageModel struct {
	width  int
	height int

	ctrl     *activities.Controller
	mode     ActivitiesMode
	cursor   int
	filtered []types.Activity
	selected *types.Activity
	editID   string

	searchInput textinput.Model
	searching   bool
	category    int // index into categoryFilters

	inputs    []textinput.Model
	focus     int
	formCat   int
	formDiff  int
	formPub   bool
	formError string

	detail viewport.Model

	styles Styles
}

// categoryFilters is the filter cycle: every category plus the "all" entry.
var categoryFilters = append([]string{"all"}, activities.Categories()...)

// NewActivitiesPageModel creates the library page.
func NewActivitiesPageModel() ActivitiesPageModel {
	si := textinput.New()
	si.Placeholder = "Rechercher une activité…"
	si.CharLimit = 64
	si.Width = 40

	placeholders := map[int]string{
		fieldTitle:        "Titre",
		fieldDuration:     "Durée (ex: 45 min)",
		fieldParticipants: "Participants (ex: 4-8)",
		fieldDescription:  "Description",
		fieldMaterial:     "Matériel, séparé par des virgules",
		fieldObjectives:   "Objectifs, séparés par des virgules",
	}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 48
		if p, ok := placeholders[i]; ok {
			ti.Placeholder = p
		}
		inputs[i] = ti
	}

	vp := viewport.New(80, 20)
	return ActivitiesPageModel{
		searchInput: si,
		inputs:      inputs,
		detail:      vp,
		formPub:     true,
		styles:      DefaultStyles(),
		width:       80,
		height:      20,
	}
}

// Init initializes the model.
func (m ActivitiesPageModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m ActivitiesPageModel) Update(msg tea.Msg) (ActivitiesPageModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == ModeDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.updateList(key)
	case ModeDetail:
		return m.updateDetail(key)
	case ModeForm:
		return m.updateForm(key)
	case ModeConfirmDelete:
		return m.updateConfirm(key)
	}
	return m, nil
}

func (m ActivitiesPageModel) updateList(key tea.KeyMsg) (ActivitiesPageModel, tea.Cmd) {
	if m.searching {
		switch key.String() {
		case "enter", "esc":
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(key)
		if m.ctrl != nil {
			m.ctrl.SearchTerm = m.searchInput.Value()
			m.refilter()
		}
		return m, cmd
	}

	switch key.String() {
	case "/":
		m.searching = true
		return m, m.searchInput.Focus()
	case "f":
		m.category = (m.category + 1) % len(categoryFilters)
		if m.ctrl != nil {
			m.ctrl.CategoryFilter = categoryFilters[m.category]
			m.refilter()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter":
		if a := m.cursorActivity(); a != nil {
			m.openDetail(a)
		}
	case "n":
		m.openForm(nil)
	case "e":
		if a := m.cursorActivity(); a != nil {
			m.openForm(a)
		}
	case "d":
		if a := m.cursorActivity(); a != nil {
			m.selected = a
			m.mode = ModeConfirmDelete
		}
	}
	return m, nil
}

func (m ActivitiesPageModel) updateDetail(key tea.KeyMsg) (ActivitiesPageModel, tea.Cmd) {
	switch key.String() {
	case "esc", "backspace":
		m.mode = ModeList
		return m, nil
	case "e":
		m.openForm(m.selected)
		return m, nil
	case "d":
		m.mode = ModeConfirmDelete
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(key)
	return m, cmd
}

func (m ActivitiesPageModel) updateForm(key tea.KeyMsg) (ActivitiesPageModel, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = ModeList
		m.formError = ""
		return m, nil
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		m.applyFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		m.applyFormFocus()
		return m, nil
	}

	switch m.focus {
	case fieldCategory:
		if key.String() == "left" || key.String() == "right" || key.String() == " " {
			cats := activities.Categories()
			m.formCat = (m.formCat + 1) % len(cats)
		}
		return m, nil
	case fieldPublic:
		if key.String() == " " || key.String() == "left" || key.String() == "right" {
			m.formPub = !m.formPub
		}
		return m, nil
	}

	// Difficulty cycles with Ctrl+D from anywhere in the form.
	if key.String() == "ctrl+d" {
		diffs := activities.Difficulties()
		m.formDiff = (m.formDiff + 1) % len(diffs)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(key)
	return m, cmd
}

func (m ActivitiesPageModel) updateConfirm(key tea.KeyMsg) (ActivitiesPageModel, tea.Cmd) {
	switch key.String() {
	case "n", "esc":
		m.mode = ModeList
	}
	// "y" is handled by the app model, which runs the deletion.
	return m, nil
}

func (m *ActivitiesPageModel) applyFormFocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	switch m.focus {
	case fieldCategory, fieldPublic:
		// Cycled fields have no text input to focus.
	default:
		m.inputs[m.focus].Focus()
	}
}

func (m *ActivitiesPageModel) cursorActivity() *types.Activity {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.cursor]
}

func (m *ActivitiesPageModel) openDetail(a *types.Activity) {
	m.selected = a
	m.detail.SetContent(activities.Render(a, m.width-4))
	m.detail.GotoTop()
	m.mode = ModeDetail
}

func (m *ActivitiesPageModel) openForm(a *types.Activity) {
	m.formError = ""
	m.focus = fieldTitle
	cats := activities.Categories()
	diffs := activities.Difficulties()
	m.formCat, m.formDiff = 0, 0

	if a == nil {
		m.editID = ""
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.formPub = true
	} else {
		m.editID = a.ID
		m.inputs[fieldTitle].SetValue(a.Title)
		m.inputs[fieldDuration].SetValue(a.Duration)
		m.inputs[fieldParticipants].SetValue(a.Participants)
		m.inputs[fieldDescription].SetValue(a.Description)
		m.inputs[fieldMaterial].SetValue(strings.Join(a.Material, ", "))
		m.inputs[fieldObjectives].SetValue(strings.Join(a.Objectives, ", "))
		for i, c := range cats {
			if c == a.Category {
				m.formCat = i
			}
		}
		for i, d := range diffs {
			if d == a.Difficulty {
				m.formDiff = i
			}
		}
		m.formPub = a.IsPublic
	}

	m.applyFormFocus()
	m.mode = ModeForm
}

// View renders the page.
func (m ActivitiesPageModel) View() string {
	switch m.mode {
	case ModeDetail:
		return m.detail.View()
	case ModeForm:
		return m.styles.Content.Render(m.viewForm())
	case ModeConfirmDelete:
		return m.styles.Content.Render(m.viewConfirm())
	default:
		return m.styles.Content.Render(m.viewList())
	}
}

func (m ActivitiesPageModel) viewList() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Bibliothèque d'activités") + "\n")

	search := m.searchInput.View()
	filter := m.styles.Badge.Render(categoryFilters[m.category])
	sb.WriteString(search + "  " + filter + "\n\n")

	if m.ctrl == nil {
		sb.WriteString(m.styles.Muted.Render("Chargement des fiches…") + "\n")
		return sb.String()
	}
	if len(m.filtered) == 0 {
		sb.WriteString(m.styles.Muted.Render("Aucune fiche ne correspond aux filtres.") + "\n")
	}

	for i, a := range m.filtered {
		line := fmt.Sprintf(" %s  %s · %s · %s", a.Title, a.Category, a.Duration, a.Author)
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("▸"+line) + "\n")
		} else {
			sb.WriteString(m.styles.Body.Render(" "+line) + "\n")
		}
	}

	sb.WriteString("\n" + m.styles.Muted.Render("[/] rechercher  [f] catégorie  [Entrée] ouvrir  [n] nouvelle  [e] modifier  [d] supprimer  [Esc] accueil") + "\n")
	return sb.String()
}

func (m ActivitiesPageModel) viewForm() string {
	var sb strings.Builder

	title := "Nouvelle fiche d'activité"
	if m.editID != "" {
		title = "Modifier la fiche"
	}
	sb.WriteString(m.styles.Title.Render(title) + "\n")

	cats := activities.Categories()
	diffs := activities.Difficulties()

	row := func(i int, label, view string) {
		prefix := "  "
		if m.focus == i {
			prefix = m.styles.Prompt.Render("▸ ")
		}
		sb.WriteString(prefix + m.styles.Bold.Render(fmt.Sprintf("%-14s", label)) + view + "\n")
	}

	row(fieldTitle, "Titre", m.inputs[fieldTitle].View())
	row(fieldCategory, "Catégorie", m.styles.Badge.Render(cats[m.formCat]))
	row(fieldDuration, "Durée", m.inputs[fieldDuration].View())
	row(fieldParticipants, "Participants", m.inputs[fieldParticipants].View())
	row(fieldDescription, "Description", m.inputs[fieldDescription].View())
	row(fieldMaterial, "Matériel", m.inputs[fieldMaterial].View())
	row(fieldObjectives, "Objectifs", m.inputs[fieldObjectives].View())

	pub := "non"
	if m.formPub {
		pub = "oui"
	}
	row(fieldPublic, "Publique", m.styles.Badge.Render(pub))
	sb.WriteString("  " + m.styles.Bold.Render(fmt.Sprintf("%-14s", "Difficulté")) + m.styles.Badge.Render(diffs[m.formDiff]) + m.styles.Muted.Render("  (Ctrl+D pour changer)") + "\n")

	if m.formError != "" {
		sb.WriteString("\n" + m.styles.Error.Render(m.formError) + "\n")
	}

	sb.WriteString("\n" + m.styles.Muted.Render("[Tab] champ suivant  [Ctrl+S] enregistrer  [Esc] annuler") + "\n")
	return sb.String()
}

func (m ActivitiesPageModel) viewConfirm() string {
	var sb strings.Builder
	title := ""
	if m.selected != nil {
		title = m.selected.Title
	}
	sb.WriteString(m.styles.Warning.Render(fmt.Sprintf("Supprimer la fiche « %s » ?", title)) + "\n\n")
	sb.WriteString(m.styles.Muted.Render("[y] supprimer  [n] annuler") + "\n")
	return sb.String()
}

// SetSize updates the size of the detail viewport.
func (m *ActivitiesPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.detail.Width = w
	m.detail.Height = h
}

// Mode returns the current view mode.
func (m *ActivitiesPageModel) Mode() ActivitiesMode {
	return m.mode
}

// Selected returns the sheet shown in detail or pending deletion.
func (m *ActivitiesPageModel) Selected() *types.Activity {
	return m.selected
}

// EditID returns the id being edited, empty for a create.
func (m *ActivitiesPageModel) EditID() string {
	return m.editID
}

// Draft assembles the form fields into a draft for saving.
func (m *ActivitiesPageModel) Draft() activities.Draft {
	cats := activities.Categories()
	diffs := activities.Difficulties()
	return activities.Draft{
		Title:        m.inputs[fieldTitle].Value(),
		Category:     cats[m.formCat],
		Duration:     m.inputs[fieldDuration].Value(),
		Participants: m.inputs[fieldParticipants].Value(),
		Description:  m.inputs[fieldDescription].Value(),
		Difficulty:   diffs[m.formDiff],
		Material:     m.inputs[fieldMaterial].Value(),
		Objectives:   m.inputs[fieldObjectives].Value(),
		IsPublic:     m.formPub,
	}
}

// SetFormError shows a validation or save error inline in the form.
func (m *ActivitiesPageModel) SetFormError(msg string) {
	m.formError = msg
}

// CloseForm returns to the list after a successful save or delete.
func (m *ActivitiesPageModel) CloseForm() {
	m.mode = ModeList
	m.formError = ""
	m.selected = nil
}

// UpdateContent attaches the controller and recomputes the filtered list.
func (m *ActivitiesPageModel) UpdateContent(ctrl *activities.Controller) {
	m.ctrl = ctrl
	m.refilter()
}

func (m *ActivitiesPageModel) refilter() {
	if m.ctrl == nil {
		return
	}
	m.filtered = m.ctrl.Filtered()
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}
