package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendo/internal/editor"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

// RegisterModel is a standalone creation form. It starts over on today after
// every successful save.
type RegisterModel struct {
	CommonModel
	deps  Deps
	codes refcode.Cache

	editor editor.Orchestrator
	fields *entryFields
	form   *huh.Form

	status string
}

func NewRegisterModel(deps Deps) RegisterModel {
	return RegisterModel{
		deps:   deps,
		codes:  refcode.New(),
		editor: editor.New(deps.Ledger),
	}
}

func (m RegisterModel) reset() RegisterModel {
	if !m.codes.IsReady() {
		m.form = nil
		return m
	}

	m.editor = m.editor.OpenCreate(time.Now(), m.codes)
	m.fields = fieldsFrom(m.editor.Draft())
	m.form = newEntryForm(m.fields, m.codes)

	return m
}

func (m RegisterModel) Title() string { return "Register Entry" }

func (m RegisterModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m RegisterModel) Init() tea.Cmd {
	if m.form == nil {
		return m.codes.Load(m.deps.Ledger)
	}

	return m.form.Init()
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(refcode.LoadedMsg); ok {
		m.codes = m.codes.Update(msg)
		if m.form != nil || !m.codes.IsReady() {
			return m, nil
		}

		m = m.reset()

		return m, m.form.Init()
	}

	if saved, ok := msg.(editor.SavedMsg); ok {
		m.status = fmt.Sprintf("Saved entry #%d.", saved.No)
		m = m.reset()

		return m, m.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editor = m.editor.Cancel()
		return m, Back
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if cmd != nil || m.form == nil || m.editor.State() != editor.StateEditing {
		return m, cmd
	}

	if m.form.State == huh.StateCompleted {
		m.form = newEntryForm(m.fields, m.codes)
		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	var err error
	if m.editor, err = m.fields.stage(m.editor); err != nil {
		return m, nil
	}

	m.status = ""
	m.editor, cmd = m.editor.Save(m.codes)

	if cmd == nil {
		m.form = newEntryForm(m.fields, m.codes)
		return m, m.form.Init()
	}

	return m, cmd
}

func (m RegisterModel) View() string {
	var body string

	switch {
	case m.codes.Status() == refcode.StatusFailed:
		body = renderError(m.codes.Err()) + "\n\n" + faintStyle.Render("Press Esc and reopen the screen to retry.")
	case m.form == nil:
		body = "Loading reference codes..."
	case m.editor.State() == editor.StateSaving:
		body = "Saving..."
	default:
		body = m.form.View()
	}

	if err := m.editor.Err(); err != nil {
		body += "\n" + renderError(err)
	}

	header := lipgloss.NewStyle().Bold(true).Render("Register Entry")
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
