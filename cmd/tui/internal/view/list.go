package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendo/internal/editor"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/listsync"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

// filterFields backs the search form.
type filterFields struct {
	Start   string
	End     string
	Title   string
	Type    string
	Payment string
}

func filterFieldsFrom(c ledger.FilterCriteria) *filterFields {
	return &filterFields{
		Start:   FormatDate(c.Start),
		End:     FormatDate(c.End),
		Title:   c.Title,
		Type:    c.TypeCode,
		Payment: c.PaymentCode,
	}
}

func (f *filterFields) criteria() (ledger.FilterCriteria, error) {
	start, err := ledger.ParseDay(f.Start)
	if err != nil {
		return ledger.FilterCriteria{}, &ledger.ValidationError{Field: string(ledger.FieldStart), Message: "start date must be YYYY-MM-DD"}
	}

	end, err := ledger.ParseDay(f.End)
	if err != nil {
		return ledger.FilterCriteria{}, &ledger.ValidationError{Field: string(ledger.FieldEnd), Message: "end date must be YYYY-MM-DD"}
	}

	c := ledger.FilterCriteria{
		Start:       start,
		End:         end,
		Title:       f.Title,
		TypeCode:    f.Type,
		PaymentCode: f.Payment,
	}

	return c, c.Validate()
}

func newFilterForm(f *filterFields, codes refcode.Cache) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("start").
				Title("From").
				Placeholder("YYYY-MM-DD").
				Value(&f.Start),

			huh.NewInput().
				Key("end").
				Title("To").
				Placeholder("YYYY-MM-DD").
				Value(&f.End),

			huh.NewInput().
				Key("title").
				Title("Title contains").
				Value(&f.Title),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(codeOptions(codes.TypeCodes(), true)...).
				Value(&f.Type),

			huh.NewSelect[string]().
				Key("payment").
				Title("Payment").
				Options(codeOptions(codes.PaymentCodes(), true)...).
				Value(&f.Payment),
		),
	).WithWidth(45).WithShowHelp(false)
}

// ListModel searches entries and opens the detail, edit and delete flows on
// the selected row.
type ListModel struct {
	CommonModel
	deps  Deps
	codes refcode.Cache

	filter     *filterFields
	filterForm *huh.Form

	results listsync.Controller
	table   table.Model

	editor  editor.Orchestrator
	fields  *entryFields
	form    *huh.Form
	deletes editor.DeleteGate

	initCmd tea.Cmd
	status  string
}

func NewListModel(deps Deps) ListModel {
	criteria := ledger.DefaultCriteria(time.Now())

	m := ListModel{
		deps:    deps,
		codes:   refcode.New(),
		filter:  filterFieldsFrom(criteria),
		results: listsync.New(deps.Ledger),
		table:   newTable(entryColumns(true), 15),
		editor:  editor.New(deps.Ledger),
		deletes: editor.NewDeleteGate(deps.Ledger),
	}

	m.results, m.initCmd = m.results.SetQuery(ledger.BuildQuery(criteria))

	return m
}

func (m ListModel) Title() string { return "Search Entries" }

func (m ListModel) ShortHelp() string {
	switch {
	case m.deletes.Armed():
		return "y: delete | n: keep"
	case m.filterForm != nil, m.editor.State() == editor.StateEditing:
		return "Navigate form | Esc: cancel"
	case m.editor.State() == editor.StateDetailShown:
		return "e: edit | d: delete | Esc: close"
	}

	return "Esc: back | /: filter | Enter: details | e: edit | d: delete | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.codes.Load(m.deps.Ledger))
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.codes = m.codes.Update(msg)

	switch msg := msg.(type) {
	case refcode.LoadedMsg:
		m.table.SetRows(entryRows(m.results.Rows(), m.codes, m.deps.Currency, true))
		return m, nil

	case listsync.ResultMsg:
		m.results = m.results.Update(msg)
		m.table.SetRows(entryRows(m.results.Rows(), m.codes, m.deps.Currency, true))

		return m, nil

	case editor.SavedMsg:
		m.status = fmt.Sprintf("Saved entry #%d.", msg.No)
		return m.closeEditor(true)

	case editor.DeletedMsg:
		if msg.Err != nil {
			m.status = "Delete failed: " + ledger.UserMessage(msg.Err)
		} else {
			m.status = fmt.Sprintf("Deleted entry #%d.", msg.No)
		}

		return m.closeEditor(true)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	if m.deletes.Armed() {
		return m.updateConfirmDelete(msg)
	}

	if m.filterForm != nil {
		return m.updateFilter(msg)
	}

	wasOpen := m.editor.IsOpen()

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if cmd != nil {
		return m, cmd
	}

	if wasOpen && !m.editor.IsOpen() {
		// The entry could not be opened, most likely deleted elsewhere.
		m.status = ledger.UserMessage(m.editor.Err())
		return m.closeEditor(errors.Is(m.editor.Err(), ledger.ErrNotFound))
	}

	switch m.editor.State() {
	case editor.StateClosed:
		return m.updateBrowse(msg)
	case editor.StateDetailShown:
		return m.updateDetail(msg)
	case editor.StateEditing:
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeEditor(false)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "/", "f":
			m.filterForm = newFilterForm(m.filter, m.codes)
			m.table.Blur()

			return m, m.filterForm.Init()
		case "r":
			var cmd tea.Cmd
			m.results, cmd = m.results.Refresh()

			return m, cmd
		case "enter":
			if no, ok := m.cursorNo(); ok {
				var cmd tea.Cmd
				m.editor, cmd = m.editor.OpenDetail(no)
				m.table.Blur()

				return m, cmd
			}
		case "e":
			if no, ok := m.cursorNo(); ok {
				return m.openEdit(no)
			}
		case "d":
			if no, ok := m.cursorNo(); ok {
				m.deletes = m.deletes.Request(no)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.filterForm = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.filterForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.filterForm = f
	}

	if m.filterForm.State != huh.StateCompleted {
		return m, cmd
	}

	criteria, err := m.filter.criteria()
	if err != nil {
		m.status = ledger.UserMessage(err)
		m.filterForm = newFilterForm(m.filter, m.codes)

		return m, m.filterForm.Init()
	}

	m.status = ""
	m.filterForm = nil
	m.table.Focus()
	m.table.SetCursor(0)
	m.results, cmd = m.results.SetQuery(ledger.BuildQuery(criteria))

	return m, cmd
}

func (m ListModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m.closeEditor(false)
	case "e":
		return m.openEdit(m.editor.Entry().No)
	case "d":
		m.deletes = m.deletes.Request(m.editor.Entry().No)
	}

	return m, nil
}

func (m ListModel) openEdit(no int64) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.OpenEdit(no)
	m.fields = nil
	m.form = nil
	m.table.Blur()

	return m, cmd
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editor = m.editor.Cancel()
		return m.closeEditor(false)
	}

	// First pass after the entry loaded, or a failed save.
	if m.form == nil || m.form.State == huh.StateCompleted {
		if m.fields == nil {
			m.fields = fieldsFrom(m.editor.Draft())
		}

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

	m.editor, cmd = m.editor.Save(m.codes)
	if cmd == nil {
		m.form = newEntryForm(m.fields, m.codes)
		return m, m.form.Init()
	}

	return m, cmd
}

func (m ListModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd

	switch keyMsg.String() {
	case "y", "Y":
		m.deletes, cmd = m.deletes.Decide(true)
	case "n", "N", "esc":
		m.deletes, cmd = m.deletes.Decide(false)
	}

	return m, cmd
}

// closeEditor returns to the table, refreshing it when the rows may have
// changed.
func (m ListModel) closeEditor(refresh bool) (tea.Model, tea.Cmd) {
	if m.editor.IsOpen() {
		m.editor = m.editor.Close()
	}

	m.fields = nil
	m.form = nil
	m.table.Focus()

	if !refresh {
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Refresh()

	return m, cmd
}

func (m ListModel) cursorNo() (int64, bool) {
	rows := m.results.Rows()

	idx := m.table.Cursor()
	if idx < 0 || idx >= len(rows) {
		return 0, false
	}

	return rows[idx].No, true
}

func (m ListModel) View() string {
	header := m.viewFilterSummary()
	if m.results.Fetching() {
		header += " " + faintStyle.Render("Loading...")
	}

	lines := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if m.codes.Status() == refcode.StatusFailed {
		lines = append(lines, renderError(m.codes.Err()))
	}

	// Rows of the last successful read stay on screen while refreshing and
	// after a failed read.
	if m.results.State() == listsync.StateError {
		lines = append(lines, renderError(m.results.Err()))
	}

	switch {
	case len(m.results.Rows()) > 0:
		lines = append(lines, renderTable(m.table))
	case m.results.Empty():
		lines = append(lines, faintStyle.Render("No entries match the filter."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	if panel := m.viewPanel(); panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ListModel) viewFilterSummary() string {
	typeLabel, paymentLabel := "All", "All"
	if m.filter.Type != ledger.All {
		typeLabel = m.codes.TypeName(m.filter.Type)
	}

	if m.filter.Payment != ledger.All {
		paymentLabel = m.codes.PaymentName(m.filter.Payment)
	}

	title := m.filter.Title
	if title == "" {
		title = "*"
	}

	return fmt.Sprintf("Filter: %s ~ %s | Title: %s | Type: %s | Payment: %s",
		activeStyle(m.filter.Start),
		activeStyle(m.filter.End),
		activeStyle(title),
		activeStyle(typeLabel),
		activeStyle(paymentLabel),
	)
}

func (m ListModel) viewPanel() string {
	var title, body string

	switch {
	case m.deletes.Armed():
		title = "Delete Entry"
		body = fmt.Sprintf("Delete entry #%d? (y/n)", m.deletes.Target())
	case m.filterForm != nil:
		title = "Filter"
		body = m.filterForm.View()
	case m.editor.Busy():
		title = "Entry"
		body = "Loading..."
	case m.editor.State() == editor.StateDetailShown:
		title = "Entry Details"
		body = m.viewDetail(m.editor.Entry())
	case m.editor.State() == editor.StateEditing && m.form != nil:
		title = fmt.Sprintf("Edit Entry #%d", m.editor.Draft().No)
		body = m.form.View()

		if err := m.editor.Err(); err != nil {
			body += "\n" + renderError(err)
		}
	default:
		return ""
	}

	return panelStyle.Width(48).Render(title + "\n\n" + body)
}

func (m ListModel) viewDetail(e *ledger.Entry) string {
	content := e.Content
	if content == "" {
		content = "-"
	}

	return fmt.Sprintf(
		"No:      %d\nDate:    %s\nTitle:   %s\nPrice:   %s\nType:    %s\nPayment: %s\n\n%s",
		e.No,
		FormatDate(e.Date),
		e.Title,
		FormatPrice(e.Price, m.deps.Currency),
		m.codes.TypeName(e.TypeCode),
		m.codes.PaymentName(e.PaymentCode),
		content,
	)
}
