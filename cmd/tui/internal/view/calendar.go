package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendo/internal/editor"
	"github.com/MrJamesThe3rd/spendo/internal/gesture"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/listsync"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

var (
	cursorDayStyle   = lipgloss.NewStyle().Reverse(true)
	selectedDayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	todayStyle       = lipgloss.NewStyle().Underline(true)
)

// CalendarModel shows a month. Tapping a day lists its entries; tapping the
// same day again within the double tap window opens a creation form for it.
type CalendarModel struct {
	CommonModel
	deps  Deps
	codes refcode.Cache

	cursor time.Time
	taps   gesture.Machine
	day    listsync.Controller
	table  table.Model

	editor editor.Orchestrator
	fields *entryFields
	form   *huh.Form

	initCmd tea.Cmd
	status  string
}

func NewCalendarModel(deps Deps) CalendarModel {
	today := ledger.Day(time.Now())

	m := CalendarModel{
		deps:   deps,
		codes:  refcode.New(),
		cursor: today,
		taps:   gesture.New(deps.DoubleTapWindow, today),
		day:    listsync.New(deps.Ledger),
		table:  newTable(entryColumns(false), 8),
		editor: editor.New(deps.Ledger),
	}

	m.day, m.initCmd = m.day.SetQuery(ledger.DayQuery(today))

	return m
}

func (m CalendarModel) Title() string { return "Calendar" }

func (m CalendarModel) ShortHelp() string {
	if m.editor.IsOpen() {
		return "Navigate form | Esc: cancel"
	}

	return "Arrows: move | [ ]: month | Enter: select (twice: new entry) | t: today | r: refresh | Esc: back"
}

func (m CalendarModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.codes.Load(m.deps.Ledger))
}

func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.codes = m.codes.Update(msg)

	switch msg := msg.(type) {
	case refcode.LoadedMsg:
		m.table.SetRows(entryRows(m.day.Rows(), m.codes, m.deps.Currency, false))
		return m, nil

	case listsync.ResultMsg:
		m.day = m.day.Update(msg)
		m.table.SetRows(entryRows(m.day.Rows(), m.codes, m.deps.Currency, false))

		return m, nil

	case editor.SavedMsg:
		m.status = fmt.Sprintf("Saved entry #%d.", msg.No)
		m.form = nil
		m.fields = nil
		m.table.Focus()

		var cmd tea.Cmd
		m.day, cmd = m.day.Refresh()

		return m, cmd

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if cmd != nil {
		return m, cmd
	}

	if m.editor.IsOpen() {
		return m.updateCreate(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.updateBrowse(keyMsg)
	}

	return m, nil
}

func (m CalendarModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, Back
	case "left", "h":
		m.cursor = m.cursor.AddDate(0, 0, -1)
	case "right", "l":
		m.cursor = m.cursor.AddDate(0, 0, 1)
	case "up", "k":
		m.cursor = m.cursor.AddDate(0, 0, -7)
	case "down", "j":
		m.cursor = m.cursor.AddDate(0, 0, 7)
	case "[":
		m.cursor = m.cursor.AddDate(0, -1, 0)
	case "]":
		m.cursor = m.cursor.AddDate(0, 1, 0)
	case "t":
		m.cursor = ledger.Day(time.Now())
	case "r":
		var cmd tea.Cmd
		m.day, cmd = m.day.Refresh()

		return m, cmd
	case "enter", " ":
		return m.tap(time.Now())
	}

	return m, nil
}

func (m CalendarModel) tap(at time.Time) (tea.Model, tea.Cmd) {
	var ev gesture.Event
	m.taps, ev = m.taps.Tap(at, m.cursor)

	if ev.Action == gesture.Select {
		m.status = ""

		var cmd tea.Cmd
		m.day, cmd = m.day.SetQuery(ledger.DayQuery(ev.Date))

		return m, cmd
	}

	if !m.codes.IsReady() {
		m.status = "Reference codes are not loaded yet."
		return m, nil
	}

	m.editor = m.editor.OpenCreate(ev.Date, m.codes)
	m.fields = fieldsFrom(m.editor.Draft())
	m.form = newEntryForm(m.fields, m.codes)
	m.table.Blur()

	return m, m.form.Init()
}

func (m CalendarModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.editor = m.editor.Cancel()
		m.form = nil
		m.fields = nil
		m.table.Focus()

		return m, nil
	}

	if m.editor.State() != editor.StateEditing {
		return m, nil
	}

	// A failed save returns to editing with the completed form still shown.
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

	m.editor, cmd = m.editor.Save(m.codes)
	if cmd == nil {
		m.form = newEntryForm(m.fields, m.codes)
		return m, m.form.Init()
	}

	return m, cmd
}

func (m CalendarModel) View() string {
	month := renderMonth(m.cursor, m.taps.Selected(), ledger.Day(time.Now()))

	selected := m.taps.Selected()
	header := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("%s (%s)", FormatDate(selected), selected.Weekday()))

	if m.day.Fetching() {
		header += " " + faintStyle.Render("Loading...")
	}

	lines := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if m.day.State() == listsync.StateError {
		lines = append(lines, renderError(m.day.Err()))
	}

	switch {
	case len(m.day.Rows()) > 0:
		lines = append(lines, renderTable(m.table), dayTotals(m.day.Rows(), m.codes, m.deps.Currency))
	case m.day.Empty():
		lines = append(lines, faintStyle.Render("No entries on this day."))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(4).Render(month),
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)

	if m.editor.IsOpen() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewForm())
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	if m.codes.Status() == refcode.StatusFailed {
		content = renderError(m.codes.Err()) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CalendarModel) viewForm() string {
	var body string

	switch {
	case m.editor.State() == editor.StateSaving:
		body = "Saving..."
	case m.form != nil:
		body = m.form.View()
	}

	if err := m.editor.Err(); err != nil {
		body += "\n" + renderError(err)
	}

	return panelStyle.Width(48).Render(
		fmt.Sprintf("New Entry for %s\n\n%s", m.editor.Draft().Date, body),
	)
}

// renderMonth draws the month of cursor as a Monday-first grid.
func renderMonth(cursor, selected, today time.Time) string {
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) + 6) % 7

	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(first.Format("January 2006")))
	sb.WriteString("\n\nMo Tu We Th Fr Sa Su\n")
	sb.WriteString(strings.Repeat("   ", lead))

	col := lead

	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())

		switch {
		case ledger.SameDay(d, cursor):
			cell = cursorDayStyle.Render(cell)
		case ledger.SameDay(d, selected):
			cell = selectedDayStyle.Render(cell)
		case ledger.SameDay(d, today):
			cell = todayStyle.Render(cell)
		}

		sb.WriteString(cell)

		col++
		if col%7 == 0 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}

	return sb.String()
}

// dayTotals sums the listed entries per type.
func dayTotals(entries []ledger.Entry, codes refcode.Cache, currency string) string {
	totals := map[string]int64{}
	for _, e := range entries {
		totals[e.TypeCode] += e.Price
	}

	parts := make([]string, 0, len(totals))

	for _, c := range codes.TypeCodes() {
		if total, ok := totals[c.Code]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", c.Name, FormatPrice(total, currency)))
		}
	}

	return faintStyle.Render(strings.Join(parts, " | "))
}
