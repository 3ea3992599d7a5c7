package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

const barWidth = 30

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

type statsState int

const (
	statsStateTimeframe statsState = iota
	statsStateLoading
	statsStateResult
)

// StatsModel charts expense totals per title over a date range.
type StatsModel struct {
	CommonModel
	deps Deps

	state           statsState
	timeframePicker TimeframePicker

	start time.Time
	end   time.Time
	rows  []ledger.Expenditure
	err   error
}

func NewStatsModel(deps Deps) StatsModel {
	return StatsModel{
		deps:            deps,
		timeframePicker: NewTimeframePicker(),
	}
}

func (m StatsModel) Title() string { return "Expenditure" }

func (m StatsModel) ShortHelp() string {
	if m.state == statsStateResult {
		return "Esc: pick another range"
	}

	return "Esc: back | Enter: select"
}

func (m StatsModel) Init() tea.Cmd {
	return m.timeframePicker.Init()
}

func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.start, m.end = msg.Start, msg.End
		m.state = statsStateLoading

		return m, m.loadCmd(msg.Start, msg.End)

	case statsLoadedMsg:
		if !msg.start.Equal(m.start) || !msg.end.Equal(m.end) {
			return m, nil
		}

		m.state = statsStateResult
		m.rows = msg.rows
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == statsStateTimeframe && m.timeframePicker.IsSelecting() {
				return m, Back
			}

			if m.state != statsStateTimeframe {
				m.state = statsStateTimeframe

				return m, m.timeframePicker.Reset()
			}
		}
	}

	if m.state != statsStateTimeframe {
		return m, nil
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

type statsLoadedMsg struct {
	start, end time.Time
	rows       []ledger.Expenditure
	err        error
}

func (m StatsModel) loadCmd(start, end time.Time) tea.Cmd {
	svc := m.deps.Ledger

	return func() tea.Msg {
		rows, err := svc.Expenditure(context.Background(), start, end)
		return statsLoadedMsg{start: start, end: end, rows: rows, err: err}
	}
}

func (m StatsModel) View() string {
	switch m.state {
	case statsStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	case statsStateLoading:
		return lipgloss.NewStyle().Padding(1).Render("Loading expenditure...")
	}

	header := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("Expenses %s ~ %s", FormatDate(m.start), FormatDate(m.end)))

	var body string

	switch {
	case m.err != nil:
		body = renderError(m.err)
	case len(m.rows) == 0:
		body = faintStyle.Render("No data for this range.")
	default:
		body = renderBars(m.rows, m.deps.Currency)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", body),
	)
}

// renderBars draws one bar per title scaled to the largest total, followed by
// the overall sum.
func renderBars(rows []ledger.Expenditure, currency string) string {
	var peak, total int64

	labelWidth := 0

	for _, r := range rows {
		peak = max(peak, r.Price)
		total += r.Price
		labelWidth = max(labelWidth, lipgloss.Width(r.Title))
	}

	var sb strings.Builder

	for _, r := range rows {
		n := 0
		if peak > 0 {
			n = int(r.Price * barWidth / peak)
		}

		if n == 0 && r.Price > 0 {
			n = 1
		}

		label := r.Title + strings.Repeat(" ", labelWidth-lipgloss.Width(r.Title))
		fmt.Fprintf(&sb, "%s %s %s\n", label, barStyle.Render(strings.Repeat("█", n)), FormatPrice(r.Price, currency))
	}

	fmt.Fprintf(&sb, "\nTotal: %s", FormatPrice(total, currency))

	return sb.String()
}
