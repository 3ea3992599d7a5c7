package view

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

// Timeframe is a preset date range, or TimeframeCustom for one typed in.
type Timeframe int

const (
	TimeframeToday Timeframe = iota
	TimeframeThisWeek
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeThisYear
	TimeframeCustom
)

var timeframeNames = [...]string{
	TimeframeToday:     "Today",
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeThisYear:  "This Year",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if t < 0 || int(t) >= len(timeframeNames) {
		return "Unknown"
	}

	return timeframeNames[t]
}

// weekStart is the Monday of day's week.
func weekStart(day time.Time) time.Time {
	return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
}

// timeframeToDateRange returns the first and last day of tf relative to now.
// Ranges that contain today end on today.
func timeframeToDateRange(tf Timeframe, now time.Time) (time.Time, time.Time) {
	today := ledger.Day(now)

	switch tf {
	case TimeframeThisWeek:
		return weekStart(today), today
	case TimeframeLastWeek:
		end := weekStart(today).AddDate(0, 0, -1)
		return end.AddDate(0, 0, -6), end
	case TimeframeThisMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today
	case TimeframeLastMonth:
		start := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case TimeframeThisYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today
	}

	return today, today
}

// customRange parses a typed range. Both ends are inclusive days.
func customRange(start, end string) (time.Time, time.Time, error) {
	s, err := ledger.ParseDay(strings.TrimSpace(start))
	if err != nil {
		return time.Time{}, time.Time{}, &ledger.ValidationError{Field: string(ledger.FieldStart), Message: "start date must be YYYY-MM-DD"}
	}

	e, err := ledger.ParseDay(strings.TrimSpace(end))
	if err != nil {
		return time.Time{}, time.Time{}, &ledger.ValidationError{Field: string(ledger.FieldEnd), Message: "end date must be YYYY-MM-DD"}
	}

	if err := (ledger.FilterCriteria{Start: s, End: e}).Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return s, e, nil
}

func validDay(s string) error {
	if _, err := ledger.ParseDay(strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

// TimeframeSelectedMsg is emitted when the user has selected a valid date
// range. Both ends are whole days and inclusive.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
}

// rangeFields outlives picker copies so the forms stay bound to it.
type rangeFields struct {
	Frame Timeframe
	Start string
	End   string
}

// TimeframePicker selects a preset range, or a custom one typed on a second
// form.
type TimeframePicker struct {
	fields *rangeFields
	form   *huh.Form
	custom bool
	err    error
}

func NewTimeframePicker() TimeframePicker {
	f := &rangeFields{}
	return TimeframePicker{fields: f, form: newPresetForm(f)}
}

func newPresetForm(f *rangeFields) *huh.Form {
	opts := make([]huh.Option[Timeframe], 0, len(timeframeNames))
	for tf := TimeframeToday; tf <= TimeframeCustom; tf++ {
		opts = append(opts, huh.NewOption(tf.String(), tf))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Title("Select Timeframe").
				Options(opts...).
				Value(&f.Frame),
		),
	).WithWidth(40).WithShowHelp(false)
}

func newCustomForm(f *rangeFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start Date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Validate(validDay).
				Value(&f.Start),

			huh.NewInput().
				Title("End Date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Validate(validDay).
				Value(&f.End),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m TimeframePicker) Init() tea.Cmd {
	return m.form.Init()
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.custom {
		m.custom = false
		m.err = nil
		m.form = newPresetForm(m.fields)

		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !m.custom && m.fields.Frame == TimeframeCustom {
		m.custom = true
		m.form = newCustomForm(m.fields)

		return m, m.form.Init()
	}

	var start, end time.Time

	if m.custom {
		var err error
		if start, end, err = customRange(m.fields.Start, m.fields.End); err != nil {
			m.err = err
			m.form = newCustomForm(m.fields)

			return m, m.form.Init()
		}
	} else {
		start, end = timeframeToDateRange(m.fields.Frame, time.Now())
	}

	m.err = nil

	return m, func() tea.Msg {
		return TimeframeSelectedMsg{Start: start, End: end}
	}
}

func (m TimeframePicker) View() string {
	s := m.form.View()
	if m.err != nil {
		s += "\n" + renderError(m.err)
	}

	if m.custom {
		return s + "\n" + faintStyle.Render("(Enter to confirm, Esc to go back)")
	}

	return s + "\n" + faintStyle.Render("(Enter to select, Esc to go back)")
}

// IsSelecting reports whether the preset list is shown.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

// Reset shows the preset list again, keeping the last choices.
func (m *TimeframePicker) Reset() tea.Cmd {
	m.custom = false
	m.err = nil
	m.form = newPresetForm(m.fields)

	return m.form.Init()
}
