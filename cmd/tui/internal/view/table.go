package view

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func entryColumns(withDate bool) []table.Column {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Price", Width: 14},
		{Title: "Type", Width: 10},
		{Title: "Payment", Width: 14},
	}

	if withDate {
		columns = append([]table.Column{{Title: "Date", Width: 12}}, columns...)
	}

	return columns
}

func entryRows(entries []ledger.Entry, codes refcode.Cache, currency string, withDate bool) []table.Row {
	rows := make([]table.Row, 0, len(entries))

	for _, e := range entries {
		row := table.Row{
			e.Title,
			FormatPrice(e.Price, currency),
			codes.TypeName(e.TypeCode),
			codes.PaymentName(e.PaymentCode),
		}

		if withDate {
			row = append(table.Row{FormatDate(e.Date)}, row...)
		}

		rows = append(rows, row)
	}

	return rows
}

func renderTable(t table.Model) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(t.View())
}
