package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

const requestTimeout = 30 * time.Second

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	panelStyle = lipgloss.NewStyle().Padding(1, 2).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
)

// FormatPrice renders a price with thousands separators and the currency
// suffix: 4500 -> "4,500원".
func FormatPrice(price int64, currency string) string {
	return ledger.FormatPrice(price) + currency
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return ledger.FormatDay(t)
}

// RequestCtx bounds screens that issue several requests in one command.
func RequestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func renderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("Error: %s", ledger.UserMessage(err)))
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
