package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/spendo/internal/export"
	"github.com/MrJamesThe3rd/spendo/internal/importer"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type CommonModel struct {
	Width  int
	Height int
}

// Deps are the services and settings every screen is built from.
type Deps struct {
	Ledger   *ledger.Service
	Importer *importer.Service
	Exporter *export.Service

	DoubleTapWindow time.Duration
	Currency        string
	ExportDir       string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
