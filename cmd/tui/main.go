package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendo/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendo/internal/config"
	"github.com/MrJamesThe3rd/spendo/internal/export"
	"github.com/MrJamesThe3rd/spendo/internal/importer"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/client"
	"github.com/MrJamesThe3rd/spendo/internal/logging"
)

const defaultLogFile = "spendo-tui.log"

type model struct {
	deps   view.Deps
	apiURL string

	currentView View

	calendarView view.CalendarModel
	listView     view.ListModel
	registerView view.RegisterModel
	statsView    view.StatsModel
	importView   view.ImportModel
	exportView   view.ExportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewCalendar View = 1
	ViewList     View = 2
	ViewRegister View = 3
	ViewStats    View = 4
	ViewImport   View = 5
	ViewExport   View = 6
)

func initialModel(cfg *config.Config) model {
	var opts []client.Option
	if cfg.API.Secret != "" {
		opts = append(opts, client.WithSecret(cfg.API.Secret, cfg.API.Subject))
	}

	ledgerSvc := ledger.NewService(client.New(cfg.API.BaseURL, cfg.API.Timeout, opts...))

	deps := view.Deps{
		Ledger:          ledgerSvc,
		Importer:        importer.NewService(ledgerSvc),
		Exporter:        export.NewService(ledgerSvc),
		DoubleTapWindow: cfg.UI.DoubleTapWindow,
		Currency:        cfg.UI.Currency,
		ExportDir:       cfg.UI.ExportDir,
	}

	return model{
		deps:        deps,
		apiURL:      cfg.API.BaseURL,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCalendar:
		var newModel tea.Model
		newModel, cmd = m.calendarView.Update(msg)
		m.calendarView = newModel.(view.CalendarModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewRegister:
		var newModel tea.Model
		newModel, cmd = m.registerView.Update(msg)
		m.registerView = newModel.(view.RegisterModel)
	case ViewStats:
		var newModel tea.Model
		newModel, cmd = m.statsView.Update(msg)
		m.statsView = newModel.(view.StatsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewCalendar
		m.calendarView = view.NewCalendarModel(m.deps)

		return m, m.calendarView.Init()
	case "2":
		m.currentView = ViewList
		m.listView = view.NewListModel(m.deps)

		return m, m.listView.Init()
	case "3":
		m.currentView = ViewRegister
		m.registerView = view.NewRegisterModel(m.deps)

		return m, m.registerView.Init()
	case "4":
		m.currentView = ViewStats
		m.statsView = view.NewStatsModel(m.deps)

		return m, m.statsView.Init()
	case "5":
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.deps)

		return m, m.importView.Init()
	case "6":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.deps)

		return m, m.exportView.Init()
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return m.viewMenu()
	case ViewCalendar:
		return m.calendarView.View()
	case ViewList:
		return m.listView.View()
	case ViewRegister:
		return m.registerView.View()
	case ViewStats:
		return m.statsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func (m model) viewMenu() string {
	return lipgloss.NewStyle().Padding(2).Render(
		"Spendo\n\n" +
			"1. Calendar\n" +
			"2. Search Entries\n" +
			"3. Register Entry\n" +
			"4. Expenditure\n" +
			"5. Import Statement\n" +
			"6. Export Entries\n\n" +
			"q. Quit\n\n" +
			lipgloss.NewStyle().Faint(true).Render("API: "+m.apiURL),
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = defaultLogFile
	}

	logs := logging.Setup(logging.Options{
		Level:      cfg.LogLevel(),
		File:       logFile,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer logs.Close()

	p := tea.NewProgram(initialModel(cfg))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
