package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendo/internal/importer"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	deps  Deps
	codes refcode.Cache

	state      importState
	filePicker filepicker.Model

	path        string
	parsed      *importer.Parsed
	previewList list.Model

	result *ledger.BatchResult
	status string
	err    error
}

func NewImportModel(deps Deps) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt", ".tsv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		deps:       deps,
		codes:      refcode.New(),
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Enter: import all | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return tea.Batch(m.filePicker.Init(), m.codes.Load(m.deps.Ledger))
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.codes = m.codes.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case previewMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Could not read %s: %v", m.path, msg.err)

			return m, nil
		}

		m.parsed = msg.parsed
		m.state = importStatePreview
		m.previewList = newPreviewList(msg.parsed, m.codes, m.deps.Currency)

		return m, nil

	case importResultMsg:
		m.state = importStateResult
		m.result = msg.result
		m.err = msg.err

		switch {
		case msg.result != nil && len(msg.result.Invalid) > 0:
			m.status = fmt.Sprintf("Nothing imported: %d invalid rows.", len(msg.result.Invalid))
		case msg.err != nil:
			m.status = fmt.Sprintf("Import stopped: %s", ledger.UserMessage(msg.err))
		default:
			m.status = fmt.Sprintf("Imported %d entries.", len(msg.result.Created))
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		if !m.codes.IsReady() {
			m.status = "Reference codes are not loaded yet."
			return m, cmd
		}

		m.path = path
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.parsed = nil
		m.result = nil
		m.err = nil
		m.status = ""

		return m, nil
	case importStateParsing, importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		if len(m.parsed.Drafts) == 0 {
			return m, nil
		}

		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing %d entries...", len(m.parsed.Drafts))

		return m, m.importCmd(m.parsed)
	}

	var cmd tea.Cmd
	m.previewList, cmd = m.previewList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		header := "Select a CSV statement to import:"
		if m.status != "" {
			header = faintStyle.Render(m.status) + "\n\n" + header
		}

		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + m.filePicker.View())
	case importStateParsing, importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		header := fmt.Sprintf("%s: %d entries (%s, %s)",
			m.path, len(m.parsed.Drafts), activeStyle(m.parsed.Profile), m.parsed.Charset)

		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + m.previewList.View())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)

	color := lipgloss.Color("46")
	if m.err != nil || (m.result != nil && len(m.result.Invalid) > 0) {
		color = lipgloss.Color("196")
	}

	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(m.status))

	if m.result != nil {
		for _, inv := range m.result.Invalid {
			fmt.Fprintf(&sb, "\n  line %d: %s", inv.Row, ledger.UserMessage(inv.Err))
		}

		if m.err != nil && len(m.result.Created) > 0 {
			fmt.Fprintf(&sb, "\n\n%d entries were created before the failure.", len(m.result.Created))
		}
	}

	sb.WriteString("\n\n(Esc to go back)")

	return style.Render(sb.String())
}

type previewMsg struct {
	parsed *importer.Parsed
	err    error
}

type importResultMsg struct {
	result *ledger.BatchResult
	err    error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	svc := m.deps.Importer
	opts := importer.OptionsFor(m.codes)

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return previewMsg{err: err}
		}
		defer f.Close()

		parsed, err := svc.Preview(f, opts)

		return previewMsg{parsed: parsed, err: err}
	}
}

func (m ImportModel) importCmd(parsed *importer.Parsed) tea.Cmd {
	svc := m.deps.Importer
	codes := m.codes

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := svc.Import(ctx, parsed, codes)

		return importResultMsg{result: result, err: err}
	}
}

func newPreviewList(parsed *importer.Parsed, codes refcode.Cache, currency string) list.Model {
	items := make([]list.Item, len(parsed.Drafts))
	for i, d := range parsed.Drafts {
		items[i] = previewItem{draft: d, line: parsed.Rows[i]}
	}

	l := list.New(items, previewDelegate{codes: codes, currency: currency}, 80, 20)
	l.Title = "Entries to import"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

type previewItem struct {
	draft ledger.Draft
	line  int
}

func (i previewItem) Title() string       { return i.draft.Title }
func (i previewItem) Description() string { return i.draft.Date }
func (i previewItem) FilterValue() string { return i.draft.Title }

type previewDelegate struct {
	codes    refcode.Cache
	currency string
}

func (d previewDelegate) Height() int                             { return 1 }
func (d previewDelegate) Spacing() int                            { return 0 }
func (d previewDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d previewDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(previewItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	price := item.draft.Price
	if p, err := ledger.ParsePrice(price); err == nil {
		price = FormatPrice(p, d.currency)
	}

	fmt.Fprintf(w, "%s%4d  %s  %-24s %14s  %s / %s",
		cursor,
		item.line,
		item.draft.Date,
		item.draft.Title,
		price,
		d.codes.TypeName(item.draft.TypeCode),
		d.codes.PaymentName(item.draft.PaymentCode),
	)
}
