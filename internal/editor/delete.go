package editor

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// Deleter is satisfied by *ledger.Service.
type Deleter interface {
	Delete(ctx context.Context, no int64) error
}

// DeletedMsg reports the outcome of a confirmed delete. The owner refreshes
// its list either way.
type DeletedMsg struct {
	No  int64
	Err error
}

// DeleteGate holds a delete until the user answers yes or no.
type DeleteGate struct {
	deleter Deleter
	no      int64
	armed   bool
}

func NewDeleteGate(d Deleter) DeleteGate {
	return DeleteGate{deleter: d}
}

// Request arms the gate for entry no.
func (g DeleteGate) Request(no int64) DeleteGate {
	g.no = no
	g.armed = true

	return g
}

func (g DeleteGate) Armed() bool   { return g.armed }
func (g DeleteGate) Target() int64 { return g.no }

// Decide disarms the gate. Only a yes issues the delete.
func (g DeleteGate) Decide(confirm bool) (DeleteGate, tea.Cmd) {
	if !g.armed {
		return g, nil
	}

	no := g.no
	deleter := g.deleter

	g.armed = false
	g.no = 0

	if !confirm {
		slog.Debug("delete cancelled", "no", no)
		return g, nil
	}

	return g, func() tea.Msg {
		return DeletedMsg{No: no, Err: deleter.Delete(context.Background(), no)}
	}
}
