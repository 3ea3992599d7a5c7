// Package listsync keeps a displayed result set in step with the remote
// ledger for one active query. Only the most recently issued read is applied.
package listsync

import (
	"context"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type State int

const (
	StateIdle State = iota
	StateFetching
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}

	return "idle"
}

// Lister runs one list read. *ledger.Service satisfies it.
type Lister interface {
	List(ctx context.Context, q ledger.QueryParams) ([]ledger.Entry, error)
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// ResultMsg is the outcome of one read, tagged with the controller and the
// sequence number it was issued under.
type ResultMsg struct {
	id    int
	seq   int
	Query ledger.QueryParams
	Rows  []ledger.Entry
	Err   error
}

type Controller struct {
	id    int
	src   Lister
	seq   int
	query *ledger.QueryParams
	state State
	rows  []ledger.Entry
	err   error
}

func New(src Lister) Controller {
	return Controller{id: nextID(), src: src}
}

// SetQuery makes q the active query and reads it. Results of any earlier
// read still in flight are discarded when they arrive.
func (c Controller) SetQuery(q ledger.QueryParams) (Controller, tea.Cmd) {
	c.query = &q
	return c.fetch()
}

// Refresh re-reads the active query. It does nothing before the first
// SetQuery.
func (c Controller) Refresh() (Controller, tea.Cmd) {
	if c.query == nil {
		return c, nil
	}

	return c.fetch()
}

func (c Controller) fetch() (Controller, tea.Cmd) {
	c.seq++
	c.state = StateFetching

	var (
		id  = c.id
		seq = c.seq
		q   = *c.query
		src = c.src
	)

	return c, func() tea.Msg {
		rows, err := src.List(context.Background(), q)
		return ResultMsg{id: id, seq: seq, Query: q, Rows: rows, Err: err}
	}
}

// Update applies the result of the latest read. Stale results and messages
// of other controllers leave c unchanged.
func (c Controller) Update(msg tea.Msg) Controller {
	res, ok := msg.(ResultMsg)
	if !ok || res.id != c.id {
		return c
	}

	if res.seq != c.seq {
		slog.Debug("dropping stale list result", "seq", res.seq, "latest", c.seq)
		return c
	}

	if res.Err != nil {
		slog.Error("failed to list entries", "query", res.Query, "error", res.Err)

		c.state = StateError
		c.err = res.Err

		return c
	}

	c.state = StateReady
	c.err = nil
	c.rows = res.Rows

	return c
}

func (c Controller) State() State         { return c.state }
func (c Controller) Rows() []ledger.Entry { return c.rows }
func (c Controller) Err() error           { return c.err }
func (c Controller) Fetching() bool       { return c.state == StateFetching }

// Query returns the active query and whether one has been set.
func (c Controller) Query() (ledger.QueryParams, bool) {
	if c.query == nil {
		return ledger.QueryParams{}, false
	}

	return *c.query, true
}

// Empty reports a successful read that returned no rows.
func (c Controller) Empty() bool {
	return c.state == StateReady && len(c.rows) == 0
}
