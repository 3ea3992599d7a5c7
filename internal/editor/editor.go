// Package editor runs the detail, edit and create lifecycles of a single
// entry, plus the confirmation gate in front of deletes.
package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type State int

const (
	StateClosed State = iota
	StateDetailLoading
	StateDetailShown
	StateEditLoading
	StateEditing
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateDetailLoading:
		return "detail loading"
	case StateDetailShown:
		return "detail shown"
	case StateEditLoading:
		return "edit loading"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	}

	return "closed"
}

// Store is the part of *ledger.Service the orchestrator needs.
type Store interface {
	Get(ctx context.Context, no int64) (*ledger.Entry, error)
	Save(ctx context.Context, d ledger.Draft, codes ledger.Codes) (int64, error)
}

var ErrNotEditing = errors.New("no entry is being edited")

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

type loadedMsg struct {
	id    int
	gen   int
	entry *ledger.Entry
	err   error
}

type savedMsg struct {
	id      int
	gen     int
	no      int64
	created bool
	err     error
}

// SavedMsg tells the owner a save went through and its list should refresh.
type SavedMsg struct {
	No      int64
	Created bool
}

// Orchestrator owns one modal interaction at a time. Every open and close
// starts a new generation; responses from an earlier generation are dropped,
// so a closed modal never reopens on a late reply.
type Orchestrator struct {
	id    int
	gen   int
	store Store
	state State
	entry *ledger.Entry
	draft ledger.Draft
	err   error
}

func New(store Store) Orchestrator {
	return Orchestrator{id: nextID(), store: store}
}

// OpenDetail fetches entry no for read-only display.
func (o Orchestrator) OpenDetail(no int64) (Orchestrator, tea.Cmd) {
	o = o.reset(StateDetailLoading)
	return o, o.fetch(no)
}

// OpenEdit fetches entry no and stages it as a draft.
func (o Orchestrator) OpenEdit(no int64) (Orchestrator, tea.Cmd) {
	o = o.reset(StateEditLoading)
	return o, o.fetch(no)
}

// OpenCreate opens a blank draft for day with the first code of each
// enumeration preselected.
func (o Orchestrator) OpenCreate(day time.Time, codes ledger.Codes) Orchestrator {
	o = o.reset(StateEditing)
	o.draft = ledger.NewDraft(day, codes)

	return o
}

func (o Orchestrator) reset(state State) Orchestrator {
	o.gen++
	o.state = state
	o.entry = nil
	o.draft = ledger.Draft{}
	o.err = nil

	return o
}

func (o Orchestrator) fetch(no int64) tea.Cmd {
	var (
		id    = o.id
		gen   = o.gen
		store = o.store
	)

	return func() tea.Msg {
		e, err := store.Get(context.Background(), no)
		return loadedMsg{id: id, gen: gen, entry: e, err: err}
	}
}

// UpdateField stages value for f on the open draft.
func (o Orchestrator) UpdateField(f ledger.Field, value string) (Orchestrator, error) {
	if o.state != StateEditing {
		return o, ErrNotEditing
	}

	if err := o.draft.Set(f, value); err != nil {
		return o, err
	}

	return o, nil
}

// Cancel discards the draft without any network call.
func (o Orchestrator) Cancel() Orchestrator {
	return o.Close()
}

// Close closes whatever is open. Replies still in flight are ignored.
func (o Orchestrator) Close() Orchestrator {
	o = o.reset(StateClosed)
	return o
}

// Save validates the draft against codes. An invalid draft stays open with a
// field error and nothing is sent.
func (o Orchestrator) Save(codes ledger.Codes) (Orchestrator, tea.Cmd) {
	if o.state != StateEditing {
		return o, nil
	}

	if _, err := o.draft.Entry(codes); err != nil {
		o.err = err
		return o, nil
	}

	o.state = StateSaving
	o.err = nil

	var (
		id    = o.id
		gen   = o.gen
		store = o.store
		draft = o.draft
	)

	return o, func() tea.Msg {
		no, err := store.Save(context.Background(), draft, codes)
		return savedMsg{id: id, gen: gen, no: no, created: draft.IsNew(), err: err}
	}
}

// Update applies replies of the current generation. A successful save closes
// the orchestrator and emits SavedMsg.
func (o Orchestrator) Update(msg tea.Msg) (Orchestrator, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.id != o.id || msg.gen != o.gen {
			return o, nil
		}

		return o.loaded(msg), nil
	case savedMsg:
		if msg.id != o.id || msg.gen != o.gen || o.state != StateSaving {
			return o, nil
		}

		if msg.err != nil {
			slog.Error("failed to save entry", "no", o.draft.No, "error", msg.err)

			o.state = StateEditing
			o.err = msg.err

			return o, nil
		}

		o = o.Close()
		saved := SavedMsg{No: msg.no, Created: msg.created}

		return o, func() tea.Msg { return saved }
	}

	return o, nil
}

func (o Orchestrator) loaded(msg loadedMsg) Orchestrator {
	if msg.err != nil {
		slog.Error("failed to open entry", "state", o.state, "error", msg.err)

		o = o.Close()
		o.err = msg.err

		return o
	}

	switch o.state {
	case StateDetailLoading:
		o.state = StateDetailShown
		o.entry = msg.entry
	case StateEditLoading:
		o.state = StateEditing
		o.entry = msg.entry
		o.draft = ledger.DraftFrom(*msg.entry)
	}

	return o
}

func (o Orchestrator) State() State { return o.state }

// Entry is the fetched record while a detail or edit is open.
func (o Orchestrator) Entry() *ledger.Entry { return o.entry }
func (o Orchestrator) Draft() ledger.Draft  { return o.draft }

// Err is the last failure: a field error while editing, or the reason the
// orchestrator closed.
func (o Orchestrator) Err() error { return o.err }

func (o Orchestrator) IsOpen() bool { return o.state != StateClosed }

// Busy reports a request in flight.
func (o Orchestrator) Busy() bool {
	return o.state == StateDetailLoading || o.state == StateEditLoading || o.state == StateSaving
}
