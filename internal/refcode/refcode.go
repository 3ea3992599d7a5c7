// Package refcode holds the transaction-type and payment-type enumerations a
// screen validates and renders against.
package refcode

import (
	"context"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}

	return "loading"
}

// Source reads both enumerations. *ledger.Service satisfies it.
type Source interface {
	TypeCodes(ctx context.Context) ([]ledger.ReferenceCode, error)
	PaymentCodes(ctx context.Context) ([]ledger.ReferenceCode, error)
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// LoadedMsg carries the outcome of both reads.
type LoadedMsg struct {
	id       int
	Types    []ledger.ReferenceCode
	Payments []ledger.ReferenceCode
	Err      error
}

// Cache is owned by one screen and handed to everything else read-only. It
// implements ledger.Codes.
type Cache struct {
	id       int
	status   Status
	types    []ledger.ReferenceCode
	payments []ledger.ReferenceCode
	err      error
}

var _ ledger.Codes = Cache{}

func New() Cache {
	return Cache{id: nextID(), status: StatusLoading}
}

// Load reads both enumerations concurrently. The cache leaves loading only
// once both reads have returned.
func (c Cache) Load(src Source) tea.Cmd {
	id := c.id

	return func() tea.Msg {
		var types, payments []ledger.ReferenceCode

		g, ctx := errgroup.WithContext(context.Background())

		g.Go(func() error {
			var err error
			types, err = src.TypeCodes(ctx)

			return err
		})

		g.Go(func() error {
			var err error
			payments, err = src.PaymentCodes(ctx)

			return err
		})

		if err := g.Wait(); err != nil {
			return LoadedMsg{id: id, Err: err}
		}

		return LoadedMsg{id: id, Types: types, Payments: payments}
	}
}

// Update applies a LoadedMsg issued by this cache. Anything else is ignored.
func (c Cache) Update(msg tea.Msg) Cache {
	loaded, ok := msg.(LoadedMsg)
	if !ok || loaded.id != c.id {
		return c
	}

	if loaded.Err != nil {
		slog.Error("failed to load reference codes", "error", loaded.Err)

		c.status = StatusFailed
		c.err = loaded.Err
		c.types = nil
		c.payments = nil

		return c
	}

	c.status = StatusReady
	c.err = nil
	c.types = loaded.Types
	c.payments = loaded.Payments

	return c
}

func (c Cache) Status() Status { return c.status }
func (c Cache) Err() error     { return c.err }
func (c Cache) IsReady() bool  { return c.status == StatusReady }

func (c Cache) TypeCodes() []ledger.ReferenceCode    { return c.types }
func (c Cache) PaymentCodes() []ledger.ReferenceCode { return c.payments }

// DefaultType is the first type code, or "" when none are loaded.
func (c Cache) DefaultType() string {
	return first(c.types)
}

func (c Cache) DefaultPayment() string {
	return first(c.payments)
}

// TypeName is the display label of code, falling back to the code itself.
func (c Cache) TypeName(code string) string {
	return name(c.types, code)
}

func (c Cache) PaymentName(code string) string {
	return name(c.payments, code)
}

func first(codes []ledger.ReferenceCode) string {
	if len(codes) == 0 {
		return ""
	}

	return codes[0].Code
}

func find(codes []ledger.ReferenceCode, code string) (ledger.ReferenceCode, bool) {
	for _, c := range codes {
		if c.Code == code {
			return c, true
		}
	}

	return ledger.ReferenceCode{}, false
}

func name(codes []ledger.ReferenceCode, code string) string {
	if c, ok := find(codes, code); ok {
		return c.Name
	}

	return code
}
