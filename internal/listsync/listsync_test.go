package listsync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/listsync"
)

type fakeLister struct {
	rows map[ledger.QueryParams][]ledger.Entry
	err  error
}

func (f *fakeLister) List(_ context.Context, q ledger.QueryParams) ([]ledger.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.rows[q], nil
}

var (
	queryA = ledger.QueryParams{StartDt: "2024-05-01", EndDt: "2024-05-31"}
	queryB = ledger.QueryParams{StartDt: "2024-05-01", EndDt: "2024-05-31", Title: "Taxi"}

	coffee = ledger.Entry{No: 1, Title: "Coffee", Price: 4500}
	taxi   = ledger.Entry{No: 2, Title: "Taxi", Price: 12000}
)

func newLister() *fakeLister {
	return &fakeLister{rows: map[ledger.QueryParams][]ledger.Entry{
		queryA: {coffee, taxi},
		queryB: {taxi},
	}}
}

func TestController_SetQuery(t *testing.T) {
	c := listsync.New(newLister())
	assert.Equal(t, listsync.StateIdle, c.State())

	c, cmd := c.SetQuery(queryA)
	require.NotNil(t, cmd)
	assert.True(t, c.Fetching())

	c = c.Update(cmd())
	assert.Equal(t, listsync.StateReady, c.State())
	assert.Equal(t, []ledger.Entry{coffee, taxi}, c.Rows())

	q, ok := c.Query()
	assert.True(t, ok)
	assert.Equal(t, queryA, q)
}

func TestController_LastQueryWins(t *testing.T) {
	tests := []struct {
		name  string
		order []int
	}{
		{name: "OlderResultArrivesLast", order: []int{1, 0}},
		{name: "OlderResultArrivesFirst", order: []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := listsync.New(newLister())

			c, cmdA := c.SetQuery(queryA)
			c, cmdB := c.SetQuery(queryB)

			msgs := []any{cmdA(), cmdB()}
			for _, i := range tt.order {
				c = c.Update(msgs[i])
			}

			assert.Equal(t, listsync.StateReady, c.State())
			assert.Equal(t, []ledger.Entry{taxi}, c.Rows())
		})
	}
}

func TestController_ErrorKeepsRows(t *testing.T) {
	src := newLister()
	c := listsync.New(src)

	c, cmd := c.SetQuery(queryA)
	c = c.Update(cmd())
	require.Len(t, c.Rows(), 2)

	src.err = &ledger.NetworkError{Op: "list entries", Err: errors.New("timeout")}

	c, cmd = c.Refresh()
	c = c.Update(cmd())

	assert.Equal(t, listsync.StateError, c.State())
	assert.ErrorIs(t, c.Err(), ledger.ErrNetwork)
	assert.Len(t, c.Rows(), 2)
	assert.False(t, c.Empty())

	src.err = nil

	c, cmd = c.Refresh()
	c = c.Update(cmd())
	assert.Equal(t, listsync.StateReady, c.State())
	assert.NoError(t, c.Err())
}

func TestController_EmptyIsNotError(t *testing.T) {
	c := listsync.New(newLister())

	c, cmd := c.SetQuery(ledger.QueryParams{StartDt: "2023-01-01", EndDt: "2023-01-01"})
	c = c.Update(cmd())

	assert.Equal(t, listsync.StateReady, c.State())
	assert.True(t, c.Empty())
	assert.NoError(t, c.Err())
}

func TestController_RefreshBeforeQuery(t *testing.T) {
	c := listsync.New(newLister())

	c, cmd := c.Refresh()
	assert.Nil(t, cmd)
	assert.Equal(t, listsync.StateIdle, c.State())
}

func TestController_RefreshSupersedesInFlight(t *testing.T) {
	src := newLister()
	c := listsync.New(src)

	c, first := c.SetQuery(queryA)
	stale := first()

	src.rows[queryA] = []ledger.Entry{taxi}

	c, second := c.Refresh()
	c = c.Update(second())
	c = c.Update(stale)

	assert.Equal(t, []ledger.Entry{taxi}, c.Rows())
}

func TestController_IgnoresOtherControllers(t *testing.T) {
	other := listsync.New(newLister())
	_, cmd := other.SetQuery(queryA)

	c := listsync.New(newLister())
	c, _ = c.SetQuery(queryB)
	c = c.Update(cmd())

	assert.True(t, c.Fetching())
	assert.Empty(t, c.Rows())
}
