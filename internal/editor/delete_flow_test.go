package editor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/editor"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/local"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/store/memory"
	"github.com/MrJamesThe3rd/spendo/internal/listsync"
)

func TestDeleteGate_ListRefreshAgainstStore(t *testing.T) {
	svc := ledger.NewService(local.New(memory.NewDefault()))

	no, err := svc.Save(context.Background(), ledger.Draft{
		Date:        "2024-05-01",
		Title:       "Coffee",
		Price:       "4500",
		TypeCode:    "EXP",
		PaymentCode: "CC01",
	}, codes{})
	require.NoError(t, err)
	require.Equal(t, int64(1), no)

	list := listsync.New(svc)

	list, cmd := list.SetQuery(ledger.BuildQuery(ledger.FilterCriteria{
		Start:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		TypeCode:    ledger.All,
		PaymentCode: ledger.All,
	}))
	list = list.Update(cmd())

	require.Equal(t, listsync.StateReady, list.State())
	assert.Equal(t, []ledger.Entry{{
		No:          1,
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Title:       "Coffee",
		Price:       4500,
		TypeCode:    "EXP",
		PaymentCode: "CC01",
	}}, list.Rows())

	gate := editor.NewDeleteGate(svc).Request(list.Rows()[0].No)

	gate, cmd = gate.Decide(true)
	require.NotNil(t, cmd)
	assert.False(t, gate.Armed())
	assert.Equal(t, editor.DeletedMsg{No: 1}, cmd())

	list, cmd = list.Refresh()
	require.NotNil(t, cmd)

	list = list.Update(cmd())

	assert.True(t, list.Empty())
	assert.Empty(t, list.Rows())
}
