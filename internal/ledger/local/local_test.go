package local_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/local"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/store/memory"
)

func TestGateway_ThroughService(t *testing.T) {
	ctx := context.Background()
	svc := ledger.NewService(local.New(memory.NewDefault()))

	types, err := svc.TypeCodes(ctx)
	require.NoError(t, err)

	payments, err := svc.PaymentCodes(ctx)
	require.NoError(t, err)

	codes := ledger.StaticCodes{Types: types, Payments: payments}

	no, err := svc.Save(ctx, ledger.Draft{
		Date:        "2024-05-10",
		Title:       "Coffee",
		Price:       "4,500",
		TypeCode:    "EXP",
		PaymentCode: "CC01",
	}, codes)
	require.NoError(t, err)
	assert.Positive(t, no)

	got, err := svc.Get(ctx, no)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), got.Price)

	d := ledger.DraftFrom(*got)
	d.Title = "Latte"
	_, err = svc.Save(ctx, d, codes)
	require.NoError(t, err)

	rows, err := svc.List(ctx, ledger.DayQuery(got.Date))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Latte", rows[0].Title)

	require.NoError(t, svc.Delete(ctx, no))
	require.NoError(t, svc.Delete(ctx, no))

	_, err = svc.Get(ctx, no)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
