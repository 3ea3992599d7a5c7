package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/store/memory"
)

func entry(date, title string, price int64, typ, pay string) *ledger.Entry {
	d, err := ledger.ParseDay(date)
	if err != nil {
		panic(err)
	}

	return &ledger.Entry{Date: d, Title: title, Price: price, TypeCode: typ, PaymentCode: pay}
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := memory.NewDefault()

	e := entry("2024-05-10", "Coffee", 4500, "EXP", "CC01")
	require.NoError(t, s.CreateEntry(ctx, e))
	assert.Equal(t, int64(1), e.No)

	got, err := s.GetEntry(ctx, e.No)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", got.Title)

	got.Price = 5000
	require.NoError(t, s.UpdateEntry(ctx, got))

	got, err = s.GetEntry(ctx, e.No)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.Price)

	require.NoError(t, s.DeleteEntry(ctx, e.No))

	_, err = s.GetEntry(ctx, e.No)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.ErrorIs(t, s.DeleteEntry(ctx, e.No), ledger.ErrNotFound)
	assert.ErrorIs(t, s.UpdateEntry(ctx, got), ledger.ErrNotFound)
}

func TestStore_ListEntries(t *testing.T) {
	ctx := context.Background()
	s := memory.NewDefault()

	for _, e := range []*ledger.Entry{
		entry("2024-05-10", "Coffee", 4500, "EXP", "CC01"),
		entry("2024-05-09", "Salary", 3000000, "INC", "CA01"),
		entry("2024-05-10", "Iced coffee", 5500, "EXP", "CA01"),
		entry("2024-06-01", "Coffee", 4500, "EXP", "CC01"),
	} {
		require.NoError(t, s.CreateEntry(ctx, e))
	}

	tests := []struct {
		name   string
		q      ledger.QueryParams
		titles []string
	}{
		{name: "Range", q: ledger.QueryParams{StartDt: "2024-05-01", EndDt: "2024-05-31"}, titles: []string{"Salary", "Coffee", "Iced coffee"}},
		{name: "Title", q: ledger.QueryParams{StartDt: "2024-05-01", EndDt: "2024-06-30", Title: "coffee"}, titles: []string{"Coffee", "Iced coffee", "Coffee"}},
		{name: "Payment", q: ledger.QueryParams{StartDt: "2024-05-10", EndDt: "2024-05-10", PaymentCode: "CA01"}, titles: []string{"Iced coffee"}},
		{name: "Type", q: ledger.QueryParams{StartDt: "2024-05-01", EndDt: "2024-05-31", TypeCode: "INC"}, titles: []string{"Salary"}},
		{name: "Empty", q: ledger.QueryParams{StartDt: "2023-01-01", EndDt: "2023-01-01"}, titles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListEntries(ctx, tt.q)
			require.NoError(t, err)

			titles := []string{}
			for _, e := range got {
				titles = append(titles, e.Title)
			}

			assert.Equal(t, tt.titles, titles)
		})
	}

	_, err := s.ListEntries(ctx, ledger.QueryParams{StartDt: "bad", EndDt: "2024-05-01"})
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestStore_SumExpenditure(t *testing.T) {
	ctx := context.Background()
	s := memory.NewDefault()

	for _, e := range []*ledger.Entry{
		entry("2024-05-10", "Coffee", 4500, "EXP", "CC01"),
		entry("2024-05-11", "Coffee", 4500, "EXP", "CC01"),
		entry("2024-05-11", "Taxi", 12000, "EXP", "CA01"),
		entry("2024-05-12", "Salary", 3000000, "INC", "CA01"),
	} {
		require.NoError(t, s.CreateEntry(ctx, e))
	}

	start, _ := ledger.ParseDay("2024-05-01")
	end, _ := ledger.ParseDay("2024-05-31")

	got, err := s.SumExpenditure(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Taxi", got[0].Title)
	assert.Equal(t, int64(9000), got[1].Price)
}

func TestStore_ListCodes(t *testing.T) {
	s := memory.NewDefault()

	types, err := s.ListCodes(context.Background(), ledger.GroupType)
	require.NoError(t, err)
	assert.Equal(t, "EXP", types[0].Code)

	_, err = s.ListCodes(context.Background(), "other")
	assert.ErrorIs(t, err, ledger.ErrValidation)
}
