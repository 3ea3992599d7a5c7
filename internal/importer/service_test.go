package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendo/internal/importer"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type codes struct{}

func (codes) IsReady() bool                        { return true }
func (codes) TypeCodes() []ledger.ReferenceCode    { return []ledger.ReferenceCode{{Code: "EXP"}, {Code: "INC"}} }
func (codes) PaymentCodes() []ledger.ReferenceCode { return []ledger.ReferenceCode{{Code: "CC01"}} }

func TestService_Import(t *testing.T) {
	csv := `Date,Description,Amount
2024-05-10,Coffee,-4500
2024-05-11,Taxi,-12000
`

	ctrl := gomock.NewController(t)
	gw := ledger.NewMockGateway(ctrl)
	gomock.InOrder(
		gw.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(1), nil),
		gw.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(2), nil),
	)

	svc := importer.NewService(ledger.NewService(gw))

	parsed, err := svc.Preview(strings.NewReader(csv), opts)
	require.NoError(t, err)

	res, err := svc.Import(context.Background(), parsed, codes{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, res.Created)
	assert.Empty(t, res.Invalid)
}

func TestService_ImportReportsSourceLines(t *testing.T) {
	csv := `exported on 2024-06-01
Date,Description,Amount
2024-05-10,Coffee,-4500
2024-05-11,,-12000
`

	ctrl := gomock.NewController(t)
	svc := importer.NewService(ledger.NewService(ledger.NewMockGateway(ctrl)))

	parsed, err := svc.Preview(strings.NewReader(csv), opts)
	require.NoError(t, err)

	res, err := svc.Import(context.Background(), parsed, codes{})
	require.NoError(t, err)
	require.Len(t, res.Invalid, 1)
	assert.Equal(t, 4, res.Invalid[0].Row)
	assert.ErrorIs(t, res.Invalid[0].Err, ledger.ErrValidation)
	assert.Empty(t, res.Created)
}

func TestOptionsFor(t *testing.T) {
	opts := importer.OptionsFor(codes{})

	assert.Equal(t, "EXP", opts.ExpenseType)
	assert.Equal(t, "INC", opts.IncomeType)
	assert.Equal(t, "CC01", opts.DefaultPayment)
}

func TestOptionsFor_UnknownCodes(t *testing.T) {
	opts := importer.OptionsFor(ledger.StaticCodes{
		Types:    []ledger.ReferenceCode{{Code: "OUT"}, {Code: "IN"}},
		Payments: []ledger.ReferenceCode{{Code: "CASH"}},
	})

	assert.Equal(t, "OUT", opts.ExpenseType)
	assert.Equal(t, "OUT", opts.IncomeType)
	assert.Equal(t, "CASH", opts.DefaultPayment)
}
