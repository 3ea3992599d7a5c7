package refcode_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/refcode"
)

type fakeSource struct {
	types      []ledger.ReferenceCode
	payments   []ledger.ReferenceCode
	typeErr    error
	paymentErr error
	calls      atomic.Int32
}

func (f *fakeSource) TypeCodes(context.Context) ([]ledger.ReferenceCode, error) {
	f.calls.Add(1)
	return f.types, f.typeErr
}

func (f *fakeSource) PaymentCodes(context.Context) ([]ledger.ReferenceCode, error) {
	f.calls.Add(1)
	return f.payments, f.paymentErr
}

var (
	types    = []ledger.ReferenceCode{{No: 1, Code: "EXP", Name: "Expense"}, {No: 2, Code: "INC", Name: "Income"}}
	payments = []ledger.ReferenceCode{{No: 3, Code: "CC01", Name: "Credit card"}}
)

func TestCache_Load(t *testing.T) {
	src := &fakeSource{types: types, payments: payments}

	c := refcode.New()
	assert.Equal(t, refcode.StatusLoading, c.Status())
	assert.False(t, c.IsReady())

	c = c.Update(c.Load(src)())

	require.True(t, c.IsReady())
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, "EXP", c.DefaultType())
	assert.Equal(t, "CC01", c.DefaultPayment())
	assert.Equal(t, "Income", c.TypeName("INC"))
	assert.Equal(t, "Credit card", c.PaymentName("CC01"))
	assert.Equal(t, "ZZ99", c.PaymentName("ZZ99"))
	assert.NoError(t, c.Err())
}

func TestCache_LoadFailure(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{name: "TypesFail", src: &fakeSource{typeErr: errors.New("down"), payments: payments}},
		{name: "PaymentsFail", src: &fakeSource{types: types, paymentErr: errors.New("down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := refcode.New()
			c = c.Update(c.Load(tt.src)())

			assert.Equal(t, refcode.StatusFailed, c.Status())
			assert.Error(t, c.Err())
			assert.Empty(t, c.TypeCodes())
			assert.Empty(t, c.PaymentCodes())
			assert.Empty(t, c.DefaultType())

			// A failed cache cannot back a submission.
			_, err := ledger.Draft{Date: "2024-05-10", Title: "x", Price: "1", TypeCode: "EXP", PaymentCode: "CC01"}.Entry(c)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}
}

func TestCache_IgnoresForeignMessages(t *testing.T) {
	src := &fakeSource{types: types, payments: payments}

	other := refcode.New()
	msg := other.Load(src)()

	c := refcode.New()
	c = c.Update(msg)

	assert.Equal(t, refcode.StatusLoading, c.Status())
}
