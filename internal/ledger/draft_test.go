package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

type staticCodes struct {
	ready    bool
	types    []ledger.ReferenceCode
	payments []ledger.ReferenceCode
}

func (c staticCodes) IsReady() bool                        { return c.ready }
func (c staticCodes) TypeCodes() []ledger.ReferenceCode    { return c.types }
func (c staticCodes) PaymentCodes() []ledger.ReferenceCode { return c.payments }

var loadedCodes = staticCodes{
	ready: true,
	types: []ledger.ReferenceCode{
		{No: 1, Code: "EXP", Name: "Expense"},
		{No: 2, Code: "INC", Name: "Income"},
	},
	payments: []ledger.ReferenceCode{
		{No: 3, Code: "CC01", Name: "Credit card"},
		{No: 4, Code: "CA01", Name: "Cash"},
	},
}

func validDraft() ledger.Draft {
	return ledger.Draft{
		Date:        "2024-05-10",
		Title:       "Coffee",
		Price:       "4500",
		TypeCode:    "EXP",
		PaymentCode: "CC01",
	}
}

func TestDraft_Entry(t *testing.T) {
	tests := []struct {
		name      string
		edit      func(d *ledger.Draft)
		codes     ledger.Codes
		wantField string
		wantErr   bool
	}{
		{name: "Valid", codes: loadedCodes},
		{name: "PriceZero", edit: func(d *ledger.Draft) { d.Price = "0" }, codes: loadedCodes, wantField: "price", wantErr: true},
		{name: "PriceNegative", edit: func(d *ledger.Draft) { d.Price = "-10" }, codes: loadedCodes, wantField: "price", wantErr: true},
		{name: "PriceFraction", edit: func(d *ledger.Draft) { d.Price = "10.5" }, codes: loadedCodes, wantField: "price", wantErr: true},
		{name: "PriceText", edit: func(d *ledger.Draft) { d.Price = "abc" }, codes: loadedCodes, wantField: "price", wantErr: true},
		{name: "BlankTitle", edit: func(d *ledger.Draft) { d.Title = "   " }, codes: loadedCodes, wantField: "title", wantErr: true},
		{name: "MissingDate", edit: func(d *ledger.Draft) { d.Date = "" }, codes: loadedCodes, wantField: "date", wantErr: true},
		{name: "BadDate", edit: func(d *ledger.Draft) { d.Date = "10/05/2024" }, codes: loadedCodes, wantField: "date", wantErr: true},
		{name: "AllType", edit: func(d *ledger.Draft) { d.TypeCode = ledger.All }, codes: loadedCodes, wantField: "type", wantErr: true},
		{name: "MissingPayment", edit: func(d *ledger.Draft) { d.PaymentCode = "" }, codes: loadedCodes, wantField: "payment", wantErr: true},
		{name: "UnknownType", edit: func(d *ledger.Draft) { d.TypeCode = "XXX" }, codes: loadedCodes, wantField: "type", wantErr: true},
		{name: "UnknownPayment", edit: func(d *ledger.Draft) { d.PaymentCode = "ZZ99" }, codes: loadedCodes, wantField: "payment", wantErr: true},
		{name: "CodesNotLoaded", codes: staticCodes{}, wantErr: true},
		{name: "NilCodes", codes: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			if tt.edit != nil {
				tt.edit(&d)
			}

			e, err := d.Entry(tt.codes)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, int64(4500), e.Price)
				assert.Equal(t, "2024-05-10", ledger.FormatDay(e.Date))
				assert.Equal(t, "Coffee", e.Title)

				return
			}

			var vErr *ledger.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "4500", want: 4500},
		{in: "4,500", want: 4500},
		{in: " 1 200 ", want: 1200},
		{in: "12.00", want: 12},
		{in: "0", wantErr: true},
		{in: "", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ledger.ParsePrice(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ledger.ErrValidation)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDraft_SetGet(t *testing.T) {
	var d ledger.Draft

	require.NoError(t, d.Set(ledger.FieldTitle, "Taxi"))
	require.NoError(t, d.Set(ledger.FieldPrice, "12,000"))
	assert.Equal(t, "Taxi", d.Get(ledger.FieldTitle))
	assert.Equal(t, "12,000", d.Get(ledger.FieldPrice))

	err := d.Set(ledger.FieldStart, "2024-05-10")
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestNewDraft(t *testing.T) {
	d := ledger.NewDraft(day("2024-05-10"), loadedCodes)

	assert.True(t, d.IsNew())
	assert.Equal(t, "2024-05-10", d.Date)
	assert.Equal(t, "EXP", d.TypeCode)
	assert.Equal(t, "CC01", d.PaymentCode)
	assert.Empty(t, d.Title)
}

func TestDraftFrom(t *testing.T) {
	e := ledger.Entry{
		No:          7,
		Date:        day("2024-05-10"),
		Title:       "Coffee",
		Price:       4500,
		TypeCode:    "EXP",
		PaymentCode: "CC01",
	}

	d := ledger.DraftFrom(e)
	assert.False(t, d.IsNew())
	assert.Equal(t, "4500", d.Price)

	back, err := d.Entry(loadedCodes)
	require.NoError(t, err)
	assert.Equal(t, e, back)
}
