package wire_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger/wire"
)

func TestStatusText(t *testing.T) {
	tests := map[int]string{
		http.StatusOK:                  "OK",
		http.StatusBadRequest:          "BAD_REQUEST",
		http.StatusNotFound:            "NOT_FOUND",
		http.StatusUnprocessableEntity: "UNPROCESSABLE_ENTITY",
		http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
		http.StatusMultiStatus:         "MULTI_STATUS",
		799:                            "UNKNOWN",
	}

	for code, want := range tests {
		assert.Equal(t, want, wire.StatusText(code))
	}
}

func TestEntry_JSON(t *testing.T) {
	body := `{"spendoNo":7,"spendoDate":"2024-05-10","spendoTitle":"Coffee","spendoPrice":4500,"spendoContent":"","spendoType":"EXP","spendoCodeType":"CC01"}`

	var env wire.Envelope[wire.Entry]
	require.NoError(t, json.Unmarshal([]byte(`{"data":`+body+`,"message":"","status":"OK"}`), &env))

	e, err := env.Data.ToEntry()
	require.NoError(t, err)
	assert.Equal(t, int64(7), e.No)
	assert.Equal(t, "CC01", e.PaymentCode)
	assert.Equal(t, "2024-05-10", e.Date.Format("2006-01-02"))

	out, err := json.Marshal(wire.FromEntry(e))
	require.NoError(t, err)
	assert.JSONEq(t, body, string(out))
}

func TestEntry_ToEntry_BadDate(t *testing.T) {
	_, err := wire.Entry{Date: "2024/05/10"}.ToEntry()
	assert.Error(t, err)
}
