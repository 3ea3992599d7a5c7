package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/http/respond"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
	"github.com/MrJamesThe3rd/spendo/internal/ledger/wire"
)

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{name: "Validation", err: &ledger.ValidationError{Field: "spendoTitle", Message: "is required"}, wantCode: http.StatusBadRequest, wantStatus: "BAD_REQUEST"},
		{name: "NotFound", err: ledger.ErrNotFound, wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "Other", err: errors.New("db down"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respond.Error(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantCode, w.Code)

			var env wire.Envelope[json.RawMessage]
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.wantStatus, env.Status)
			assert.NotContains(t, env.Message, "db down")
		})
	}
}

func TestStruct(t *testing.T) {
	v := respond.NewValidator()

	err := respond.Struct(v, wire.Entry{Date: "2024-05-10", Title: "Coffee", Price: 0, Type: "EXP", CodeType: "CC01"})

	var vErr *ledger.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "spendoPrice", vErr.Field)

	err = respond.Struct(v, wire.Entry{Date: "10/05/2024", Title: "Coffee", Price: 1, Type: "EXP", CodeType: "CC01"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "spendoDate", vErr.Field)

	assert.NoError(t, respond.Struct(v, wire.Entry{Date: "2024-05-10", Title: "Coffee", Price: 1, Type: "EXP", CodeType: "CC01"}))
}
