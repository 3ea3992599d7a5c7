package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

func TestTimeframeToDateRange(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		tf         Timeframe
		start, end string
	}{
		{TimeframeToday, "2024-01-10", "2024-01-10"},
		{TimeframeThisWeek, "2024-01-08", "2024-01-10"},
		{TimeframeLastWeek, "2024-01-01", "2024-01-07"},
		{TimeframeThisMonth, "2024-01-01", "2024-01-10"},
		{TimeframeLastMonth, "2023-12-01", "2023-12-31"},
		{TimeframeThisYear, "2024-01-01", "2024-01-10"},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			start, end := timeframeToDateRange(tt.tf, now)

			assert.Equal(t, tt.start, ledger.FormatDay(start))
			assert.Equal(t, tt.end, ledger.FormatDay(end))
		})
	}
}

func TestTimeframeToDateRange_Sunday(t *testing.T) {
	sunday := time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC)

	start, end := timeframeToDateRange(TimeframeThisWeek, sunday)

	assert.Equal(t, "2024-01-08", ledger.FormatDay(start))
	assert.Equal(t, "2024-01-14", ledger.FormatDay(end))
}

func TestCustomRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantField  string
	}{
		{name: "single day", start: "2024-05-10", end: "2024-05-10"},
		{name: "trimmed", start: " 2024-05-01", end: "2024-05-31 "},
		{name: "bad start", start: "05/01/2024", end: "2024-05-31", wantField: "start"},
		{name: "bad end", start: "2024-05-01", end: "", wantField: "end"},
		{name: "reversed", start: "2024-05-31", end: "2024-05-01", wantField: "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := customRange(tt.start, tt.end)

			if tt.wantField != "" {
				var vErr *ledger.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)

				return
			}

			require.NoError(t, err)
			assert.False(t, end.Before(start))
		})
	}
}

func TestTimeframePicker_Reset(t *testing.T) {
	p := NewTimeframePicker()
	assert.True(t, p.IsSelecting())
	assert.Contains(t, p.View(), "Enter to select")

	p.custom = true
	assert.False(t, p.IsSelecting())

	p.Reset()
	assert.True(t, p.IsSelecting())
	assert.Equal(t, "Unknown", Timeframe(42).String())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "4,500원", FormatPrice(4500, "원"))
	assert.Equal(t, "1,234,567", FormatPrice(1234567, ""))
}
