package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

func TestRenderBars(t *testing.T) {
	out := renderBars([]ledger.Expenditure{
		{Title: "Rent", Price: 600000},
		{Title: "Coffee", Price: 4500},
	}, "원")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "Rent")
	assert.Contains(t, lines[0], "600,000원")
	assert.Equal(t, barWidth, strings.Count(lines[0], "█"))

	assert.Contains(t, lines[1], "Coffee")
	assert.Equal(t, 1, strings.Count(lines[1], "█"))

	assert.Equal(t, "Total: 604,500원", lines[3])
}
