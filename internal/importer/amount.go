package importer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errNoAmount = errors.New("empty amount")

// parseAmount parses an amount in the smallest currency unit, accepting
// thousands separators, a currency suffix and parentheses for negatives:
// "1,234" -> 1234, "-4,500원" -> -4500, "(12,000)" -> -12000.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSuffix(clean, "원")
	clean = strings.TrimPrefix(clean, "₩")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	if clean == "" {
		return decimal.Zero, errNoAmount
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, err
	}

	if negative {
		d = d.Neg()
	}

	return d, nil
}
