package ledger

import (
	"strconv"
	"strings"
	"time"
)

// Entry is a single income or expense record.
type Entry struct {
	No          int64 // Assigned by the server, zero until created
	Date        time.Time
	Title       string
	Content     string
	Price       int64 // Smallest currency unit
	TypeCode    string
	PaymentCode string
}

// ReferenceCode is one value of a backend-defined enumeration.
type ReferenceCode struct {
	No   int64
	Code string
	Name string
}

// CodeGroup names one of the two reference code enumerations.
type CodeGroup string

const (
	GroupType    CodeGroup = "type"
	GroupPayment CodeGroup = "payment"
)

// Expenditure is the expense total of one title over a date range.
type Expenditure struct {
	Title string
	Price int64
	Start time.Time
	End   time.Time
}

// Codes exposes the loaded reference codes to anything that validates or
// renders against them.
type Codes interface {
	IsReady() bool
	TypeCodes() []ReferenceCode
	PaymentCodes() []ReferenceCode
}

// StaticCodes is a fixed set of codes that is always ready.
type StaticCodes struct {
	Types    []ReferenceCode
	Payments []ReferenceCode
}

func (c StaticCodes) IsReady() bool                 { return true }
func (c StaticCodes) TypeCodes() []ReferenceCode    { return c.Types }
func (c StaticCodes) PaymentCodes() []ReferenceCode { return c.Payments }

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// FormatDay formats t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(time.DateOnly)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

func hasCode(codes []ReferenceCode, code string) bool {
	for _, c := range codes {
		if c.Code == code {
			return true
		}
	}

	return false
}

// FormatPrice renders a price with thousands separators: 1234567 -> "1,234,567".
func FormatPrice(price int64) string {
	s := strconv.FormatInt(price, 10)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var sb strings.Builder

	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(r)
	}

	return sign + sb.String()
}
