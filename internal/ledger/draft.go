package ledger

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Field names a staged input of a draft or a filter form.
type Field string

const (
	FieldDate    Field = "date"
	FieldTitle   Field = "title"
	FieldContent Field = "content"
	FieldPrice   Field = "price"
	FieldType    Field = "type"
	FieldPayment Field = "payment"
	FieldStart   Field = "start"
	FieldEnd     Field = "end"
)

// Draft is an unsaved copy of an entry's fields, kept as the user typed them.
// No is zero for a draft that will be created rather than updated.
type Draft struct {
	No          int64
	Date        string
	Title       string
	Content     string
	Price       string
	TypeCode    string
	PaymentCode string
}

// DraftFrom stages an existing entry for editing.
func DraftFrom(e Entry) Draft {
	return Draft{
		No:          e.No,
		Date:        FormatDay(e.Date),
		Title:       e.Title,
		Content:     e.Content,
		Price:       decimal.NewFromInt(e.Price).String(),
		TypeCode:    e.TypeCode,
		PaymentCode: e.PaymentCode,
	}
}

// NewDraft is a blank creation draft for day, preselecting the first code of
// each enumeration.
func NewDraft(day time.Time, codes Codes) Draft {
	d := Draft{Date: FormatDay(day)}

	if codes == nil {
		return d
	}

	if types := codes.TypeCodes(); len(types) > 0 {
		d.TypeCode = types[0].Code
	}

	if payments := codes.PaymentCodes(); len(payments) > 0 {
		d.PaymentCode = payments[0].Code
	}

	return d
}

// IsNew reports whether saving the draft creates an entry.
func (d Draft) IsNew() bool {
	return d.No == 0
}

// Get returns the staged value of f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldDate:
		return d.Date
	case FieldTitle:
		return d.Title
	case FieldContent:
		return d.Content
	case FieldPrice:
		return d.Price
	case FieldType:
		return d.TypeCode
	case FieldPayment:
		return d.PaymentCode
	}

	return ""
}

// Set stages value for f. Values are not checked until Entry is called.
func (d *Draft) Set(f Field, value string) error {
	switch f {
	case FieldDate:
		d.Date = value
	case FieldTitle:
		d.Title = value
	case FieldContent:
		d.Content = value
	case FieldPrice:
		d.Price = value
	case FieldType:
		d.TypeCode = value
	case FieldPayment:
		d.PaymentCode = value
	default:
		return invalid(f, "unknown field")
	}

	return nil
}

// Entry validates the draft against the loaded codes and converts it to the
// record that is submitted.
func (d Draft) Entry(codes Codes) (Entry, error) {
	if strings.TrimSpace(d.Date) == "" {
		return Entry{}, invalid(FieldDate, "date is required")
	}

	day, err := ParseDay(strings.TrimSpace(d.Date))
	if err != nil {
		return Entry{}, invalid(FieldDate, "date must be YYYY-MM-DD")
	}

	if strings.TrimSpace(d.Title) == "" {
		return Entry{}, invalid(FieldTitle, "title is required")
	}

	price, err := ParsePrice(d.Price)
	if err != nil {
		return Entry{}, err
	}

	if d.TypeCode == "" || d.TypeCode == All {
		return Entry{}, invalid(FieldType, "select a transaction type")
	}

	if d.PaymentCode == "" || d.PaymentCode == All {
		return Entry{}, invalid(FieldPayment, "select a payment type")
	}

	if codes == nil || !codes.IsReady() {
		return Entry{}, &ValidationError{Message: "reference codes are not loaded"}
	}

	if !hasCode(codes.TypeCodes(), d.TypeCode) {
		return Entry{}, invalid(FieldType, "unknown transaction type "+d.TypeCode)
	}

	if !hasCode(codes.PaymentCodes(), d.PaymentCode) {
		return Entry{}, invalid(FieldPayment, "unknown payment type "+d.PaymentCode)
	}

	return Entry{
		No:          d.No,
		Date:        Day(day),
		Title:       strings.TrimSpace(d.Title),
		Content:     d.Content,
		Price:       price,
		TypeCode:    d.TypeCode,
		PaymentCode: d.PaymentCode,
	}, nil
}

// ParsePrice parses a positive whole amount in the smallest currency unit.
// Thousands separators and surrounding spaces are accepted: "4,500" -> 4500.
func ParsePrice(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	if clean == "" {
		return 0, invalid(FieldPrice, "price is required")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, invalid(FieldPrice, "price must be a number")
	}

	if !d.IsInteger() {
		return 0, invalid(FieldPrice, "price must be a whole amount")
	}

	if !d.IsPositive() {
		return 0, invalid(FieldPrice, "price must be greater than zero")
	}

	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, invalid(FieldPrice, "price is too large")
	}

	return d.IntPart(), nil
}
