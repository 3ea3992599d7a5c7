// Package wire holds the JSON shapes of the ledger REST surface, shared by the
// HTTP client and the development backend.
package wire

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

// Envelope wraps every response body.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// StatusText is the envelope status for an HTTP code: "OK", "BAD_REQUEST", ...
func StatusText(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "UNKNOWN"
	}

	text = strings.ReplaceAll(text, "-", " ")

	return strings.ToUpper(strings.Join(strings.Fields(text), "_"))
}

type Entry struct {
	No       int64  `json:"spendoNo,omitempty"`
	Date     string `json:"spendoDate" validate:"required,datetime=2006-01-02"`
	Title    string `json:"spendoTitle" validate:"required,max=100"`
	Price    int64  `json:"spendoPrice" validate:"gt=0"`
	Content  string `json:"spendoContent" validate:"max=1000"`
	Type     string `json:"spendoType" validate:"required"`
	CodeType string `json:"spendoCodeType" validate:"required"`
}

func FromEntry(e ledger.Entry) Entry {
	return Entry{
		No:       e.No,
		Date:     ledger.FormatDay(e.Date),
		Title:    e.Title,
		Price:    e.Price,
		Content:  e.Content,
		Type:     e.TypeCode,
		CodeType: e.PaymentCode,
	}
}

func FromEntries(entries []ledger.Entry) []Entry {
	resp := make([]Entry, len(entries))
	for i, e := range entries {
		resp[i] = FromEntry(e)
	}

	return resp
}

func (e Entry) ToEntry() (ledger.Entry, error) {
	date, err := ledger.ParseDay(e.Date)
	if err != nil {
		return ledger.Entry{}, &ledger.ValidationError{Field: "spendoDate", Message: "date must be YYYY-MM-DD"}
	}

	return ledger.Entry{
		No:          e.No,
		Date:        date,
		Title:       e.Title,
		Content:     e.Content,
		Price:       e.Price,
		TypeCode:    e.Type,
		PaymentCode: e.CodeType,
	}, nil
}

type Code struct {
	No   int64  `json:"commonNo"`
	Code string `json:"commonCode"`
	Name string `json:"commonName"`
}

func FromCodes(codes []ledger.ReferenceCode) []Code {
	resp := make([]Code, len(codes))
	for i, c := range codes {
		resp[i] = Code{No: c.No, Code: c.Code, Name: c.Name}
	}

	return resp
}

func ToCodes(codes []Code) []ledger.ReferenceCode {
	out := make([]ledger.ReferenceCode, len(codes))
	for i, c := range codes {
		out[i] = ledger.ReferenceCode{No: c.No, Code: c.Code, Name: c.Name}
	}

	return out
}

type Expenditure struct {
	Title   string `json:"spendoTitle"`
	Price   int64  `json:"expenditurePrice"`
	StartDt string `json:"startDt"`
	EndDt   string `json:"endDt"`
}

func FromExpenditures(stats []ledger.Expenditure) []Expenditure {
	resp := make([]Expenditure, len(stats))
	for i, s := range stats {
		resp[i] = Expenditure{
			Title:   s.Title,
			Price:   s.Price,
			StartDt: ledger.FormatDay(s.Start),
			EndDt:   ledger.FormatDay(s.End),
		}
	}

	return resp
}

func ToExpenditures(stats []Expenditure) []ledger.Expenditure {
	out := make([]ledger.Expenditure, len(stats))
	for i, s := range stats {
		// Unparseable bounds are left zero; only Title and Price are rendered.
		start, _ := ledger.ParseDay(s.StartDt)
		end, _ := ledger.ParseDay(s.EndDt)

		out[i] = ledger.Expenditure{Title: s.Title, Price: s.Price, Start: start, End: end}
	}

	return out
}

// FieldError is the data of a validation rejection.
type FieldError struct {
	Field string `json:"field,omitempty"`
}
