package ledger

import (
	"net/url"
	"time"
)

// All is the selector value meaning "no filter on this field".
const All = "ALL"

// FilterCriteria is the raw filter state of a search form.
type FilterCriteria struct {
	Start       time.Time
	End         time.Time
	Title       string
	TypeCode    string
	PaymentCode string
}

// DefaultCriteria filters on today with every selector set to All.
func DefaultCriteria(now time.Time) FilterCriteria {
	today := Day(now)

	return FilterCriteria{
		Start:       today,
		End:         today,
		TypeCode:    All,
		PaymentCode: All,
	}
}

func (c FilterCriteria) Validate() error {
	if c.Start.IsZero() {
		return invalid(FieldStart, "start date is required")
	}

	if c.End.IsZero() {
		return invalid(FieldEnd, "end date is required")
	}

	if Day(c.End).Before(Day(c.Start)) {
		return invalid(FieldEnd, "end date is before start date")
	}

	return nil
}

// QueryParams is the canonical list request. Empty fields are left out of the
// request entirely. The struct is comparable so it can tag in-flight reads.
type QueryParams struct {
	StartDt     string
	EndDt       string
	Title       string
	TypeCode    string
	PaymentCode string
}

// BuildQuery maps filter criteria to the list request. All selectors are
// dropped, an empty title means no title filter, everything else passes
// through as given.
func BuildQuery(c FilterCriteria) QueryParams {
	q := QueryParams{
		StartDt: FormatDay(c.Start),
		EndDt:   FormatDay(c.End),
		Title:   c.Title,
	}

	if c.TypeCode != All {
		q.TypeCode = c.TypeCode
	}

	if c.PaymentCode != All {
		q.PaymentCode = c.PaymentCode
	}

	return q
}

// DayQuery is the request for every entry on a single day.
func DayQuery(day time.Time) QueryParams {
	return QueryParams{
		StartDt: FormatDay(day),
		EndDt:   FormatDay(day),
	}
}

// Values encodes the request as URL query parameters.
func (q QueryParams) Values() url.Values {
	v := url.Values{}
	v.Set("startDt", q.StartDt)
	v.Set("endDt", q.EndDt)

	if q.Title != "" {
		v.Set("spendoTitle", q.Title)
	}

	if q.TypeCode != "" {
		v.Set("spendoType", q.TypeCode)
	}

	if q.PaymentCode != "" {
		v.Set("spendoCodeType", q.PaymentCode)
	}

	return v
}

// ParseQuery is the inverse of Values, used by the backend.
func ParseQuery(v url.Values) (QueryParams, error) {
	q := QueryParams{
		StartDt:     v.Get("startDt"),
		EndDt:       v.Get("endDt"),
		Title:       v.Get("spendoTitle"),
		TypeCode:    v.Get("spendoType"),
		PaymentCode: v.Get("spendoCodeType"),
	}

	if _, err := ParseDay(q.StartDt); err != nil {
		return QueryParams{}, invalid(FieldStart, "startDt must be YYYY-MM-DD")
	}

	if _, err := ParseDay(q.EndDt); err != nil {
		return QueryParams{}, invalid(FieldEnd, "endDt must be YYYY-MM-DD")
	}

	return q, nil
}
