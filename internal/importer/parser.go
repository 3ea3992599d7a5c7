// Package importer turns CSV exports into entry drafts.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendo/internal/encoding"
	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

var ErrUnknownFormat = errors.New("no matching CSV format found")

// Options fill in what a layout does not carry.
type Options struct {
	Charset        string // empty detects it
	ExpenseType    string
	IncomeType     string
	DefaultPayment string
}

// Parsed is the outcome of reading one file.
type Parsed struct {
	Profile string
	Charset string
	Drafts  []ledger.Draft
	// Rows is the 1-based line of each draft in the source file.
	Rows []int
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes r, picks the first profile whose header is present, and
// converts every data row to a draft. Rows without a parseable date, such as
// footers, are skipped. Drafts are not validated.
func (p *Parser) Parse(r io.Reader, opts Options) (*Parsed, error) {
	utf8r, charset, err := encoding.NewReader(r, opts.Charset)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range []rune{',', ';', '\t'} {
		rows, err := readCSV(string(raw), comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		parsed := parseRows(profile, cols, rows[headerIdx+1:], headerIdx, opts)
		parsed.Charset = charset

		return parsed, nil
	}

	return nil, ErrUnknownFormat
}

func readCSV(s string, comma rune) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(s))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts drafts using the matched profile. headerRowNum is the
// 0-based index of the header in the source.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int, opts Options) *Parsed {
	parsed := &Parsed{Profile: p.Name}

	for i, row := range rows {
		date, ok := parseDate(p, row, cols[p.DateCol])
		if !ok {
			continue
		}

		price, typeCode, ok := parsePrice(p, cols, row, opts)
		if !ok {
			continue
		}

		d := ledger.Draft{
			Date:        ledger.FormatDay(date),
			Title:       cellValue(row, cols[p.TitleCol]),
			Price:       price,
			TypeCode:    typeCode,
			PaymentCode: opts.DefaultPayment,
		}

		if p.ContentCol != "" {
			if idx, ok := cols[p.ContentCol]; ok {
				d.Content = cellValue(row, idx)
			}
		}

		if p.PaymentCol != "" {
			d.PaymentCode = cellValue(row, cols[p.PaymentCol])
		}

		parsed.Drafts = append(parsed.Drafts, d)
		parsed.Rows = append(parsed.Rows, headerRowNum+i+2)
	}

	return parsed
}

func parseDate(p *Profile, row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parsePrice returns the unsigned price text and the type code of a row. A
// row with no amount at all is skipped; an unparseable amount is kept verbatim
// so validation reports it.
func parsePrice(p *Profile, cols colIndex, row []string, opts Options) (string, string, bool) {
	switch p.AmountMode {
	case amountTyped:
		return cellValue(row, cols[p.PriceCol]), cellValue(row, cols[p.TypeCol]), true
	case amountSigned:
		return signed(p, cellValue(row, cols[p.AmountCol]), opts)
	case amountSplit:
		if s := cellValue(row, cols[p.DebitCol]); s != "" && !isZero(s) {
			return unsigned(s), opts.ExpenseType, true
		}

		if s := cellValue(row, cols[p.CreditCol]); s != "" && !isZero(s) {
			return unsigned(s), opts.IncomeType, true
		}
	}

	return "", "", false
}

func signed(p *Profile, s string, opts Options) (string, string, bool) {
	d, err := parseAmount(s)
	if errors.Is(err, errNoAmount) {
		return "", "", false
	}

	if err != nil {
		return s, opts.ExpenseType, true
	}

	if d.IsZero() {
		return "", "", false
	}

	expense := d.IsNegative()
	if p.PositiveIsExpense {
		expense = !expense
	}

	if expense {
		return d.Abs().String(), opts.ExpenseType, true
	}

	return d.Abs().String(), opts.IncomeType, true
}

func unsigned(s string) string {
	d, err := parseAmount(s)
	if err != nil {
		return s
	}

	return d.Abs().String()
}

func isZero(s string) bool {
	d, err := parseAmount(s)
	return err == nil && d.IsZero()
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
