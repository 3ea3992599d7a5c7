// Package export writes ledger entries to CSV files the importer reads back.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

var header = []string{"spendoDate", "spendoTitle", "spendoPrice", "spendoType", "spendoCodeType", "spendoContent"}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Lister is satisfied by *ledger.Service.
type Lister interface {
	List(ctx context.Context, q ledger.QueryParams) ([]ledger.Entry, error)
}

// Summary totals the exported entries per type code.
type Summary struct {
	Count  int
	Totals map[string]int64
}

// String renders the totals in type code order, e.g. "3 entries | EXP 16,500 | INC 1,000".
func (s Summary) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d entries", s.Count)

	codes := make([]string, 0, len(s.Totals))
	for code := range s.Totals {
		codes = append(codes, code)
	}

	slices.Sort(codes)

	for _, code := range codes {
		fmt.Fprintf(&sb, " | %s %s", code, ledger.FormatPrice(s.Totals[code]))
	}

	return sb.String()
}

type Service struct {
	entries Lister
}

func NewService(entries Lister) *Service {
	return &Service{entries: entries}
}

// Export writes every entry matching q to w as UTF-8 CSV with a BOM.
func (s *Service) Export(ctx context.Context, q ledger.QueryParams, w io.Writer) (*Summary, error) {
	entries, err := s.entries.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	if _, err := w.Write(bom); err != nil {
		return nil, fmt.Errorf("writing bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	summary := &Summary{Totals: map[string]int64{}}

	for _, e := range entries {
		record := []string{
			ledger.FormatDay(e.Date),
			e.Title,
			strconv.FormatInt(e.Price, 10),
			e.TypeCode,
			e.PaymentCode,
			e.Content,
		}

		if err := cw.Write(record); err != nil {
			return nil, fmt.Errorf("writing entry %d: %w", e.No, err)
		}

		summary.Count++
		summary.Totals[e.TypeCode] += e.Price
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return summary, nil
}

// ExportToDir writes the entries matching q to a file in outputDir named
// after the date range, and returns its path.
func (s *Service) ExportToDir(ctx context.Context, q ledger.QueryParams, outputDir string) (string, *Summary, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, Filename(q))

	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	summary, err := s.Export(ctx, q, f)
	if err != nil {
		return "", nil, err
	}

	return path, summary, nil
}

// Filename is spendo_YYYYMMDD_YYYYMMDD.csv for the query's date range.
func Filename(q ledger.QueryParams) string {
	compact := func(s string) string {
		return strings.ReplaceAll(s, "-", "")
	}

	return fmt.Sprintf("spendo_%s_%s.csv", compact(q.StartDt), compact(q.EndDt))
}
