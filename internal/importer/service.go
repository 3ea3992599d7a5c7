package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

// Type codes signed statement rows are booked under when the code table has
// them. Otherwise both fall back to the first type code.
const (
	ExpenseCode = "EXP"
	IncomeCode  = "INC"
)

// OptionsFor derives parse options from the loaded codes. Layouts without a
// payment column get the first payment code.
func OptionsFor(codes ledger.Codes) Options {
	var opts Options

	types := codes.TypeCodes()
	if len(types) > 0 {
		opts.ExpenseType = types[0].Code
		opts.IncomeType = types[0].Code
	}

	if payments := codes.PaymentCodes(); len(payments) > 0 {
		opts.DefaultPayment = payments[0].Code
	}

	for _, c := range types {
		switch c.Code {
		case ExpenseCode:
			opts.ExpenseType = c.Code
		case IncomeCode:
			opts.IncomeType = c.Code
		}
	}

	return opts
}

// Creator is satisfied by *ledger.Service.
type Creator interface {
	CreateBatch(ctx context.Context, drafts []ledger.Draft, codes ledger.Codes) (*ledger.BatchResult, error)
}

type Service struct {
	parser  *Parser
	creator Creator
}

func NewService(creator Creator) *Service {
	return &Service{
		parser:  NewParser(),
		creator: creator,
	}
}

// Preview parses r without creating anything.
func (s *Service) Preview(r io.Reader, opts Options) (*Parsed, error) {
	parsed, err := s.parser.Parse(r, opts)
	if err != nil {
		return nil, err
	}

	slog.Info("parsed import file",
		"profile", parsed.Profile,
		"charset", parsed.Charset,
		"rows", len(parsed.Drafts),
	)

	return parsed, nil
}

// Import creates every parsed draft, or none if any row fails validation.
// Invalid rows are reported by their line in the source file.
func (s *Service) Import(ctx context.Context, parsed *Parsed, codes ledger.Codes) (*ledger.BatchResult, error) {
	if len(parsed.Drafts) == 0 {
		return &ledger.BatchResult{}, nil
	}

	res, err := s.creator.CreateBatch(ctx, parsed.Drafts, codes)
	if res != nil {
		for i := range res.Invalid {
			if row := res.Invalid[i].Row; row >= 1 && row <= len(parsed.Rows) {
				res.Invalid[i].Row = parsed.Rows[row-1]
			}
		}
	}

	if err != nil {
		return res, fmt.Errorf("importing entries: %w", err)
	}

	return res, nil
}
