package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Gateway is the remote ledger. Every call is one round trip with no retry.
// Implementations report ErrNotFound, *ValidationError or *NetworkError.
//
//go:generate mockgen -source=service.go -destination=gateway_mock.go -package=ledger
type Gateway interface {
	Create(ctx context.Context, e Entry) (int64, error)
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, no int64) error
	FetchByID(ctx context.Context, no int64) (*Entry, error)
	FetchByQuery(ctx context.Context, q QueryParams) ([]Entry, error)

	TypeCodes(ctx context.Context) ([]ReferenceCode, error)
	PaymentCodes(ctx context.Context) ([]ReferenceCode, error)
	Expenditure(ctx context.Context, start, end time.Time) ([]Expenditure, error)
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) List(ctx context.Context, q QueryParams) ([]Entry, error) {
	entries, err := s.gw.FetchByQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	return entries, nil
}

func (s *Service) Get(ctx context.Context, no int64) (*Entry, error) {
	if no <= 0 {
		return nil, invalid("spendoNo", "entry number must be positive")
	}

	e, err := s.gw.FetchByID(ctx, no)
	if err != nil {
		return nil, fmt.Errorf("fetching entry %d: %w", no, err)
	}

	return e, nil
}

// Save validates d against codes and creates or updates the entry. A draft
// that fails validation never reaches the gateway. The returned number is the
// entry's identifier.
func (s *Service) Save(ctx context.Context, d Draft, codes Codes) (int64, error) {
	e, err := d.Entry(codes)
	if err != nil {
		return 0, err
	}

	if d.IsNew() {
		no, err := s.gw.Create(ctx, e)
		if err != nil {
			return 0, fmt.Errorf("creating entry: %w", err)
		}

		slog.Info("entry created", "no", no, "date", FormatDay(e.Date))

		return no, nil
	}

	if err := s.gw.Update(ctx, e); err != nil {
		return 0, fmt.Errorf("updating entry %d: %w", e.No, err)
	}

	slog.Info("entry updated", "no", e.No)

	return e.No, nil
}

// Delete removes the entry. An entry that is already gone counts as deleted.
func (s *Service) Delete(ctx context.Context, no int64) error {
	if no <= 0 {
		return invalid("spendoNo", "entry number must be positive")
	}

	err := s.gw.Delete(ctx, no)
	if errors.Is(err, ErrNotFound) {
		slog.Info("entry already deleted", "no", no)
		return nil
	}

	if err != nil {
		return fmt.Errorf("deleting entry %d: %w", no, err)
	}

	slog.Info("entry deleted", "no", no)

	return nil
}

func (s *Service) TypeCodes(ctx context.Context) ([]ReferenceCode, error) {
	codes, err := s.gw.TypeCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading type codes: %w", err)
	}

	return codes, nil
}

func (s *Service) PaymentCodes(ctx context.Context) ([]ReferenceCode, error) {
	codes, err := s.gw.PaymentCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading payment codes: %w", err)
	}

	return codes, nil
}

func (s *Service) Expenditure(ctx context.Context, start, end time.Time) ([]Expenditure, error) {
	if err := (FilterCriteria{Start: start, End: end}).Validate(); err != nil {
		return nil, err
	}

	stats, err := s.gw.Expenditure(ctx, Day(start), Day(end))
	if err != nil {
		return nil, fmt.Errorf("loading expenditure: %w", err)
	}

	return stats, nil
}

// RowError is a draft of a batch that failed validation.
type RowError struct {
	Row int
	Err error
}

type BatchResult struct {
	Created []int64
	Invalid []RowError
}

// CreateBatch validates every draft first and creates nothing if any is
// invalid. Otherwise drafts are created in order, stopping at the first
// failure; entries created before the failure are reported in the result.
func (s *Service) CreateBatch(ctx context.Context, drafts []Draft, codes Codes) (*BatchResult, error) {
	result := &BatchResult{}
	entries := make([]Entry, 0, len(drafts))

	for i, d := range drafts {
		d.No = 0

		e, err := d.Entry(codes)
		if err != nil {
			result.Invalid = append(result.Invalid, RowError{Row: i + 1, Err: err})
			continue
		}

		entries = append(entries, e)
	}

	if len(result.Invalid) > 0 {
		return result, nil
	}

	for _, e := range entries {
		no, err := s.gw.Create(ctx, e)
		if err != nil {
			return result, fmt.Errorf("creating entry %q: %w", e.Title, err)
		}

		result.Created = append(result.Created, no)
	}

	return result, nil
}
