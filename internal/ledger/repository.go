package ledger

import (
	"context"
	"time"
)

// Repository is the backend's persistence of entries and reference codes.
// GetEntry, UpdateEntry and DeleteEntry return ErrNotFound for a missing entry.
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, no int64) (*Entry, error)
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, no int64) error
	ListEntries(ctx context.Context, q QueryParams) ([]Entry, error)

	ListCodes(ctx context.Context, group CodeGroup) ([]ReferenceCode, error)
	SumExpenditure(ctx context.Context, start, end time.Time) ([]Expenditure, error)
}
