// Package memory is an in-process ledger.Repository for local runs and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

// Expense is the type code counted by SumExpenditure.
const Expense = "EXP"

var (
	DefaultTypeCodes = []ledger.ReferenceCode{
		{No: 1, Code: Expense, Name: "Expense"},
		{No: 2, Code: "INC", Name: "Income"},
	}

	DefaultPaymentCodes = []ledger.ReferenceCode{
		{No: 3, Code: "CC01", Name: "Credit card"},
		{No: 4, Code: "CC02", Name: "Check card"},
		{No: 5, Code: "CA01", Name: "Cash"},
	}
)

type Store struct {
	mu       sync.Mutex
	nextNo   int64
	entries  map[int64]ledger.Entry
	types    []ledger.ReferenceCode
	payments []ledger.ReferenceCode
}

func New(types, payments []ledger.ReferenceCode) *Store {
	return &Store{
		nextNo:   1,
		entries:  make(map[int64]ledger.Entry),
		types:    slices.Clone(types),
		payments: slices.Clone(payments),
	}
}

// NewDefault is a store seeded with the default reference codes.
func NewDefault() *Store {
	return New(DefaultTypeCodes, DefaultPaymentCodes)
}

func (s *Store) CreateEntry(_ context.Context, e *ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.No = s.nextNo
	s.nextNo++
	s.entries[e.No] = *e

	return nil
}

func (s *Store) GetEntry(_ context.Context, no int64) (*ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[no]
	if !ok {
		return nil, ledger.ErrNotFound
	}

	return &e, nil
}

func (s *Store) UpdateEntry(_ context.Context, e *ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e.No]; !ok {
		return ledger.ErrNotFound
	}

	s.entries[e.No] = *e

	return nil
}

func (s *Store) DeleteEntry(_ context.Context, no int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[no]; !ok {
		return ledger.ErrNotFound
	}

	delete(s.entries, no)

	return nil
}

// ListEntries matches the title as a case-insensitive substring and orders by
// date, then number.
func (s *Store) ListEntries(_ context.Context, q ledger.QueryParams) ([]ledger.Entry, error) {
	start, end, err := bounds(q.StartDt, q.EndDt)
	if err != nil {
		return nil, err
	}

	title := strings.ToLower(q.Title)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []ledger.Entry{}

	for _, e := range s.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}

		if title != "" && !strings.Contains(strings.ToLower(e.Title), title) {
			continue
		}

		if q.TypeCode != "" && e.TypeCode != q.TypeCode {
			continue
		}

		if q.PaymentCode != "" && e.PaymentCode != q.PaymentCode {
			continue
		}

		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b ledger.Entry) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}

		return cmp.Compare(a.No, b.No)
	})

	return out, nil
}

func (s *Store) ListCodes(_ context.Context, group ledger.CodeGroup) ([]ledger.ReferenceCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch group {
	case ledger.GroupType:
		return slices.Clone(s.types), nil
	case ledger.GroupPayment:
		return slices.Clone(s.payments), nil
	}

	return nil, &ledger.ValidationError{Field: "group", Message: "unknown code group " + string(group)}
}

// SumExpenditure totals expense entries per title, largest first.
func (s *Store) SumExpenditure(_ context.Context, start, end time.Time) ([]ledger.Expenditure, error) {
	start, end = ledger.Day(start), ledger.Day(end)

	s.mu.Lock()
	defer s.mu.Unlock()

	totals := map[string]int64{}

	for _, e := range s.entries {
		if e.TypeCode != Expense || e.Date.Before(start) || e.Date.After(end) {
			continue
		}

		totals[e.Title] += e.Price
	}

	out := make([]ledger.Expenditure, 0, len(totals))
	for title, price := range totals {
		out = append(out, ledger.Expenditure{Title: title, Price: price, Start: start, End: end})
	}

	slices.SortFunc(out, func(a, b ledger.Expenditure) int {
		if c := cmp.Compare(b.Price, a.Price); c != 0 {
			return c
		}

		return strings.Compare(a.Title, b.Title)
	})

	return out, nil
}

func bounds(startDt, endDt string) (time.Time, time.Time, error) {
	start, err := ledger.ParseDay(startDt)
	if err != nil {
		return time.Time{}, time.Time{}, &ledger.ValidationError{Field: "startDt", Message: "startDt must be YYYY-MM-DD"}
	}

	end, err := ledger.ParseDay(endDt)
	if err != nil {
		return time.Time{}, time.Time{}, &ledger.ValidationError{Field: "endDt", Message: "endDt must be YYYY-MM-DD"}
	}

	return start, end, nil
}
