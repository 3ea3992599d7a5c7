// Package store is the Postgres implementation of ledger.Repository.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/spendo/internal/ledger"
)

// ExpenseType is the type code counted by SumExpenditure.
const ExpenseType = "EXP"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry expects the columns of selectEntryColumns in order.
func scanEntry(s scanner) (*ledger.Entry, error) {
	var e ledger.Entry

	if err := s.Scan(&e.No, &e.Date, &e.Title, &e.Content, &e.Price, &e.TypeCode, &e.PaymentCode); err != nil {
		return nil, err
	}

	e.Date = ledger.Day(e.Date)

	return &e, nil
}

const selectEntryColumns = `no, date, title, content, price, type_code, payment_code`

func (s *Store) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO entries (date, title, content, price, type_code, payment_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING no
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Date,
		e.Title,
		e.Content,
		e.Price,
		e.TypeCode,
		e.PaymentCode,
	).Scan(&e.No)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, no int64) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries WHERE no = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, no))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		UPDATE entries
		SET date = $1, title = $2, content = $3, price = $4, type_code = $5, payment_code = $6, updated_at = NOW()
		WHERE no = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		e.Date,
		e.Title,
		e.Content,
		e.Price,
		e.TypeCode,
		e.PaymentCode,
		e.No,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}

	return affected(res)
}

func (s *Store) DeleteEntry(ctx context.Context, no int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE no = $1`, no)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, q ledger.QueryParams) ([]ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM entries WHERE date >= $1 AND date <= $2`
	args := []any{q.StartDt, q.EndDt}
	argIdx := 3

	if q.Title != "" {
		query += fmt.Sprintf(" AND title ILIKE '%%' || $%d || '%%'", argIdx)

		args = append(args, q.Title)
		argIdx++
	}

	if q.TypeCode != "" {
		query += fmt.Sprintf(" AND type_code = $%d", argIdx)

		args = append(args, q.TypeCode)
		argIdx++
	}

	if q.PaymentCode != "" {
		query += fmt.Sprintf(" AND payment_code = $%d", argIdx)

		args = append(args, q.PaymentCode)
	}

	query += " ORDER BY date ASC, no ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	entries := []ledger.Entry{}

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return entries, nil
}

func (s *Store) ListCodes(ctx context.Context, group ledger.CodeGroup) ([]ledger.ReferenceCode, error) {
	query := `
		SELECT no, code, name FROM reference_codes
		WHERE code_group = $1
		ORDER BY sort_order ASC, no ASC
	`

	rows, err := s.db.QueryContext(ctx, query, string(group))
	if err != nil {
		return nil, fmt.Errorf("listing %s codes: %w", group, err)
	}
	defer rows.Close()

	codes := []ledger.ReferenceCode{}

	for rows.Next() {
		var c ledger.ReferenceCode
		if err := rows.Scan(&c.No, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning code: %w", err)
		}

		codes = append(codes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating codes: %w", err)
	}

	return codes, nil
}

func (s *Store) SumExpenditure(ctx context.Context, start, end time.Time) ([]ledger.Expenditure, error) {
	query := `
		SELECT title, SUM(price) AS total FROM entries
		WHERE type_code = $1 AND date >= $2 AND date <= $3
		GROUP BY title
		ORDER BY total DESC, title ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ExpenseType, ledger.Day(start), ledger.Day(end))
	if err != nil {
		return nil, fmt.Errorf("summing expenditure: %w", err)
	}
	defer rows.Close()

	stats := []ledger.Expenditure{}

	for rows.Next() {
		st := ledger.Expenditure{Start: ledger.Day(start), End: ledger.Day(end)}
		if err := rows.Scan(&st.Title, &st.Price); err != nil {
			return nil, fmt.Errorf("scanning expenditure: %w", err)
		}

		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenditure: %w", err)
	}

	return stats, nil
}
