package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/reconcile"
)

// Store reads debt entries. It never writes.
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

// Expected column order matches selectEntryColumns. Missing date parts scan
// as zero and later fail Entry.Date.
func scanEntry(s scanner) (*debt.Entry, error) {
	var e debt.Entry

	var day, month, year sql.NullInt64

	var paid decimal.NullDecimal

	if err := s.Scan(
		&e.ID, &e.DebtorName, &e.Amount, &e.Products, &e.BranchID, &e.IsReturned,
		&day, &month, &year, &paid,
	); err != nil {
		return nil, err
	}

	e.Day, e.Month, e.Year = int(day.Int64), int(month.Int64), int(year.Int64)

	if paid.Valid {
		e.PaidAmount = &paid.Decimal
	}

	return &e, nil
}

const selectEntryColumns = `
	d.id, d.debtor_name, d.amount, d.products, d.branch_id, d.is_returned,
	d.day, d.month, d.year, d.paid_amount
`

func listQuery(filter debt.ListFilter) (string, []any) {
	query := `SELECT ` + selectEntryColumns + `
		FROM debts d
		WHERE d.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.BranchID != nil {
		query += fmt.Sprintf(" AND d.branch_id = $%d", argIdx)

		args = append(args, *filter.BranchID)
		argIdx++
	}

	if filter.DebtorName != nil {
		query += fmt.Sprintf(" AND LOWER(TRIM(d.debtor_name)) = $%d", argIdx)

		args = append(args, reconcile.Key(*filter.DebtorName))
		argIdx++
	}

	if filter.UnreturnedOnly {
		query += " AND d.is_returned = FALSE"
	}

	query += " ORDER BY d.year ASC, d.month ASC, d.day ASC, d.id ASC"

	return query, args
}

func (s *Store) ListEntries(ctx context.Context, filter debt.ListFilter) ([]*debt.Entry, error) {
	query, args := listQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var entries []*debt.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debt rows: %w", err)
	}

	return entries, nil
}
