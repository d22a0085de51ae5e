package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/daftar/internal/finance"
)

// Store reads income and expense records. It never writes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, amount, description, type, category, date.
func scanRecord(s scanner) (*finance.Record, error) {
	var r finance.Record

	var kind string

	var description, category sql.NullString

	if err := s.Scan(&r.ID, &r.Amount, &description, &kind, &category, &r.Date); err != nil {
		return nil, err
	}

	r.Kind = finance.Kind(kind)
	r.Description = description.String
	r.Category = category.String

	return &r, nil
}

func listQuery(filter finance.ListFilter) (string, []any) {
	query := `SELECT f.id, f.amount, f.description, f.type, f.category, f.date
		FROM finances f
		WHERE f.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND f.type = $%d", argIdx)

		args = append(args, string(*filter.Kind))
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND f.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND f.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY f.date ASC"

	return query, args
}

func (s *Store) ListRecords(ctx context.Context, filter finance.ListFilter) ([]*finance.Record, error) {
	query, args := listQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing finance records: %w", err)
	}
	defer rows.Close()

	var records []*finance.Record

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning finance record: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating finance rows: %w", err)
	}

	return records, nil
}
