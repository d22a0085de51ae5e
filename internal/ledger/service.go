// Package ledger fetches debt entries and finance records and runs them
// through reconciliation, querying and statistics.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/finance"
	"github.com/MrJamesThe3rd/daftar/internal/query"
	"github.com/MrJamesThe3rd/daftar/internal/reconcile"
	"github.com/MrJamesThe3rd/daftar/internal/stats"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type DebtRepository interface {
	ListEntries(ctx context.Context, filter debt.ListFilter) ([]*debt.Entry, error)
}

type FinanceRepository interface {
	ListRecords(ctx context.Context, filter finance.ListFilter) ([]*finance.Record, error)
}

type Service struct {
	debts         DebtRepository
	finance       FinanceRepository
	takenBranchID int
}

// NewService builds a service. Entries booked on takenBranchID are debts the
// business took; all other branches hold debts it gave.
func NewService(debts DebtRepository, finance FinanceRepository, takenBranchID int) *Service {
	return &Service{
		debts:         debts,
		finance:       finance,
		takenBranchID: takenBranchID,
	}
}

type QueryResult struct {
	Entries []*debt.Entry
	Stats   stats.Summary
}

// Debtors reconciles every entry of the given type against recorded income.
func (s *Service) Debtors(ctx context.Context, debtType debt.Type) ([]*reconcile.Summary, error) {
	entries, err := s.debts.ListEntries(ctx, debt.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	income := finance.KindIncome

	records, err := s.finance.ListRecords(ctx, finance.ListFilter{Kind: &income})
	if err != nil {
		return nil, fmt.Errorf("list finance records: %w", err)
	}

	summaries, err := reconcile.Reconcile(entries, records, s.partition(debtType))
	if err != nil {
		return nil, fmt.Errorf("reconcile debtors: %w", err)
	}

	return summaries, nil
}

// Query runs d against the stored entries. Branch, debtor and unreturned
// narrowing is passed down to the repository, but the full pipeline still runs
// locally so a repository that ignores the hints gives the same answer.
func (s *Service) Query(ctx context.Context, d query.Descriptor) (*QueryResult, error) {
	d.TakenBranchID = s.takenBranchID

	filter := debt.ListFilter{
		BranchID:       d.BranchID,
		DebtorName:     d.DebtorName,
		UnreturnedOnly: d.Status == query.StatusUnreturned,
	}

	entries, err := s.debts.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	matched := query.Apply(entries, d)

	slog.DebugContext(ctx, "query applied", "fetched", len(entries), "matched", len(matched))

	return &QueryResult{
		Entries: matched,
		Stats:   stats.Aggregate(matched),
	}, nil
}

// Suggest returns debtors whose name contains partial. A blank partial returns
// nothing without touching the repositories.
func (s *Service) Suggest(ctx context.Context, partial string) ([]*reconcile.Summary, error) {
	if strings.TrimSpace(partial) == "" {
		return nil, nil
	}

	summaries, err := s.Debtors(ctx, debt.TypeAll)
	if err != nil {
		return nil, err
	}

	return reconcile.Suggest(summaries, partial), nil
}

func (s *Service) partition(t debt.Type) debt.Partition {
	return debt.Partition{Type: t, TakenBranchID: s.takenBranchID}
}
