// Package reconcile folds debt entries and loosely attributed finance records
// into one summary per debtor.
package reconcile

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/finance"
)

var (
	ErrNilEntry  = errors.New("nil debt entry")
	ErrNilRecord = errors.New("nil finance record")
)

// Summary aggregates every entry and attributed payment of one debtor.
//
// Total always equals Returned + Unreturned and the sum of Entries amounts.
// Paid is the sum of attributed income records and Outstanding is
// Unreturned - Paid.
type Summary struct {
	Key         string
	Name        string
	Count       int
	Total       decimal.Decimal
	Returned    decimal.Decimal
	Unreturned  decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
	Entries     []*debt.Entry
	Payments    []*finance.Record
}

// Key normalizes a debtor name for grouping.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Reconcile groups the entries selected by p by normalized debtor name, then
// attributes income records to the debtors they name. Summaries come back
// ordered by Unreturned, largest first; ties keep encounter order.
//
// Neither input is modified. A nil slice is an empty collection and yields no
// summaries. A nil element in either slice is a caller bug and is reported as
// ErrNilEntry or ErrNilRecord.
func Reconcile(entries []*debt.Entry, records []*finance.Record, p debt.Partition) ([]*Summary, error) {
	byKey := make(map[string]*Summary)

	var summaries []*Summary

	for i, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNilEntry)
		}

		if !p.Includes(e) {
			continue
		}

		key := Key(e.DebtorName)

		s, found := byKey[key]
		if !found {
			s = newSummary(key, strings.TrimSpace(e.DebtorName))
			byKey[key] = s
			summaries = append(summaries, s)
		}

		s.add(e)
	}

	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("record %d: %w", i, ErrNilRecord)
		}

		s, ok := attribute(r, byKey)
		if !ok {
			continue
		}

		s.Paid = s.Paid.Add(r.Amount)
		s.Payments = append(s.Payments, r)
	}

	for _, s := range summaries {
		s.Outstanding = s.Unreturned.Sub(s.Paid)
	}

	slices.SortStableFunc(summaries, func(a, b *Summary) int {
		return b.Unreturned.Cmp(a.Unreturned)
	})

	return summaries, nil
}

// attribute finds the summary an income record pays toward. Expenses and
// records naming an unknown debtor belong to nobody.
func attribute(r *finance.Record, byKey map[string]*Summary) (*Summary, bool) {
	if r.Kind != finance.KindIncome {
		return nil, false
	}

	name, ok := r.Debtor()
	if !ok {
		return nil, false
	}

	s, found := byKey[Key(name)]

	return s, found
}

func newSummary(key, name string) *Summary {
	return &Summary{
		Key:         key,
		Name:        name,
		Total:       decimal.Zero,
		Returned:    decimal.Zero,
		Unreturned:  decimal.Zero,
		Paid:        decimal.Zero,
		Outstanding: decimal.Zero,
	}
}

func (s *Summary) add(e *debt.Entry) {
	s.Count++
	s.Total = s.Total.Add(e.Amount)

	if e.IsReturned {
		s.Returned = s.Returned.Add(e.Amount)
	} else {
		s.Unreturned = s.Unreturned.Add(e.Amount)
	}

	s.Entries = append(s.Entries, e)
}
