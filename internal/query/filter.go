package query

import (
	"strings"
	"time"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/reconcile"
)

// Predicate reports whether an entry passes one filter.
type Predicate func(*debt.Entry) bool

// Predicates builds one predicate per enabled filter of d. They form a
// conjunction and may be evaluated in any order.
func (d Descriptor) Predicates() []Predicate {
	var predicates []Predicate

	if d.DebtType == debt.TypeGiven || d.DebtType == debt.TypeTaken {
		p := debt.Partition{Type: d.DebtType, TakenBranchID: d.TakenBranchID}
		predicates = append(predicates, p.Includes)
	}

	if d.DebtorName != nil {
		key := reconcile.Key(*d.DebtorName)
		predicates = append(predicates, func(e *debt.Entry) bool {
			return reconcile.Key(e.DebtorName) == key
		})
	}

	if needle := strings.ToLower(strings.TrimSpace(d.Search)); needle != "" {
		predicates = append(predicates, func(e *debt.Entry) bool {
			return strings.Contains(strings.ToLower(e.DebtorName), needle)
		})
	}

	if d.BranchID != nil {
		branchID := *d.BranchID
		predicates = append(predicates, func(e *debt.Entry) bool {
			return e.BranchID == branchID
		})
	}

	switch d.Status {
	case StatusReturned:
		predicates = append(predicates, func(e *debt.Entry) bool { return e.IsReturned })
	case StatusUnreturned:
		predicates = append(predicates, func(e *debt.Entry) bool { return !e.IsReturned })
	}

	if d.DateRange != nil {
		predicates = append(predicates, d.DateRange.contains)
	}

	return predicates
}

// Match reports whether e passes every predicate.
func Match(e *debt.Entry, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(e) {
			return false
		}
	}

	return true
}

// contains compares whole days. Entries without a valid date never match, and
// neither does anything when the range is inverted.
func (r *DateRange) contains(e *debt.Entry) bool {
	date, ok := e.Date()
	if !ok {
		return false
	}

	start, end := day(r.Start), day(r.End)

	return !date.Before(start) && !date.After(end)
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
