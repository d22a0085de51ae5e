// Package stats totals a collection of debt entries.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
)

type Summary struct {
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
	Count     int             `json:"count"`
}

// Aggregate sums exactly the entries it is given; callers filter first.
// Nil entries are skipped.
func Aggregate(entries []*debt.Entry) Summary {
	s := Summary{Total: decimal.Zero, Paid: decimal.Zero}

	for _, e := range entries {
		if e == nil {
			continue
		}

		s.Total = s.Total.Add(e.Amount)
		s.Paid = s.Paid.Add(e.Paid())
		s.Count++
	}

	s.Remaining = s.Total.Sub(s.Paid)

	return s
}
