package query

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
)

type comparator func(a, b *debt.Entry) int

// Sort returns a stably sorted copy of entries. Names are collated for locale,
// falling back to the root collation. An unknown key keeps the input order.
func Sort(entries []*debt.Entry, key SortKey, dir Direction, locale string) []*debt.Entry {
	sorted := slices.Clone(entries)

	cmp := compareBy(key, locale)
	if cmp == nil {
		return sorted
	}

	if dir == Desc {
		asc := cmp
		cmp = func(a, b *debt.Entry) int { return asc(b, a) }
	}

	slices.SortStableFunc(sorted, cmp)

	return sorted
}

// ToggleSort returns the sort state after the user picks requested: picking the
// active key flips the direction, any other key starts ascending.
func ToggleSort(key SortKey, dir Direction, requested SortKey) (SortKey, Direction) {
	if requested != key {
		return requested, Asc
	}

	if dir == Desc {
		return key, Asc
	}

	return key, Desc
}

func compareBy(key SortKey, locale string) comparator {
	switch key {
	case SortDate:
		return func(a, b *debt.Entry) int {
			da, _ := a.Date()
			db, _ := b.Date()

			return da.Compare(db)
		}
	case SortName:
		// Collators keep internal buffers, so each sort gets its own.
		c := collate.New(language.Make(locale))

		return func(a, b *debt.Entry) int {
			return c.CompareString(a.DebtorName, b.DebtorName)
		}
	case SortAmount:
		return func(a, b *debt.Entry) int {
			return a.Amount.Cmp(b.Amount)
		}
	case SortReturned:
		return func(a, b *debt.Entry) int {
			return boolRank(a.IsReturned) - boolRank(b.IsReturned)
		}
	}

	return nil
}

func boolRank(b bool) int {
	if b {
		return 1
	}

	return 0
}
