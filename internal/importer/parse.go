package importer

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/finance"
)

// parseAmount accepts both "1.234,56" and "1,234.56" styles as well as space
// grouped thousands ("1 234 567").
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastComma > lastDot && (lastDot >= 0 || strings.Count(clean, ",") == 1):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	default:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return decimal.NewFromString(clean)
}

var dateLayouts = []string{
	time.DateOnly,
	"02.01.2006",
	"02-01-2006",
	"02/01/2006",
	time.RFC3339,
	time.DateTime,
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

var kindAliases = map[string]finance.Kind{
	"income":  finance.KindIncome,
	"kirim":   finance.KindIncome,
	"доход":   finance.KindIncome,
	"приход":  finance.KindIncome,
	"expense": finance.KindExpense,
	"chiqim":  finance.KindExpense,
	"расход":  finance.KindExpense,
}

func parseKind(s string) (finance.Kind, bool) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}
