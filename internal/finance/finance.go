package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind represents the direction of a finance record (income or expense).
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// debtorSeparator splits the debtor name from the free text of a description.
const debtorSeparator = ": "

// Record is a standalone income or expense. It names its debtor only through
// the "<debtor>: <text>" description convention.
type Record struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Description string
	Kind        Kind
	Category    string
	Date        time.Time
}

// Debtor returns the debtor name embedded in the description. It reports false
// when the description has no separator or the name before it is blank.
func (r *Record) Debtor() (string, bool) {
	name, _, found := strings.Cut(r.Description, debtorSeparator)
	if !found {
		return "", false
	}

	name = strings.TrimSpace(name)

	return name, name != ""
}

// PaymentDescription writes a description that Debtor can attribute back to debtor.
func PaymentDescription(debtor, note string) string {
	return strings.TrimSpace(debtor) + debtorSeparator + note
}

type ListFilter struct {
	Kind      *Kind
	StartDate *time.Time
	EndDate   *time.Time
}
