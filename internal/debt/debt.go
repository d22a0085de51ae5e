package debt

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/lineitem"
)

var ErrNegativePayment = errors.New("payment amount must not be negative")

// Entry is one debt owed by or to a named party. Amount is authoritative; it
// equals the line item total when the entry was created from line items.
type Entry struct {
	ID         uuid.UUID
	DebtorName string
	Amount     decimal.Decimal
	Products   lineitem.Source
	BranchID   int
	IsReturned bool
	Day        int
	Month      int
	Year       int
	PaidAmount *decimal.Decimal
}

// Paid returns PaidAmount, or zero when it was never set.
func (e *Entry) Paid() decimal.Decimal {
	if e.PaidAmount == nil {
		return decimal.Zero
	}

	return *e.PaidAmount
}

// Remaining returns Amount minus Paid. Overpayments yield a negative value.
func (e *Entry) Remaining() decimal.Decimal {
	return e.Amount.Sub(e.Paid())
}

// Date builds the entry date from its day, month and year fields. It reports
// false when they do not form a real calendar date.
func (e *Entry) Date() (time.Time, bool) {
	if e.Year <= 0 || e.Month < 1 || e.Month > 12 || e.Day < 1 {
		return time.Time{}, false
	}

	d := time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.UTC)
	if d.Day() != e.Day {
		return time.Time{}, false
	}

	return d, true
}

// Items decodes the products field.
func (e *Entry) Items() lineitem.Result {
	return lineitem.Decode(e.Products)
}

// WithPayment returns a copy of e with amount added to its paid amount. The
// receiver is left untouched.
func (e *Entry) WithPayment(amount decimal.Decimal) (*Entry, error) {
	if amount.IsNegative() {
		return nil, ErrNegativePayment
	}

	paid := e.Paid().Add(amount)
	updated := *e
	updated.PaidAmount = &paid

	return &updated, nil
}

// CreateParams describes a new entry. Amount and Products are only used when
// Items is empty, for manually entered or legacy debts.
type CreateParams struct {
	DebtorName string
	Items      []lineitem.LineItem
	Amount     decimal.Decimal
	Products   string
	BranchID   int
	Date       time.Time
}

// Entry builds a new entry. With line items present the amount is always
// recomputed from them.
func (p CreateParams) Entry() *Entry {
	e := &Entry{
		ID:         uuid.New(),
		DebtorName: p.DebtorName,
		Amount:     p.Amount,
		BranchID:   p.BranchID,
		Day:        p.Date.Day(),
		Month:      int(p.Date.Month()),
		Year:       p.Date.Year(),
	}

	if len(p.Items) > 0 {
		e.Amount = lineitem.Total(p.Items)
		e.Products = lineitem.Text(lineitem.Encode(p.Items))

		return e
	}

	if p.Products != "" {
		e.Products = lineitem.Text(p.Products)
	}

	return e
}

// ListFilter narrows what a data source returns. Every field is optional.
type ListFilter struct {
	BranchID       *int
	DebtorName     *string
	UnreturnedOnly bool
}
