// Package lineitem encodes and decodes the product rows stored inside a ledger
// entry's products field.
//
// The format is one item per "|" separated segment, each segment holding
// name*quantity*unitPrice*paid. Names are not escaped, so a name containing
// "*" or "|" does not survive a round trip.
package lineitem

import (
	"github.com/shopspring/decimal"
)

const (
	itemSeparator  = "|"
	fieldSeparator = "*"
)

// LineItem is one product row of a ledger entry.
type LineItem struct {
	// ID is a display key assigned on decode. It is only unique within a
	// single Decode result and is never encoded.
	ID        string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Paid      decimal.Decimal
}

// Status tells why a decode produced the items it did.
type Status int

const (
	StatusOK Status = iota
	// StatusAbsent means there was nothing to decode.
	StatusAbsent
	// StatusMalformed means text was present but at least one token fell back
	// to its default, the input had an unsupported shape, or nothing survived.
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAbsent:
		return "absent"
	case StatusMalformed:
		return "malformed"
	}

	return "unknown"
}

// Result is the outcome of Decode.
type Result struct {
	Items  []LineItem
	Status Status
}

// Total returns the sum of quantity × unit price over items.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero

	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}
