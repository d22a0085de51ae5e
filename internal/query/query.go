// Package query filters and orders debt entries according to a Descriptor.
package query

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Status filters entries by their returned flag.
type Status string

const (
	StatusAll        Status = "all"
	StatusReturned   Status = "returned"
	StatusUnreturned Status = "unreturned"
)

type SortKey string

const (
	SortDate     SortKey = "date"
	SortName     SortKey = "name"
	SortAmount   SortKey = "amount"
	SortReturned SortKey = "isReturned"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `yaml:"start" json:"start" validate:"required"`
	End   time.Time `yaml:"end"   json:"end"   validate:"required"`
}

// Descriptor holds every filter and sort option of a query. Nil pointers and
// empty strings disable the corresponding filter.
type Descriptor struct {
	DebtType      debt.Type  `yaml:"debtType"             json:"debtType"             validate:"omitempty,oneof=all given taken"`
	TakenBranchID int        `yaml:"takenBranchId"        json:"takenBranchId"`
	DebtorName    *string    `yaml:"debtorName,omitempty" json:"debtorName,omitempty"`
	Search        string     `yaml:"search,omitempty"     json:"search,omitempty"`
	BranchID      *int       `yaml:"branchId,omitempty"   json:"branchId,omitempty"`
	Status        Status     `yaml:"status"               json:"status"               validate:"omitempty,oneof=all returned unreturned"`
	DateRange     *DateRange `yaml:"dateRange,omitempty"  json:"dateRange,omitempty"`
	SortKey       SortKey    `yaml:"sortKey"              json:"sortKey"              validate:"omitempty,oneof=date name amount isReturned"`
	SortDirection Direction  `yaml:"sortDirection"        json:"sortDirection"        validate:"omitempty,oneof=asc desc"`
	Locale        string     `yaml:"locale,omitempty"     json:"locale,omitempty"     validate:"omitempty,bcp47_language_tag"`
}

// DefaultDescriptor returns a query that keeps every entry, newest first.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		DebtType:      debt.TypeAll,
		Status:        StatusAll,
		SortKey:       SortDate,
		SortDirection: Desc,
	}
}

// Validate reports unknown option values. Apply accepts any descriptor, so this
// is only meant for user supplied configuration.
func (d Descriptor) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("validate query: %w", err)
	}

	return nil
}

// Decode reads a YAML descriptor on top of DefaultDescriptor. An empty
// document yields the defaults.
func Decode(r io.Reader) (Descriptor, error) {
	d := DefaultDescriptor()

	data, err := io.ReadAll(r)
	if err != nil {
		return d, fmt.Errorf("read query: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return d, nil
	}

	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("decode query: %w", err)
	}

	return d, nil
}

// Apply returns the entries accepted by every enabled filter of d, ordered by
// its sort key and direction. The input slice is not modified.
func Apply(entries []*debt.Entry, d Descriptor) []*debt.Entry {
	predicates := d.Predicates()
	matched := make([]*debt.Entry, 0, len(entries))

	for _, e := range entries {
		if e != nil && Match(e, predicates) {
			matched = append(matched, e)
		}
	}

	return Sort(matched, d.SortKey, d.SortDirection, d.Locale)
}
