package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/encoding"
	"github.com/MrJamesThe3rd/daftar/internal/finance"
	"github.com/MrJamesThe3rd/daftar/internal/lineitem"
)

// exportID accepts string and numeric IDs from older exports.
type exportID string

func (id *exportID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*id = exportID(s)

		return nil
	}

	if string(b) == "null" {
		*id = ""
		return nil
	}

	*id = exportID(b)

	return nil
}

// UUID keeps real UUIDs and maps anything else onto a name-based one.
func (id exportID) UUID() uuid.UUID {
	s := strings.TrimSpace(string(id))
	if s == "" {
		return uuid.New()
	}

	if parsed, err := uuid.Parse(s); err == nil {
		return parsed
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(s))
}

type entryJSON struct {
	ID         exportID         `json:"id"`
	DebtorName string           `json:"debtorName"`
	Amount     decimal.Decimal  `json:"amount"`
	Products   lineitem.Source  `json:"products"`
	BranchID   int              `json:"branchId"`
	IsReturned bool             `json:"isReturned"`
	Day        int              `json:"day"`
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	PaidAmount *decimal.Decimal `json:"paidAmount"`
}

func (e entryJSON) entry() *debt.Entry {
	return &debt.Entry{
		ID:         e.ID.UUID(),
		DebtorName: e.DebtorName,
		Amount:     e.Amount,
		Products:   e.Products,
		BranchID:   e.BranchID,
		IsReturned: e.IsReturned,
		Day:        e.Day,
		Month:      e.Month,
		Year:       e.Year,
		PaidAmount: e.PaidAmount,
	}
}

type recordJSON struct {
	ID          exportID        `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
}

func (r recordJSON) record() *finance.Record {
	kind, ok := parseKind(r.Type)
	if !ok {
		kind = finance.Kind(strings.ToLower(strings.TrimSpace(r.Type)))
	}

	rec := &finance.Record{
		ID:          r.ID.UUID(),
		Amount:      r.Amount,
		Description: r.Description,
		Kind:        kind,
		Category:    r.Category,
	}

	date, ok := parseDate(r.Date)
	if !ok && r.Date != "" {
		slog.Warn("unparseable finance record date", "id", rec.ID, "date", r.Date)
	}

	rec.Date = date

	return rec
}

// ReadEntries decodes a JSON array of debt entries.
func ReadEntries(r io.Reader) ([]*debt.Entry, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var raw []entryJSON
	if err := json.NewDecoder(utf8r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}

	entries := make([]*debt.Entry, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, e.entry())
	}

	return entries, nil
}

func decodeRecords(r io.Reader) ([]*finance.Record, error) {
	var raw []recordJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode finance records: %w", err)
	}

	records := make([]*finance.Record, 0, len(raw))
	for _, rec := range raw {
		records = append(records, rec.record())
	}

	return records, nil
}
