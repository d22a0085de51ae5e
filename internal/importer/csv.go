package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/daftar/internal/finance"
)

// delimiters are tried in order until one yields a recognizable header.
var delimiters = []rune{';', ',', '\t'}

func parseRecordsCSV(r io.Reader) ([]*finance.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1), nil
	}

	return nil, fmt.Errorf("no matching finance export format: expected date, description and amount columns")
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lowercased column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a date or amount, which covers blank lines,
// totals and page footers.
func parseRows(p *Profile, cols colIndex, rows [][]string, firstRowIdx int) []*finance.Record {
	var records []*finance.Record

	for i, row := range rows {
		date, ok := parseDate(cellValue(row, cols[p.DateCol]))
		if !ok {
			continue
		}

		amount, kind, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		records = append(records, &finance.Record{
			ID:          rowID(firstRowIdx+i, row),
			Amount:      amount,
			Description: cellValue(row, cols[p.DescCol]),
			Kind:        kind,
			Category:    optionalCell(row, cols, p.CategoryCol),
			Date:        date,
		})
	}

	return records
}

func rowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, finance.Kind, bool) {
	switch p.AmountMode {
	case amountSingle:
		amount, kind, ok := signedAmount(cellValue(row, cols[p.AmountCol]))
		if !ok {
			return decimal.Zero, "", false
		}

		if explicit, found := parseKind(optionalCell(row, cols, p.KindCol)); found {
			kind = explicit
		}

		return amount, kind, true
	case amountSplit:
		if amount, ok := unsignedAmount(cellValue(row, cols[p.IncomeCol])); ok {
			return amount, finance.KindIncome, true
		}

		if amount, ok := unsignedAmount(cellValue(row, cols[p.ExpenseCol])); ok {
			return amount, finance.KindExpense, true
		}
	}

	return decimal.Zero, "", false
}

func signedAmount(s string) (decimal.Decimal, finance.Kind, bool) {
	if s == "" {
		return decimal.Zero, "", false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, "", false
	}

	if d.IsNegative() {
		return d.Neg(), finance.KindExpense, true
	}

	return d, finance.KindIncome, true
}

func unsignedAmount(s string) (decimal.Decimal, bool) {
	d, _, ok := signedAmount(s)
	return d, ok
}

// rowID derives a stable ID so re-reading the same file yields the same records.
func rowID(rowIdx int, row []string) uuid.UUID {
	key := strconv.Itoa(rowIdx) + "\x1f" + strings.Join(row, "\x1f")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func optionalCell(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}
