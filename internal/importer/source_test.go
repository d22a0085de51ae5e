package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/finance"
	"github.com/MrJamesThe3rd/daftar/internal/importer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	entriesPath := writeFile(t, dir, "debts.json", `[
		{"debtorName": "Ali", "amount": 100, "branchId": 1},
		{"debtorName": " ali", "amount": 50, "branchId": 2, "isReturned": true},
		{"debtorName": "Vali", "amount": 70, "branchId": 1}
	]`)
	financePath := writeFile(t, dir, "finance.csv", "Date;Description;Amount\n"+
		"2024-03-01;Ali: cash;20\n"+
		"2024-03-05;Rent;-300\n")

	src, err := importer.Open(entriesPath, financePath)
	require.NoError(t, err)

	ctx := context.Background()

	all, err := src.ListEntries(ctx, debt.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ali, err := src.ListEntries(ctx, debt.ListFilter{DebtorName: new("ALI")})
	require.NoError(t, err)
	assert.Len(t, ali, 2)

	open, err := src.ListEntries(ctx, debt.ListFilter{BranchID: new(1), UnreturnedOnly: true})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	income := finance.KindIncome

	records, err := src.ListRecords(ctx, finance.ListFilter{Kind: &income})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ali: cash", records[0].Description)

	windowed, err := src.ListRecords(ctx, finance.ListFilter{StartDate: new(date(2024, 3, 2)), EndDate: new(date(2024, 3, 31))})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, "Rent", windowed[0].Description)
}

func TestOpen_WithoutFinance(t *testing.T) {
	path := writeFile(t, t.TempDir(), "debts.json", `[]`)

	src, err := importer.Open(path, "")
	require.NoError(t, err)

	records, err := src.ListRecords(context.Background(), finance.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := importer.Open(filepath.Join(dir, "missing.json"), "")
	require.Error(t, err)

	entries := writeFile(t, dir, "debts.json", `[]`)

	_, err = importer.Open(entries, filepath.Join(dir, "finance.xlsx"))
	require.Error(t, err)

	_, err = importer.Open(entries, writeFile(t, dir, "finance.csv", "nothing useful"))
	require.Error(t, err)
}
