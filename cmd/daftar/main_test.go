package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entriesExport = `[
	{"id": 1, "debtorName": "Ali", "amount": 100, "products": "Flour*2*50*0", "branchId": 1, "day": 1, "month": 3, "year": 2024},
	{"id": 2, "debtorName": "ali ", "amount": 50, "branchId": 1, "isReturned": true, "day": 2, "month": 3, "year": 2024},
	{"id": 3, "debtorName": "Vali", "amount": 250, "branchId": 2, "paidAmount": 20, "day": 3, "month": 3, "year": 2024},
	{"id": 4, "debtorName": "Wholesaler", "amount": 900, "branchId": 0, "day": 4, "month": 3, "year": 2024}
]`

const financeExport = "Date;Description;Amount\n" +
	"2024-03-05;Vali: advance payment;30\n" +
	"2024-03-06;Unknown: x;10\n" +
	"2024-03-07;Vali: refund;-5\n"

func run(t *testing.T, args ...string) []byte {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	require.NoError(t, cmd.Execute())

	return out.Bytes()
}

func exports(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	entries := filepath.Join(dir, "debts.json")
	finance := filepath.Join(dir, "finance.csv")

	require.NoError(t, os.WriteFile(entries, []byte(entriesExport), 0o600))
	require.NoError(t, os.WriteFile(finance, []byte(financeExport), 0o600))

	return entries, finance
}

func TestItemsCommand(t *testing.T) {
	var got itemsResponse
	require.NoError(t, json.Unmarshal(run(t, "items", "Apple*2*10*5|Banana*1*3*3"), &got))

	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "Apple (2 dona), Banana (1 dona)", got.Display)
	assert.True(t, decimal.NewFromInt(23).Equal(got.Total))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Banana", got.Items[1].Name)
}

func TestDebtorsCommand(t *testing.T) {
	entries, finance := exports(t)

	var got []debtorResponse
	require.NoError(t, json.Unmarshal(run(t, "debtors", "--type", "given", "--entries", entries, "--finance", finance), &got))

	require.Len(t, got, 2)
	assert.Equal(t, "Vali", got[0].Name)
	assert.True(t, decimal.NewFromInt(30).Equal(got[0].Paid))
	assert.True(t, decimal.NewFromInt(220).Equal(got[0].Outstanding))
	assert.Equal(t, "Ali", got[1].Name)
	assert.Equal(t, 2, got[1].Count)
	assert.True(t, decimal.NewFromInt(150).Equal(got[1].Total))
}

func TestQueryCommand(t *testing.T) {
	entries, _ := exports(t)

	var got queryResponse
	require.NoError(t, json.Unmarshal(run(t, "query",
		"--entries", entries,
		"--type", "given",
		"--status", "unreturned",
		"--sort", "amount",
		"--dir", "desc",
	), &got))

	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Vali", got.Entries[0].DebtorName)
	assert.Equal(t, "Ali", got.Entries[1].DebtorName)
	assert.Equal(t, "Flour (2 dona)", got.Entries[1].Products)
	assert.Equal(t, "ok", got.Entries[1].ItemStatus)
	require.Len(t, got.Entries[1].Items, 1)
	assert.Equal(t, "Flour", got.Entries[1].Items[0].Name)
	assert.Equal(t, 2, got.Entries[1].Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(50).Equal(got.Entries[1].Items[0].UnitPrice))
	assert.Equal(t, "2024-03-01", got.Entries[1].Date)
	assert.Equal(t, 2, got.Stats.Count)
	assert.True(t, decimal.NewFromInt(330).Equal(got.Stats.Remaining))
}

func TestQueryCommand_FileAndToggle(t *testing.T) {
	entries, _ := exports(t)

	file := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(file, []byte("sortKey: name\nsortDirection: asc\nsearch: l\nstatus: unreturned\n"), 0o600))

	var got queryResponse
	require.NoError(t, json.Unmarshal(run(t, "query", "--entries", entries, "--file", file, "--toggle", "name"), &got))

	names := make([]string, 0, len(got.Entries))
	for _, e := range got.Entries {
		names = append(names, e.DebtorName)
	}

	assert.Equal(t, []string{"Wholesaler", "Vali", "Ali"}, names)
}

func TestQueryCommand_RejectsBadOptions(t *testing.T) {
	entries, _ := exports(t)

	for _, args := range [][]string{
		{"query", "--entries", entries, "--sort", "weight"},
		{"query", "--entries", entries, "--from", "2024-01-01"},
		{"debtors", "--entries", entries, "--type", "lent"},
	} {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)

		assert.Error(t, cmd.Execute(), args)
	}
}

func TestSuggestCommand(t *testing.T) {
	entries, _ := exports(t)

	var got []debtorResponse
	require.NoError(t, json.Unmarshal(run(t, "suggest", "AL", "--entries", entries), &got))

	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}

	assert.ElementsMatch(t, []string{"Ali", "Vali", "Wholesaler"}, names)
}
