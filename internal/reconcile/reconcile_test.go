package reconcile_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/daftar/internal/debt"
	"github.com/MrJamesThe3rd/daftar/internal/finance"
	"github.com/MrJamesThe3rd/daftar/internal/reconcile"
)

const takenBranch = 0

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(name, amount string, returned bool, branch int) *debt.Entry {
	return &debt.Entry{DebtorName: name, Amount: dec(amount), IsReturned: returned, BranchID: branch}
}

func income(description, amount string) *finance.Record {
	return &finance.Record{Description: description, Amount: dec(amount), Kind: finance.KindIncome}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "ali", reconcile.Key("  ALI "))
	assert.Equal(t, "", reconcile.Key("   "))
	assert.Equal(t, reconcile.Key("Vali"), reconcile.Key("vali\t"))
}

func TestReconcile_GroupsByNormalizedName(t *testing.T) {
	entries := []*debt.Entry{
		entry("Ali", "100", false, 1),
		entry("ali ", "50", true, 1),
	}

	got, err := reconcile.Reconcile(entries, nil, debt.Partition{Type: debt.TypeGiven, TakenBranchID: takenBranch})
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "Ali", s.Name)
	assert.Equal(t, "ali", s.Key)
	assert.Equal(t, 2, s.Count)
	assertDec(t, "150", s.Total, "total")
	assertDec(t, "50", s.Returned, "returned")
	assertDec(t, "100", s.Unreturned, "unreturned")
	assertDec(t, "100", s.Outstanding, "outstanding")
	assert.Len(t, s.Entries, 2)
}

func TestReconcile_AttributesPayments(t *testing.T) {
	type testCase struct {
		name            string
		records         []*finance.Record
		wantPaid        string
		wantOutstanding string
		wantPayments    int
	}

	tests := []testCase{
		{
			name:            "Income With Matching Prefix",
			records:         []*finance.Record{income("Vali: partial payment", "30")},
			wantPaid:        "30",
			wantOutstanding: "70",
			wantPayments:    1,
		},
		{
			name:            "Prefix Matches Regardless Of Case And Spacing",
			records:         []*finance.Record{income("  VALI : cash", "20"), income("vali: card", "5")},
			wantPaid:        "25",
			wantOutstanding: "75",
			wantPayments:    2,
		},
		{
			name:            "Unknown Debtor Is Ignored",
			records:         []*finance.Record{income("Unknown: x", "10")},
			wantPaid:        "0",
			wantOutstanding: "100",
		},
		{
			name: "Expense Is Never Attributed",
			records: []*finance.Record{
				{Description: "Vali: refund", Amount: dec("40"), Kind: finance.KindExpense},
			},
			wantPaid:        "0",
			wantOutstanding: "100",
		},
		{
			name:            "Description Without Separator",
			records:         []*finance.Record{income("Vali paid", "10"), income(": orphan", "10")},
			wantPaid:        "0",
			wantOutstanding: "100",
		},
		{
			name:            "Overpayment Goes Negative",
			records:         []*finance.Record{income("Vali: all", "130")},
			wantPaid:        "130",
			wantOutstanding: "-30",
			wantPayments:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []*debt.Entry{entry("Vali", "100", false, 2)}

			got, err := reconcile.Reconcile(entries, tt.records, debt.Partition{Type: debt.TypeAll})
			require.NoError(t, err)
			require.Len(t, got, 1)

			assertDec(t, tt.wantPaid, got[0].Paid, "paid")
			assertDec(t, tt.wantOutstanding, got[0].Outstanding, "outstanding")
			assert.Len(t, got[0].Payments, tt.wantPayments)
		})
	}
}

func TestReconcile_Partition(t *testing.T) {
	entries := []*debt.Entry{
		entry("Given", "10", false, 3),
		entry("Taken", "20", false, takenBranch),
		entry("Both", "1", false, takenBranch),
		entry("Both", "2", false, 7),
	}

	type testCase struct {
		name      string
		partition debt.Partition
		want      map[string]string
	}

	tests := []testCase{
		{
			name:      "Given",
			partition: debt.Partition{Type: debt.TypeGiven, TakenBranchID: takenBranch},
			want:      map[string]string{"given": "10", "both": "2"},
		},
		{
			name:      "Taken",
			partition: debt.Partition{Type: debt.TypeTaken, TakenBranchID: takenBranch},
			want:      map[string]string{"taken": "20", "both": "1"},
		},
		{
			name:      "All",
			partition: debt.Partition{Type: debt.TypeAll},
			want:      map[string]string{"given": "10", "taken": "20", "both": "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reconcile.Reconcile(entries, nil, tt.partition)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for _, s := range got {
				want, ok := tt.want[s.Key]
				require.True(t, ok, "unexpected debtor %q", s.Key)
				assertDec(t, want, s.Total, s.Key)
			}
		})
	}
}

func TestReconcile_OrderedByUnreturnedStable(t *testing.T) {
	entries := []*debt.Entry{
		entry("Small", "5", false, 1),
		entry("TieA", "20", false, 1),
		entry("Big", "90", false, 1),
		entry("TieB", "20", false, 1),
		entry("Settled", "500", true, 1),
	}

	got, err := reconcile.Reconcile(entries, nil, debt.Partition{})
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"Big", "TieA", "TieB", "Small", "Settled"}, names)
}

func TestReconcile_EmptyNameGroup(t *testing.T) {
	entries := []*debt.Entry{entry("", "1", false, 1), entry("  ", "2", false, 1)}

	got, err := reconcile.Reconcile(entries, nil, debt.Partition{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Key)
	assertDec(t, "3", got[0].Total, "total")
}

func TestReconcile_BalanceInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	names := []string{"Ali", "ALI", " ali", "Vali", "vali ", "Soli", ""}

	entries := make([]*debt.Entry, 0, 200)
	for range 200 {
		cents := decimal.New(rng.Int64N(100000), -2)
		entries = append(entries, &debt.Entry{
			DebtorName: names[rng.IntN(len(names))],
			Amount:     cents,
			IsReturned: rng.IntN(2) == 0,
			BranchID:   rng.IntN(3),
		})
	}

	got, err := reconcile.Reconcile(entries, nil, debt.Partition{})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	count := 0
	for _, s := range got {
		assert.True(t, s.Total.Equal(s.Returned.Add(s.Unreturned)), "%s: total mismatch", s.Key)

		sum := decimal.Zero
		for _, e := range s.Entries {
			assert.Equal(t, s.Key, reconcile.Key(e.DebtorName))
			sum = sum.Add(e.Amount)
		}

		assert.True(t, s.Total.Equal(sum), "%s: entries sum mismatch", s.Key)
		assert.Equal(t, len(s.Entries), s.Count)
		count += s.Count
	}

	assert.Equal(t, len(entries), count)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	paid := dec("3")
	entries := []*debt.Entry{
		{DebtorName: " Ali ", Amount: dec("10"), PaidAmount: &paid, BranchID: 1},
		entry("Vali", "20", false, 1),
	}
	records := []*finance.Record{income("Ali: x", "4")}

	_, err := reconcile.Reconcile(entries, records, debt.Partition{})
	require.NoError(t, err)

	assert.Equal(t, " Ali ", entries[0].DebtorName)
	assertDec(t, "3", *entries[0].PaidAmount, "paid amount")
	assert.Equal(t, "Vali", entries[1].DebtorName)
	assert.Equal(t, "Ali: x", records[0].Description)
	assertDec(t, "4", records[0].Amount, "record amount")
}

func TestReconcile_NilElements(t *testing.T) {
	_, err := reconcile.Reconcile([]*debt.Entry{entry("A", "1", false, 1), nil}, nil, debt.Partition{})
	require.ErrorIs(t, err, reconcile.ErrNilEntry)

	_, err = reconcile.Reconcile([]*debt.Entry{entry("A", "1", false, 1)}, []*finance.Record{nil}, debt.Partition{})
	require.ErrorIs(t, err, reconcile.ErrNilRecord)

	got, err := reconcile.Reconcile(nil, nil, debt.Partition{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
