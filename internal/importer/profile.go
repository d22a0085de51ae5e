package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle is one signed column; negative values are expenses.
	amountSingle amountMode = iota
	// amountSplit is separate income and expense columns.
	amountSplit
)

// Profile describes the column layout of a finance CSV export. Column names
// are matched case-insensitively.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	AmountMode  amountMode
	AmountCol   string // amountSingle
	IncomeCol   string // amountSplit
	ExpenseCol  string // amountSplit
	KindCol     string // optional
	CategoryCol string // optional
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.IncomeCol, p.ExpenseCol)
	}

	return cols
}

// profiles is tried in order; split layouts come first since their date and
// description headers overlap with the single-column ones.
var profiles = []Profile{
	{
		Name:        "kassa",
		DateCol:     "sana",
		DescCol:     "izoh",
		AmountMode:  amountSplit,
		IncomeCol:   "kirim",
		ExpenseCol:  "chiqim",
		CategoryCol: "kategoriya",
	},
	{
		Name:        "daftar",
		DateCol:     "date",
		DescCol:     "description",
		AmountMode:  amountSingle,
		AmountCol:   "amount",
		KindCol:     "type",
		CategoryCol: "category",
	},
	{
		Name:        "uz",
		DateCol:     "sana",
		DescCol:     "izoh",
		AmountMode:  amountSingle,
		AmountCol:   "summa",
		KindCol:     "turi",
		CategoryCol: "kategoriya",
	},
	{
		Name:        "ru",
		DateCol:     "дата",
		DescCol:     "описание",
		AmountMode:  amountSingle,
		AmountCol:   "сумма",
		KindCol:     "тип",
		CategoryCol: "категория",
	},
}
