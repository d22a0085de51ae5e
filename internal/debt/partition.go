package debt

// Type selects given or taken debts.
type Type string

const (
	TypeAll   Type = "all"
	TypeGiven Type = "given"
	TypeTaken Type = "taken"
)

// Partition splits entries by branch: entries booked on TakenBranchID are
// debts the business took, every other branch holds debts it gave.
type Partition struct {
	Type          Type
	TakenBranchID int
}

func (p Partition) Includes(e *Entry) bool {
	switch p.Type {
	case TypeGiven:
		return e.BranchID != p.TakenBranchID
	case TypeTaken:
		return e.BranchID == p.TakenBranchID
	}

	return true
}
