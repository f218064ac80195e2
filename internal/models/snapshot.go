package models

// Snapshot is the full authoritative state of the ledger. It doubles as the
// canonical JSON interchange shape: {"members": [...], "expenses": [...]}.
// Both slices are ordered by creation.
type Snapshot struct {
	Members  []Member  `json:"members"`
	Expenses []Expense `json:"expenses"`
}

// Clone returns a deep copy so callers can hand snapshots out without
// aliasing the authoritative state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Members:  make([]Member, len(s.Members)),
		Expenses: make([]Expense, len(s.Expenses)),
	}
	copy(out.Members, s.Members)
	for i, e := range s.Expenses {
		e.Contributions = append([]Contribution(nil), e.Contributions...)
		e.Shares = append([]Share(nil), e.Shares...)
		out.Expenses[i] = e
	}
	return out
}
