package models

// Contribution records how much one member actually paid toward an expense.
type Contribution struct {
	// MemberID references the paying member.
	MemberID string `json:"member_id"`

	// AmountCents is the paid amount in minor currency units. Never negative.
	AmountCents int64 `json:"amount_cents"`
}

// Share records how much of an expense's cost one member is responsible for,
// relative to the other included participants.
type Share struct {
	// MemberID references the responsible member.
	MemberID string `json:"member_id"`

	// Weight is the relative share of the cost. Weights at or below zero
	// are treated as 1, which is the equal-split case.
	Weight float64 `json:"weight"`

	// Included marks whether this member takes part in the split at all.
	Included bool `json:"included"`
}

// Expense represents one shared cost. Expenses are created atomically and
// never mutated after creation, except by deletion or by pruning when a
// referenced member is removed.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label (e.g. "Groceries week 12").
	Description string `json:"description"`

	// TotalCents is the full expense amount in minor currency units.
	// It always equals the contribution sum at creation time; after a
	// member removal prunes contributions the total is kept as entered.
	TotalCents int64 `json:"total_cents"`

	// Contributions lists who paid, ordered as entered. Member IDs are
	// unique within the expense. A single-payer expense is a one-element
	// list.
	Contributions []Contribution `json:"contributions"`

	// Shares lists who is responsible, ordered as entered. Member IDs are
	// unique within the expense.
	Shares []Share `json:"shares"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// IncludedShares returns the shares that take part in the split.
func (e Expense) IncludedShares() []Share {
	var included []Share
	for _, s := range e.Shares {
		if s.Included {
			included = append(included, s)
		}
	}
	return included
}
