package models

// Transfer represents a recommended settlement payment between two members.
// Applying the transfer debits From and credits To.
type Transfer struct {
	// From is the member who pays (debtor settling up).
	From string `json:"from"`

	// To is the member who receives (creditor being paid).
	To string `json:"to"`

	// AmountCents is the payment amount in minor currency units. Always
	// positive.
	AmountCents int64 `json:"amount_cents"`
}
