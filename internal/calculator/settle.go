package calculator

import (
	"sort"

	"github.com/splitledger/splitledger/internal/models"
)

// DefaultEpsilon is the tolerance below which a balance counts as settled.
// Integer arithmetic keeps balances exact, so zero is the right default;
// callers feeding in float-derived data can pass a unit or two to absorb
// rounding noise.
const DefaultEpsilon int64 = 0

type party struct {
	id     string
	amount int64 // always positive: credit for creditors, debt magnitude for debtors
}

// Simplify plans the settlement transfers that zero the given balances.
//
// It greedily matches the largest debtor against the largest creditor, which
// yields at most N−1 transfers for N members with a nonzero balance. True
// minimum-transaction settlement is NP-hard in general; this deliberately
// stays with the documented greedy guarantee. Output is deterministic:
// parties are ordered by magnitude descending, member ID ascending on ties.
//
// Any leftover at or below epsilon is rounding noise and is discarded, never
// surfaced as a transfer.
func Simplify(balances map[string]int64, epsilon int64) []models.Transfer {
	var creditors, debtors []party
	for id, bal := range balances {
		switch {
		case bal > epsilon:
			creditors = append(creditors, party{id: id, amount: bal})
		case bal < -epsilon:
			debtors = append(debtors, party{id: id, amount: -bal})
		}
	}

	sortParties(creditors)
	sortParties(debtors)

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		// Both cursors point at parties above epsilon, so amount does too.
		amount := min(debtors[i].amount, creditors[j].amount)
		transfers = append(transfers, models.Transfer{
			From:        debtors[i].id,
			To:          creditors[j].id,
			AmountCents: amount,
		})

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if debtors[i].amount <= epsilon {
			i++
		}
		if creditors[j].amount <= epsilon {
			j++
		}
	}

	return transfers
}

func sortParties(parties []party) {
	sort.Slice(parties, func(a, b int) bool {
		if parties[a].amount != parties[b].amount {
			return parties[a].amount > parties[b].amount
		}
		return parties[a].id < parties[b].id
	})
}
