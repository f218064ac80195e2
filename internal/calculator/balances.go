// Package calculator derives net balances from the expense ledger and plans
// the settlement transfers that zero them. Both entry points are pure
// functions of their input snapshot.
package calculator

import (
	"sort"

	"github.com/splitledger/splitledger/internal/models"
)

// Balances computes each member's net position in minor currency units.
// Positive = net creditor (owed money), negative = net debtor.
//
// For every expense with a positive total and at least one included share:
//   - each contribution credits its payer in full
//   - each included share is debited total × weight/totalWeight, apportioned
//     to whole cents so the debits sum exactly to the total
//
// Every credited cent is therefore debited in full, so the values always sum
// to zero exactly.
func Balances(members []models.Member, expenses []models.Expense) map[string]int64 {
	balances := make(map[string]int64, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}

	for _, e := range expenses {
		if e.TotalCents <= 0 {
			continue
		}
		included := e.IncludedShares()
		if len(included) == 0 {
			continue
		}

		for _, c := range e.Contributions {
			balances[c.MemberID] += c.AmountCents
		}

		for i, debit := range apportion(e.TotalCents, included) {
			balances[included[i].MemberID] -= debit
		}
	}

	return balances
}

// apportion splits total across the shares proportionally to their weights,
// in whole cents. Rounding leftovers go one cent at a time to the shares with
// the largest discarded fraction, earlier shares first on ties, so the result
// always sums exactly to total.
func apportion(total int64, shares []models.Share) []int64 {
	totalWeight := 0.0
	for _, s := range shares {
		totalWeight += effectiveWeight(s)
	}

	debits := make([]int64, len(shares))
	fractions := make([]float64, len(shares))
	var assigned int64
	for i, s := range shares {
		exact := float64(total) * effectiveWeight(s) / totalWeight
		debits[i] = int64(exact)
		fractions[i] = exact - float64(debits[i])
		assigned += debits[i]
	}

	// Distribute the rounding leftover deterministically.
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fractions[order[a]] > fractions[order[b]]
	})
	for k := int64(0); k < total-assigned; k++ {
		debits[order[k%int64(len(order))]]++
	}

	return debits
}

// effectiveWeight applies the equal-split default: weights at or below zero
// count as 1.
func effectiveWeight(s models.Share) float64 {
	if s.Weight <= 0 {
		return 1
	}
	return s.Weight
}
