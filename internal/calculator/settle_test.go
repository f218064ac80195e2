package calculator

import (
	"reflect"
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name         string
		balances     map[string]int64
		validateFunc func(t *testing.T, transfers []models.Transfer)
	}{
		{
			name:     "two debtors one creditor",
			balances: map[string]int64{"A": 6000, "B": -3000, "C": -3000},
			validateFunc: func(t *testing.T, transfers []models.Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("got %d transfers, want 2", len(transfers))
				}
				var toA int64
				for _, tr := range transfers {
					if tr.To != "A" {
						t.Errorf("transfer to %s, want A", tr.To)
					}
					if tr.AmountCents != 3000 {
						t.Errorf("transfer amount = %d, want 3000", tr.AmountCents)
					}
					toA += tr.AmountCents
				}
				if toA != 6000 {
					t.Errorf("total to A = %d, want 6000", toA)
				}
			},
		},
		{
			name:     "single pair",
			balances: map[string]int64{"A": 2000, "B": -2000},
			validateFunc: func(t *testing.T, transfers []models.Transfer) {
				want := []models.Transfer{{From: "B", To: "A", AmountCents: 2000}}
				if !reflect.DeepEqual(transfers, want) {
					t.Errorf("transfers = %v, want %v", transfers, want)
				}
			},
		},
		{
			name:     "largest debtor pays largest creditor first",
			balances: map[string]int64{"A": 5000, "B": 1000, "C": -4500, "D": -1500},
			validateFunc: func(t *testing.T, transfers []models.Transfer) {
				if len(transfers) != 3 {
					t.Fatalf("got %d transfers, want 3", len(transfers))
				}
				first := transfers[0]
				if first.From != "C" || first.To != "A" || first.AmountCents != 4500 {
					t.Errorf("first transfer = %v, want C->A 4500", first)
				}
			},
		},
		{
			name:     "all settled",
			balances: map[string]int64{"A": 0, "B": 0},
			validateFunc: func(t *testing.T, transfers []models.Transfer) {
				if len(transfers) != 0 {
					t.Errorf("got %d transfers, want 0", len(transfers))
				}
			},
		},
		{
			name:     "empty input",
			balances: map[string]int64{},
			validateFunc: func(t *testing.T, transfers []models.Transfer) {
				if len(transfers) != 0 {
					t.Errorf("got %d transfers, want 0", len(transfers))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, Simplify(tt.balances, DefaultEpsilon))
		})
	}
}

// Applying every transfer to the balances must zero them out, and the number
// of transfers must stay within the N-1 bound.
func TestSimplifyZeroesBalances(t *testing.T) {
	cases := []map[string]int64{
		{"A": 6000, "B": -3000, "C": -3000},
		{"A": 5000, "B": 1000, "C": -4500, "D": -1500},
		{"A": 1, "B": -1},
		{"A": 123456, "B": -100000, "C": -23456, "D": 0},
		{"W": 100, "X": 100, "Y": 100, "Z": -300},
	}

	for _, balances := range cases {
		nonzero := 0
		remaining := make(map[string]int64, len(balances))
		for id, bal := range balances {
			remaining[id] = bal
			if bal != 0 {
				nonzero++
			}
		}

		transfers := Simplify(balances, DefaultEpsilon)

		if nonzero > 0 && len(transfers) > nonzero-1 {
			t.Errorf("Simplify(%v) produced %d transfers, bound is %d", balances, len(transfers), nonzero-1)
		}
		for _, tr := range transfers {
			if tr.AmountCents <= 0 {
				t.Errorf("Simplify(%v) produced non-positive transfer %v", balances, tr)
			}
			remaining[tr.From] += tr.AmountCents
			remaining[tr.To] -= tr.AmountCents
		}
		for id, bal := range remaining {
			if bal != 0 {
				t.Errorf("Simplify(%v) leaves %s at %d, want 0", balances, id, bal)
			}
		}
	}
}

func TestSimplifyDeterministic(t *testing.T) {
	balances := map[string]int64{"A": 5000, "B": 1000, "C": -4500, "D": -1500, "E": 0}

	first := Simplify(balances, DefaultEpsilon)
	for i := 0; i < 10; i++ {
		if got := Simplify(balances, DefaultEpsilon); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestSimplifyEpsilonAbsorbsNoise(t *testing.T) {
	// One leftover cent on each side is rounding noise, not a transfer.
	balances := map[string]int64{"A": 1, "B": -1}
	if got := Simplify(balances, 1); len(got) != 0 {
		t.Errorf("Simplify with epsilon 1 = %v, want no transfers", got)
	}
}
