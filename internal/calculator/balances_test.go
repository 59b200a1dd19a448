package calculator

import (
	"math"
	"testing"

	"github.com/grouptab/grouptab/internal/models"
)

func expense(amount float64, payer string, participants []string, settlements ...models.SettlementPair) models.Expense {
	share := RoundCents(amount / float64(len(participants)))
	return models.Expense{
		ID:              "exp-" + payer,
		Amount:          amount,
		PayerID:         payer,
		ParticipantIDs:  participants,
		AmountPerPerson: share,
		Settlements:     settlements,
	}
}

func assertZeroSum(t *testing.T, balances map[string]float64) {
	t.Helper()
	var sum float64
	for _, b := range balances {
		sum += b
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("balances sum to %v, want 0", sum)
	}
}

func TestComputeGroupBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		members  []string
		want     map[string]float64
	}{
		{
			name: "single expense three participants",
			expenses: []models.Expense{
				expense(30.0, "alice", []string{"alice", "bob", "carol"}),
			},
			members: []string{"alice", "bob", "carol"},
			want:    map[string]float64{"alice": 20.0, "bob": -10.0, "carol": -10.0},
		},
		{
			name: "settled pair contributes nothing",
			expenses: []models.Expense{
				expense(30.0, "alice", []string{"alice", "bob", "carol"},
					models.SettlementPair{From: "bob", To: "alice"}),
			},
			members: []string{"alice", "bob", "carol"},
			want:    map[string]float64{"alice": 10.0, "bob": 0.0, "carol": -10.0},
		},
		{
			name: "fully settled expense zeroes everyone",
			expenses: []models.Expense{
				expense(30.0, "alice", []string{"alice", "bob", "carol"},
					models.SettlementPair{From: "bob", To: "alice"},
					models.SettlementPair{From: "carol", To: "alice"}),
			},
			members: []string{"alice", "bob", "carol"},
			want:    map[string]float64{"alice": 0.0, "bob": 0.0, "carol": 0.0},
		},
		{
			name: "offsetting expenses across payers",
			expenses: []models.Expense{
				expense(20.0, "alice", []string{"alice", "bob"}),
				expense(20.0, "bob", []string{"alice", "bob"}),
			},
			members: []string{"alice", "bob"},
			want:    map[string]float64{"alice": 0.0, "bob": 0.0},
		},
		{
			name:     "no expenses surfaces zero-balance members",
			expenses: nil,
			members:  []string{"alice", "bob"},
			want:     map[string]float64{"alice": 0.0, "bob": 0.0},
		},
		{
			name: "single-member expense is degenerate but harmless",
			expenses: []models.Expense{
				expense(15.0, "alice", []string{"alice"}),
			},
			members: []string{"alice", "bob"},
			want:    map[string]float64{"alice": 0.0, "bob": 0.0},
		},
		{
			name: "member on expense but not in directory list still counted",
			expenses: []models.Expense{
				expense(10.0, "alice", []string{"alice", "dave"}),
			},
			members: []string{"alice"},
			want:    map[string]float64{"alice": 5.0, "dave": -5.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeGroupBalances(tt.expenses, tt.members)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d balances, want %d: %v", len(got), len(tt.want), got)
			}
			for member, want := range tt.want {
				if math.Abs(got[member]-want) > 1e-9 {
					t.Errorf("balance[%s] = %v, want %v", member, got[member], want)
				}
			}
			assertZeroSum(t, got)
		})
	}
}

// TestComputeGroupBalancesZeroSum exercises the central invariant across a
// messier mix of expenses and partial settlement states than the table
// above: whatever the input, the balances must sum to zero.
func TestComputeGroupBalancesZeroSum(t *testing.T) {
	expenses := []models.Expense{
		expense(10.0, "alice", []string{"alice", "bob", "carol"}),
		expense(99.99, "bob", []string{"alice", "bob", "carol", "dave"},
			models.SettlementPair{From: "carol", To: "bob"}),
		expense(0.07, "carol", []string{"alice", "carol"}),
		expense(1234.56, "dave", []string{"bob", "carol", "dave"},
			models.SettlementPair{From: "bob", To: "dave"},
			models.SettlementPair{From: "carol", To: "dave"}),
		expense(33.33, "alice", []string{"alice", "dave"}),
	}

	got := ComputeGroupBalances(expenses, []string{"alice", "bob", "carol", "dave", "erin"})
	assertZeroSum(t, got)

	if got["erin"] != 0 {
		t.Errorf("erin appears on no expense, balance = %v, want 0", got["erin"])
	}
}
