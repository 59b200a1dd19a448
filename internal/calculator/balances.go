package calculator

import "github.com/grouptab/grouptab/internal/models"

// ComputeGroupBalances folds a group's expenses and their settlement state
// into one net balance per member. Positive means the member is owed money,
// negative means they owe.
//
// Algorithm:
//   - Every member in members, plus anyone appearing on an expense, starts
//     at zero. Passing the group's member list surfaces zero-balance
//     members in the result.
//   - For each expense, each participant other than the payer either has a
//     settlement mark (contributes nothing; the money already changed
//     hands) or owes AmountPerPerson: debit the participant, credit the
//     payer.
//
// Every debit has a matching credit, so the returned balances always sum
// to zero regardless of expense set or settlement state.
func ComputeGroupBalances(expenses []models.Expense, members []string) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m] = 0
	}

	for i := range expenses {
		e := &expenses[i]
		if _, ok := balances[e.PayerID]; !ok {
			balances[e.PayerID] = 0
		}
		for _, p := range e.ParticipantIDs {
			if _, ok := balances[p]; !ok {
				balances[p] = 0
			}
			if p == e.PayerID {
				continue
			}
			if e.IsPaid(p, e.PayerID) {
				continue
			}
			balances[p] -= e.AmountPerPerson
			balances[e.PayerID] += e.AmountPerPerson
		}
	}

	return balances
}
