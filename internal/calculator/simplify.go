package calculator

import (
	"sort"

	"github.com/grouptab/grouptab/internal/models"
)

// settleEpsilon is the threshold below which a balance or a remaining
// amount counts as settled. Keeps floating point noise out of the output.
const settleEpsilon = 0.01

// party is one side of the matching: a member and how much they still owe
// or are owed.
type party struct {
	member    string
	remaining float64
}

// SimplifyDebts reduces a net balance map to a small list of suggested
// payments that would bring every balance to zero.
//
// Greedy two-pointer matching: debtors and creditors are each sorted by
// magnitude descending with member id as the tie-break (an explicit
// comparator, so output never depends on map iteration or sort stability),
// then the largest debtor pays the largest creditor the smaller of their
// two remainders, and whichever side reaches zero advances.
//
// The result has at most one transaction fewer than the number of members
// with a nonzero balance, and each member's emitted total matches their
// balance magnitude to within a cent.
func SimplifyDebts(balances map[string]float64) []models.SimplifiedDebt {
	var debtors, creditors []party
	for member, balance := range balances {
		switch {
		case balance < -settleEpsilon:
			debtors = append(debtors, party{member: member, remaining: -balance})
		case balance > settleEpsilon:
			creditors = append(creditors, party{member: member, remaining: balance})
		}
	}

	byMagnitude := func(parties []party) func(i, j int) bool {
		return func(i, j int) bool {
			if parties[i].remaining != parties[j].remaining {
				return parties[i].remaining > parties[j].remaining
			}
			return parties[i].member < parties[j].member
		}
	}
	sort.Slice(debtors, byMagnitude(debtors))
	sort.Slice(creditors, byMagnitude(creditors))

	var debts []models.SimplifiedDebt
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].remaining
		if creditors[j].remaining < amount {
			amount = creditors[j].remaining
		}

		if amount > settleEpsilon {
			debts = append(debts, models.SimplifiedDebt{
				From:   debtors[i].member,
				To:     creditors[j].member,
				Amount: RoundCents(amount),
			})
		}

		debtors[i].remaining -= amount
		creditors[j].remaining -= amount

		if debtors[i].remaining <= settleEpsilon {
			i++
		}
		if creditors[j].remaining <= settleEpsilon {
			j++
		}
	}

	return debts
}
