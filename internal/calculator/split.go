// Package calculator implements the pure arithmetic of the ledger: equal
// share computation, group balance aggregation, and greedy debt
// simplification. Everything here is a synchronous function of its inputs;
// storage and validation live elsewhere.
package calculator

import (
	"fmt"
	"math"
)

// RoundCents rounds a monetary value half up to the nearest cent.
func RoundCents(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// ComputeShare returns each participant's equal share of an expense,
// rounded half up to the cent.
//
// The sum of shares may fall short of amount by up to
// 0.01 * (participantCount - 1); that cent remainder is accepted and left
// unassigned rather than redistributed.
func ComputeShare(amount float64, participantCount int) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", amount)
	}
	if participantCount < 1 {
		return 0, fmt.Errorf("must have at least one participant, got %d", participantCount)
	}
	return RoundCents(amount / float64(participantCount)), nil
}
