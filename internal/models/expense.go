package models

// SettlementPair records that a participant's share of an expense has been
// paid back to the payer. Presence in Expense.Settlements is the only state;
// marking an already-marked pair is a no-op.
type SettlementPair struct {
	// From is the member whose share has been paid.
	From string

	// To is the member who received the payment. Always the expense's
	// payer; the ledger does not model third-party debts.
	To string
}

// Expense represents a shared cost fronted by one payer and split equally
// among its participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g., "Groceries").
	Description string

	// Amount is the total cost of the expense. Always positive.
	Amount float64

	// PayerID is the member who fronted the money. Invariant: PayerID is
	// always one of ParticipantIDs.
	PayerID string

	// ParticipantIDs is the non-empty list of members sharing the cost,
	// including the payer.
	ParticipantIDs []string

	// AmountPerPerson is each participant's equal share, rounded half up
	// to the cent. Recomputed on every amount or participant change; the
	// cent remainder lost to rounding is accepted, not redistributed.
	AmountPerPerson float64

	// Settlements is the set of recorded repayments for this expense.
	Settlements []SettlementPair

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64
}

// HasParticipant reports whether memberID is a current participant.
func (e *Expense) HasParticipant(memberID string) bool {
	for _, p := range e.ParticipantIDs {
		if p == memberID {
			return true
		}
	}
	return false
}

// IsPaid reports whether the (from, to) settlement pair has been recorded.
func (e *Expense) IsPaid(from, to string) bool {
	for _, s := range e.Settlements {
		if s.From == from && s.To == to {
			return true
		}
	}
	return false
}

// IsFullyPaid reports whether every participant except the payer has a
// settlement entry directed at the payer. Stale entries left behind by
// removed participants are not counted, so they can never make an expense
// look settled.
func (e *Expense) IsFullyPaid() bool {
	for _, p := range e.ParticipantIDs {
		if p == e.PayerID {
			continue
		}
		if !e.IsPaid(p, e.PayerID) {
			return false
		}
	}
	return true
}
