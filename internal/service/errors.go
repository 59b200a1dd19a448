// Package service implements the ledger's business operations on top of a
// storage.Store: expense mutations, settlement toggles, and the derived
// balance and settle-up reads. All validation happens here, before any
// store write; rejected operations never leave partial state behind.
package service

import (
	"errors"

	"github.com/grouptab/grouptab/internal/storage"
)

var (
	// ErrInvalidAmount rejects expenses with a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrInvalidParticipantSet rejects an empty participant list, a payer
	// missing from the participants, or an id that is not a group member.
	ErrInvalidParticipantSet = errors.New("invalid participant set")

	// ErrPayerRemoval rejects removing the current payer from an expense.
	ErrPayerRemoval = errors.New("cannot remove the payer from an expense")

	// ErrMinParticipant rejects removing the last non-payer participant.
	ErrMinParticipant = errors.New("cannot remove the last non-payer participant")

	// ErrInvalidSettlementPair rejects settlement marks where from == to,
	// to is not the payer, or from is not a current participant.
	ErrInvalidSettlementPair = errors.New("invalid settlement pair")

	// ErrNotFound is returned for unknown group or expense ids.
	ErrNotFound = storage.ErrNotFound
)
