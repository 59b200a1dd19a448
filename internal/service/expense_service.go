package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/grouptab/grouptab/internal/calculator"
	"github.com/grouptab/grouptab/internal/models"
	"github.com/grouptab/grouptab/internal/storage"
)

// ExpenseService validates and applies expense mutations and settlement
// toggles. Every mutation that touches the amount or participant set
// recomputes AmountPerPerson against the resulting participant count.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpensePatch carries the optional fields of an expense update. Nil
// fields are left unchanged.
type ExpensePatch struct {
	Description *string
	Amount      *float64
	PayerID     *string
}

// CreateExpense validates and persists a new expense with empty
// settlements. All participant ids, payer included, must be members of the
// owning group.
func (s *ExpenseService) CreateExpense(ctx context.Context, groupID, description string, amount float64, payerID string, participantIDs []string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAmount, amount)
	}
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("%w: participant list is empty", ErrInvalidParticipantSet)
	}
	if !contains(participantIDs, payerID) {
		return nil, fmt.Errorf("%w: payer %s is not a participant", ErrInvalidParticipantSet, payerID)
	}
	if hasDuplicates(participantIDs) {
		return nil, fmt.Errorf("%w: duplicate participant ids", ErrInvalidParticipantSet)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, p := range participantIDs {
		if !group.HasMember(p) {
			return nil, fmt.Errorf("%w: %s is not a member of group %s", ErrInvalidParticipantSet, p, groupID)
		}
	}

	share, err := calculator.ComputeShare(amount, len(participantIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	expense := &models.Expense{
		GroupID:         groupID,
		Description:     description,
		Amount:          amount,
		PayerID:         payerID,
		ParticipantIDs:  participantIDs,
		AmountPerPerson: share,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", groupID,
		"amount", amount, "participants", len(participantIDs))
	return expense, nil
}

// GetExpense retrieves a single expense.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListExpenses retrieves all expenses for a group, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// UpdateExpense applies a patch to an expense. An amount change recomputes
// the share against the current participant count. A payer change requires
// the new payer to already be a participant; existing settlement marks are
// not migrated to the new payer.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, patch ExpensePatch) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidAmount, *patch.Amount)
	}
	if patch.PayerID != nil && !expense.HasParticipant(*patch.PayerID) {
		return nil, fmt.Errorf("%w: new payer %s is not a participant", ErrInvalidParticipantSet, *patch.PayerID)
	}

	if patch.Description != nil {
		expense.Description = *patch.Description
	}
	if patch.PayerID != nil {
		expense.PayerID = *patch.PayerID
	}
	if patch.Amount != nil {
		expense.Amount = *patch.Amount
		share, err := calculator.ComputeShare(expense.Amount, len(expense.ParticipantIDs))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		expense.AmountPerPerson = share
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, err
	}
	return expense, nil
}

// AddParticipant appends a group member to an expense and recomputes the
// share. Rejects ids already on the expense or outside the group.
func (s *ExpenseService) AddParticipant(ctx context.Context, expenseID, memberID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.HasParticipant(memberID) {
		return nil, fmt.Errorf("%w: %s already participates", ErrInvalidParticipantSet, memberID)
	}

	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(memberID) {
		return nil, fmt.Errorf("%w: %s is not a member of group %s", ErrInvalidParticipantSet, memberID, expense.GroupID)
	}

	expense.ParticipantIDs = append(expense.ParticipantIDs, memberID)
	share, err := calculator.ComputeShare(expense.Amount, len(expense.ParticipantIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	expense.AmountPerPerson = share

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("AddParticipant failed", "expense_id", expenseID, "member_id", memberID, "error", err)
		return nil, err
	}
	return expense, nil
}

// RemoveParticipant drops a member from an expense and recomputes the
// share. The payer cannot be removed, nor can the last non-payer
// participant. Settlement rows referencing the removed member stay in
// place; they simply stop counting toward the fully-paid predicate.
func (s *ExpenseService) RemoveParticipant(ctx context.Context, expenseID, memberID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if memberID == expense.PayerID {
		return nil, ErrPayerRemoval
	}
	if !expense.HasParticipant(memberID) {
		return nil, fmt.Errorf("%w: %s does not participate", ErrInvalidParticipantSet, memberID)
	}
	if nonPayerCount(expense) <= 1 {
		return nil, ErrMinParticipant
	}

	remaining := make([]string, 0, len(expense.ParticipantIDs)-1)
	for _, p := range expense.ParticipantIDs {
		if p != memberID {
			remaining = append(remaining, p)
		}
	}
	expense.ParticipantIDs = remaining

	share, err := calculator.ComputeShare(expense.Amount, len(expense.ParticipantIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	expense.AmountPerPerson = share

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("RemoveParticipant failed", "expense_id", expenseID, "member_id", memberID, "error", err)
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense. Balances need no cleanup because they
// are recomputed from the live expense list on every read.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}

// MarkPaid records that from's share of the expense has been paid to the
// payer. Idempotent; marking an already-marked pair is a no-op.
func (s *ExpenseService) MarkPaid(ctx context.Context, expenseID, from, to string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := validateSettlementPair(expense, from, to); err != nil {
		return err
	}
	return s.store.AddSettlement(ctx, expenseID, from, to)
}

// UnmarkPaid removes a settlement mark. Idempotent; unmarking an absent
// pair is a no-op.
func (s *ExpenseService) UnmarkPaid(ctx context.Context, expenseID, from, to string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := validateSettlementPair(expense, from, to); err != nil {
		return err
	}
	return s.store.RemoveSettlement(ctx, expenseID, from, to)
}

// IsPaid reports whether the (from, to) pair has a settlement mark.
func (s *ExpenseService) IsPaid(ctx context.Context, expenseID, from, to string) (bool, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return false, err
	}
	return expense.IsPaid(from, to), nil
}

// IsFullyPaid reports whether every non-payer participant has settled.
func (s *ExpenseService) IsFullyPaid(ctx context.Context, expenseID string) (bool, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return false, err
	}
	return expense.IsFullyPaid(), nil
}

// GetAmountPerPerson returns the expense's current per-participant share.
func (s *ExpenseService) GetAmountPerPerson(ctx context.Context, expenseID string) (float64, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return 0, err
	}
	return expense.AmountPerPerson, nil
}

// validateSettlementPair enforces the shape of the debts the ledger
// models: always directed at the current payer, from a current non-payer
// participant.
func validateSettlementPair(expense *models.Expense, from, to string) error {
	if from == to {
		return fmt.Errorf("%w: from and to are both %s", ErrInvalidSettlementPair, from)
	}
	if to != expense.PayerID {
		return fmt.Errorf("%w: %s is not the payer of expense %s", ErrInvalidSettlementPair, to, expense.ID)
	}
	if !expense.HasParticipant(from) {
		return fmt.Errorf("%w: %s is not a participant of expense %s", ErrInvalidSettlementPair, from, expense.ID)
	}
	return nil
}

func nonPayerCount(expense *models.Expense) int {
	count := 0
	for _, p := range expense.ParticipantIDs {
		if p != expense.PayerID {
			count++
		}
	}
	return count
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
