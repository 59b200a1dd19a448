package service

import (
	"context"

	"github.com/grouptab/grouptab/internal/calculator"
	"github.com/grouptab/grouptab/internal/models"
	"github.com/grouptab/grouptab/internal/storage"
)

// BalanceService computes derived group views: net balances and simplified
// debts. Both are recomputed from the live expense list on every call;
// nothing here is cached or persisted, so a deleted expense disappears
// from the numbers immediately.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GetGroupBalances returns the net balance per member for a group.
// Positive means owed money, negative means owing. Members without any
// expense activity appear with a zero balance.
func (s *BalanceService) GetGroupBalances(ctx context.Context, groupID string) (map[string]float64, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return calculator.ComputeGroupBalances(expenses, group.Members), nil
}

// GetSimplifiedDebts returns the minimal suggested payments that would
// settle the group. An all-settled group yields an empty list.
func (s *BalanceService) GetSimplifiedDebts(ctx context.Context, groupID string) ([]models.SimplifiedDebt, error) {
	balances, err := s.GetGroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return calculator.SimplifyDebts(balances), nil
}
