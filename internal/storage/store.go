// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/grouptab/grouptab/internal/models"
)

// ErrNotFound is returned when a group or expense id does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. The group.ID field is populated
	// by the store if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its ordered member list.
	// Returns ErrNotFound for unknown ids.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMembers appends members to a group, skipping any that are
	// already present.
	AddGroupMembers(ctx context.Context, groupID string, members []string) error

	// CreateExpense persists a new expense with its participants.
	// The expense.ID field is populated by the store if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense including participants and
	// settlement pairs. Returns ErrNotFound for unknown ids.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense rewrites an expense's fields and participant list.
	// Settlement rows are left untouched.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense; participants and settlements
	// cascade. Returns ErrNotFound for unknown ids.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByGroup retrieves all expenses for a group, newest
	// first, each fully populated.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// AddSettlement records a (from, to) settlement pair for an expense
	// as a single atomic insert. Recording an existing pair is a no-op,
	// so concurrent callers cannot drop each other's marks.
	AddSettlement(ctx context.Context, expenseID, from, to string) error

	// RemoveSettlement deletes a settlement pair as a single atomic
	// delete. Removing an absent pair is a no-op.
	RemoveSettlement(ctx context.Context, expenseID, from, to string) error

	// Close releases any resources held by the store.
	Close() error
}
