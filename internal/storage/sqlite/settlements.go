package sqlite

import (
	"context"
	"fmt"
)

// AddSettlement records a settlement pair for an expense. The insert is a
// single statement against the primary-keyed settlements table, so two
// clients marking different pairs at once can never clobber each other the
// way a read-modify-write of the whole set would. INSERT OR IGNORE makes
// the operation idempotent.
func (s *SQLiteStore) AddSettlement(ctx context.Context, expenseID, from, to string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO settlements (expense_id, from_member, to_member) VALUES (?, ?, ?)",
		expenseID, from, to,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// RemoveSettlement deletes a settlement pair. Removing a pair that was
// never recorded is a no-op.
func (s *SQLiteStore) RemoveSettlement(ctx context.Context, expenseID, from, to string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM settlements WHERE expense_id = ? AND from_member = ? AND to_member = ?",
		expenseID, from, to,
	)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	return nil
}
