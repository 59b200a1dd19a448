package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouptab/grouptab/internal/models"
	"github.com/grouptab/grouptab/internal/storage"
	"github.com/grouptab/grouptab/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestGroup(t *testing.T, store storage.Store, members ...string) *models.Group {
	t.Helper()
	group, err := NewGroupService(store).CreateGroup(context.Background(), "Trip", members)
	require.NoError(t, err)
	return group
}

func TestCreateExpense(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()
	group := newTestGroup(t, store, "alice", "bob", "carol")

	t.Run("valid expense computes share and starts unsettled", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, group.ID, "Dinner", 30.0, "alice", []string{"alice", "bob", "carol"})
		require.NoError(t, err)
		assert.NotEmpty(t, expense.ID)
		assert.NotZero(t, expense.CreatedAt)
		assert.Equal(t, 10.00, expense.AmountPerPerson)
		assert.Empty(t, expense.Settlements)
		assert.False(t, expense.IsFullyPaid())
	})

	t.Run("uneven amount keeps the cent remainder unassigned", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, group.ID, "Taxi", 10.0, "alice", []string{"alice", "bob", "carol"})
		require.NoError(t, err)
		assert.Equal(t, 3.33, expense.AmountPerPerson)
		assert.NotEqual(t, expense.Amount, expense.AmountPerPerson*3)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := svc.CreateExpense(ctx, group.ID, "Free", 0, "alice", []string{"alice", "bob"})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := svc.CreateExpense(ctx, group.ID, "Refund", -5, "alice", []string{"alice", "bob"})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("empty participants rejected", func(t *testing.T) {
		_, err := svc.CreateExpense(ctx, group.ID, "Nobody", 10, "alice", nil)
		assert.ErrorIs(t, err, ErrInvalidParticipantSet)
	})

	t.Run("payer outside participants rejected", func(t *testing.T) {
		_, err := svc.CreateExpense(ctx, group.ID, "Dinner", 10, "alice", []string{"bob", "carol"})
		assert.ErrorIs(t, err, ErrInvalidParticipantSet)
	})

	t.Run("non-member participant rejected", func(t *testing.T) {
		_, err := svc.CreateExpense(ctx, group.ID, "Dinner", 10, "alice", []string{"alice", "mallory"})
		assert.ErrorIs(t, err, ErrInvalidParticipantSet)
	})

	t.Run("unknown group rejected", func(t *testing.T) {
		_, err := svc.CreateExpense(ctx, "no-such-group", "Dinner", 10, "alice", []string{"alice"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateExpense(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()
	group := newTestGroup(t, store, "alice", "bob", "carol")

	create := func(t *testing.T) *models.Expense {
		t.Helper()
		expense, err := svc.CreateExpense(ctx, group.ID, "Dinner", 30.0, "alice", []string{"alice", "bob", "carol"})
		require.NoError(t, err)
		return expense
	}

	t.Run("amount change recomputes share against current count", func(t *testing.T) {
		expense := create(t)
		amount := 45.0
		updated, err := svc.UpdateExpense(ctx, expense.ID, ExpensePatch{Amount: &amount})
		require.NoError(t, err)
		assert.Equal(t, 15.00, updated.AmountPerPerson)

		reloaded, err := svc.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, 45.0, reloaded.Amount)
		assert.Equal(t, 15.00, reloaded.AmountPerPerson)
	})

	t.Run("description only leaves share untouched", func(t *testing.T) {
		expense := create(t)
		desc := "Fancy dinner"
		updated, err := svc.UpdateExpense(ctx, expense.ID, ExpensePatch{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Fancy dinner", updated.Description)
		assert.Equal(t, expense.AmountPerPerson, updated.AmountPerPerson)
	})

	t.Run("payer change requires existing participant", func(t *testing.T) {
		expense := create(t)
		payer := "bob"
		updated, err := svc.UpdateExpense(ctx, expense.ID, ExpensePatch{PayerID: &payer})
		require.NoError(t, err)
		assert.Equal(t, "bob", updated.PayerID)

		outsider := "mallory"
		_, err = svc.UpdateExpense(ctx, expense.ID, ExpensePatch{PayerID: &outsider})
		assert.ErrorIs(t, err, ErrInvalidParticipantSet)
	})

	t.Run("payer change does not migrate settlement marks", func(t *testing.T) {
		expense := create(t)
		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))

		payer := "carol"
		_, err := svc.UpdateExpense(ctx, expense.ID, ExpensePatch{PayerID: &payer})
		require.NoError(t, err)

		reloaded, err := svc.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		// The old mark survives but points at the previous payer, so it
		// no longer counts toward the predicate.
		assert.True(t, reloaded.IsPaid("bob", "alice"))
		assert.False(t, reloaded.IsPaid("bob", "carol"))
		assert.False(t, reloaded.IsFullyPaid())
	})

	t.Run("invalid amount rejected without side effects", func(t *testing.T) {
		expense := create(t)
		amount := -1.0
		_, err := svc.UpdateExpense(ctx, expense.ID, ExpensePatch{Amount: &amount})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		reloaded, err := svc.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, 30.0, reloaded.Amount)
	})

	t.Run("unknown expense", func(t *testing.T) {
		desc := "x"
		_, err := svc.UpdateExpense(ctx, "no-such-expense", ExpensePatch{Description: &desc})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAddParticipant(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()
	group := newTestGroup(t, store, "alice", "bob", "carol", "dave")

	expense, err := svc.CreateExpense(ctx, group.ID, "Dinner", 30.0, "alice", []string{"alice", "bob", "carol"})
	require.NoError(t, err)

	t.Run("adding recomputes share", func(t *testing.T) {
		updated, err := svc.AddParticipant(ctx, expense.ID, "dave")
		require.NoError(t, err)
		assert.Len(t, updated.ParticipantIDs, 4)
		assert.Equal(t, 7.50, updated.AmountPerPerson)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		_, err := svc.AddParticipant(ctx, expense.ID, "dave")
		assert.ErrorIs(t, err, ErrInvalidParticipantSet)
	})

	t.Run("non-member rejected", func(t *testing.T) {
		_, err := svc.AddParticipant(ctx, expense.ID, "mallory")
		assert.ErrorIs(t, err, ErrInvalidParticipantSet)
	})
}

func TestRemoveParticipant(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()
	group := newTestGroup(t, store, "alice", "bob", "carol")

	t.Run("removal recomputes share and keeps stale marks harmless", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, group.ID, "Dinner", 30.0, "alice", []string{"alice", "bob", "carol"})
		require.NoError(t, err)
		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "carol", "alice"))

		updated, err := svc.RemoveParticipant(ctx, expense.ID, "carol")
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, updated.ParticipantIDs)
		assert.Equal(t, 15.00, updated.AmountPerPerson)

		// Carol's old mark survives in storage but is unreachable: it
		// neither errors nor counts toward fully paid.
		assert.True(t, updated.IsPaid("carol", "alice"))
		assert.False(t, updated.IsFullyPaid())

		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))
		fullyPaid, err := svc.IsFullyPaid(ctx, expense.ID)
		require.NoError(t, err)
		assert.True(t, fullyPaid)
	})

	t.Run("payer cannot be removed", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, group.ID, "Taxi", 20.0, "alice", []string{"alice", "bob"})
		require.NoError(t, err)
		_, err = svc.RemoveParticipant(ctx, expense.ID, "alice")
		assert.ErrorIs(t, err, ErrPayerRemoval)
	})

	t.Run("last non-payer cannot be removed", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, group.ID, "Taxi", 20.0, "alice", []string{"alice", "bob"})
		require.NoError(t, err)
		_, err = svc.RemoveParticipant(ctx, expense.ID, "bob")
		assert.ErrorIs(t, err, ErrMinParticipant)
	})

	t.Run("non-participant rejected", func(t *testing.T) {
		expense, err := svc.CreateExpense(ctx, group.ID, "Taxi", 20.0, "alice", []string{"alice", "bob", "carol"})
		require.NoError(t, err)
		_, err = svc.RemoveParticipant(ctx, expense.ID, "mallory")
		assert.ErrorIs(t, err, ErrInvalidParticipantSet)
	})
}

func TestSettlementLedger(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()
	group := newTestGroup(t, store, "alice", "bob", "carol")

	expense, err := svc.CreateExpense(ctx, group.ID, "Dinner", 30.0, "alice", []string{"alice", "bob", "carol"})
	require.NoError(t, err)

	t.Run("mark and query", func(t *testing.T) {
		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))

		paid, err := svc.IsPaid(ctx, expense.ID, "bob", "alice")
		require.NoError(t, err)
		assert.True(t, paid)

		paid, err = svc.IsPaid(ctx, expense.ID, "carol", "alice")
		require.NoError(t, err)
		assert.False(t, paid)
	})

	t.Run("mark is idempotent", func(t *testing.T) {
		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))
		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))

		reloaded, err := svc.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Len(t, reloaded.Settlements, 1)
	})

	t.Run("fully paid once every non-payer settles", func(t *testing.T) {
		fullyPaid, err := svc.IsFullyPaid(ctx, expense.ID)
		require.NoError(t, err)
		assert.False(t, fullyPaid)

		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "carol", "alice"))
		fullyPaid, err = svc.IsFullyPaid(ctx, expense.ID)
		require.NoError(t, err)
		assert.True(t, fullyPaid)
	})

	t.Run("unmark round-trip restores prior state", func(t *testing.T) {
		before, err := svc.GetExpense(ctx, expense.ID)
		require.NoError(t, err)

		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))
		require.NoError(t, svc.UnmarkPaid(ctx, expense.ID, "bob", "alice"))
		require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))

		after, err := svc.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Settlements, after.Settlements)

		// Unmark of an absent pair is a no-op, not an error.
		require.NoError(t, svc.UnmarkPaid(ctx, expense.ID, "bob", "alice"))
		require.NoError(t, svc.UnmarkPaid(ctx, expense.ID, "bob", "alice"))
	})

	t.Run("invalid pairs rejected", func(t *testing.T) {
		err := svc.MarkPaid(ctx, expense.ID, "alice", "alice")
		assert.ErrorIs(t, err, ErrInvalidSettlementPair)

		err = svc.MarkPaid(ctx, expense.ID, "bob", "carol")
		assert.ErrorIs(t, err, ErrInvalidSettlementPair)

		err = svc.MarkPaid(ctx, expense.ID, "mallory", "alice")
		assert.ErrorIs(t, err, ErrInvalidSettlementPair)
	})

	t.Run("unknown expense", func(t *testing.T) {
		err := svc.MarkPaid(ctx, "no-such-expense", "bob", "alice")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteExpense(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store)
	ctx := context.Background()
	group := newTestGroup(t, store, "alice", "bob")

	expense, err := svc.CreateExpense(ctx, group.ID, "Dinner", 20.0, "alice", []string{"alice", "bob"})
	require.NoError(t, err)
	require.NoError(t, svc.MarkPaid(ctx, expense.ID, "bob", "alice"))

	require.NoError(t, svc.DeleteExpense(ctx, expense.ID))

	_, err = svc.GetExpense(ctx, expense.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteExpense(ctx, expense.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	expenses, err := svc.ListExpenses(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
