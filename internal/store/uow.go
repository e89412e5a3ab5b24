package store

import (
	"context"
	"database/sql"
)

// UnitOfWork bundles every store behind a single database handle so
// multi-entity operations can run atomically. The zero value is not
// usable; construct one with NewUnitOfWork.
type UnitOfWork struct {
	db *sql.DB

	Users              UserStore
	Categories         CategoryStore
	Incomes            IncomeStore
	Expenses           ExpenseStore
	Debts              DebtStore
	DebtPayments       DebtPaymentStore
	SavingGoals        SavingGoalStore
	SavingTransactions SavingTransactionStore
}

// NewUnitOfWork creates a UnitOfWork over the given database handle and
// store set. The stores must share the same handle or transactional
// rebinding will cross connection boundaries.
func NewUnitOfWork(
	db *sql.DB,
	users UserStore,
	categories CategoryStore,
	incomes IncomeStore,
	expenses ExpenseStore,
	debts DebtStore,
	debtPayments DebtPaymentStore,
	savingGoals SavingGoalStore,
	savingTransactions SavingTransactionStore,
) *UnitOfWork {
	return &UnitOfWork{
		db:                 db,
		Users:              users,
		Categories:         categories,
		Incomes:            incomes,
		Expenses:           expenses,
		Debts:              debts,
		DebtPayments:       debtPayments,
		SavingGoals:        savingGoals,
		SavingTransactions: savingTransactions,
	}
}

// WithTransaction runs fn inside a single database transaction. The
// UnitOfWork passed to fn has every store rebound to that transaction;
// writes made through it either all commit or all roll back. Any error
// out of fn or the commit is returned wrapped in a TransactionError so
// callers can detect rollback with errors.Is(err, ErrTransactionFailed)
// while the cause stays reachable through Unwrap.
func (u *UnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context, uow *UnitOfWork) error) error {
	err := RunInTransaction(ctx, u.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, u.withTx(tx))
	})
	if err != nil {
		return &TransactionError{Err: err}
	}
	return nil
}

// withTx returns a shallow copy of the UnitOfWork with every store
// bound to the transaction. The copy carries no db handle so nested
// WithTransaction calls fail fast instead of silently opening a second
// transaction.
func (u *UnitOfWork) withTx(tx *sql.Tx) *UnitOfWork {
	return &UnitOfWork{
		Users:              u.Users.WithTx(tx),
		Categories:         u.Categories.WithTx(tx),
		Incomes:            u.Incomes.WithTx(tx),
		Expenses:           u.Expenses.WithTx(tx),
		Debts:              u.Debts.WithTx(tx),
		DebtPayments:       u.DebtPayments.WithTx(tx),
		SavingGoals:        u.SavingGoals.WithTx(tx),
		SavingTransactions: u.SavingTransactions.WithTx(tx),
	}
}
