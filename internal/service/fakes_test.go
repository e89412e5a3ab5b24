package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// In-memory stand-ins for the store interfaces. Each fake embeds its
// interface so only the methods a service actually calls need bodies,
// and WithTx returns the fake itself so the same state is visible
// inside and outside a transaction. A shared op log records write
// calls in order so tests can assert sequencing.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type opLog struct{ ops []string }

func (l *opLog) add(op string) { l.ops = append(l.ops, op) }

type fakeUserStore struct {
	store.UserStore
	log       *opLog
	deleted   bool
	deleteErr error
}

func (s *fakeUserStore) WithTx(*sql.Tx) store.UserStore { return s }

func (s *fakeUserStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.log.add("users.delete")
	return s.deleted, s.deleteErr
}

type fakeCategoryStore struct {
	store.CategoryStore
	byName map[string]*domain.Category
	saved  []*domain.Category
	nextID int64
}

func (s *fakeCategoryStore) WithTx(*sql.Tx) store.CategoryStore { return s }

func (s *fakeCategoryStore) GetByNameAndUserID(ctx context.Context, name string, userID int64) (*domain.Category, error) {
	if c, ok := s.byName[name]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, store.ErrCategoryNotFound
}

func (s *fakeCategoryStore) Save(ctx context.Context, category *domain.Category) (int64, error) {
	s.nextID++
	category.ID = s.nextID
	s.byName[category.Name] = category
	s.saved = append(s.saved, category)
	return category.ID, nil
}

type fakeIncomeStore struct {
	store.IncomeStore
	income     *domain.Income
	saved      []*domain.Income
	deletedIDs []int64
	nextID     int64
}

func (s *fakeIncomeStore) WithTx(*sql.Tx) store.IncomeStore { return s }

func (s *fakeIncomeStore) GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Income, error) {
	if s.income != nil && s.income.ID == id && s.income.UserID == userID {
		return s.income, nil
	}
	return nil, store.ErrIncomeNotFound
}

func (s *fakeIncomeStore) Save(ctx context.Context, income *domain.Income) (int64, error) {
	s.nextID++
	income.ID = s.nextID
	s.saved = append(s.saved, income)
	return income.ID, nil
}

func (s *fakeIncomeStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.deletedIDs = append(s.deletedIDs, id)
	return true, nil
}

type fakeExpenseStore struct {
	store.ExpenseStore
	saved   []*domain.Expense
	saveErr error
	nextID  int64
}

func (s *fakeExpenseStore) WithTx(*sql.Tx) store.ExpenseStore { return s }

func (s *fakeExpenseStore) Save(ctx context.Context, expense *domain.Expense) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.nextID++
	expense.ID = s.nextID
	s.saved = append(s.saved, expense)
	return expense.ID, nil
}

type fakeDebtStore struct {
	store.DebtStore
	debt *domain.Debt
}

func (s *fakeDebtStore) WithTx(*sql.Tx) store.DebtStore { return s }

func (s *fakeDebtStore) get(id, userID int64) (*domain.Debt, error) {
	if s.debt != nil && s.debt.ID == id && s.debt.UserID == userID {
		return s.debt, nil
	}
	return nil, store.ErrDebtNotFound
}

func (s *fakeDebtStore) GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Debt, error) {
	return s.get(id, userID)
}

func (s *fakeDebtStore) GetByIDAndUserIDForUpdate(ctx context.Context, id, userID int64) (*domain.Debt, error) {
	return s.get(id, userID)
}

type fakeDebtPaymentStore struct {
	store.DebtPaymentStore
	log          *opLog
	usedByIncome bool
	saved        []*domain.DebtPayment
	saveErr      error
	deleteAllErr error
	nextID       int64
}

func (s *fakeDebtPaymentStore) WithTx(*sql.Tx) store.DebtPaymentStore { return s }

func (s *fakeDebtPaymentStore) Save(ctx context.Context, payment *domain.DebtPayment) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.nextID++
	payment.ID = s.nextID
	s.saved = append(s.saved, payment)
	return payment.ID, nil
}

func (s *fakeDebtPaymentStore) ExistsByIncomeID(ctx context.Context, incomeID int64) (bool, error) {
	return s.usedByIncome, nil
}

func (s *fakeDebtPaymentStore) DeleteAllByUserID(ctx context.Context, userID int64) (int64, error) {
	s.log.add("debt_payments.delete_all")
	if s.deleteAllErr != nil {
		return 0, s.deleteAllErr
	}
	return int64(len(s.saved)), nil
}

type fakeSavingGoalStore struct {
	store.SavingGoalStore
	goal    *domain.SavingGoal
	updates int
}

func (s *fakeSavingGoalStore) WithTx(*sql.Tx) store.SavingGoalStore { return s }

func (s *fakeSavingGoalStore) GetByIDAndUserIDForUpdate(ctx context.Context, id, userID int64) (*domain.SavingGoal, error) {
	if s.goal != nil && s.goal.ID == id && s.goal.UserID == userID {
		return s.goal, nil
	}
	return nil, store.ErrSavingGoalNotFound
}

func (s *fakeSavingGoalStore) GetByNameAndUserID(ctx context.Context, name string, userID int64) (*domain.SavingGoal, error) {
	if s.goal != nil && s.goal.Name == name && s.goal.UserID == userID {
		return s.goal, nil
	}
	return nil, store.ErrSavingGoalNotFound
}

func (s *fakeSavingGoalStore) Update(ctx context.Context, goal *domain.SavingGoal) error {
	s.updates++
	return nil
}

type fakeSavingTransactionStore struct {
	store.SavingTransactionStore
	log          *opLog
	usedByIncome bool
	saved        []*domain.SavingTransaction
	deleteAllErr error
	nextID       int64
}

func (s *fakeSavingTransactionStore) WithTx(*sql.Tx) store.SavingTransactionStore { return s }

func (s *fakeSavingTransactionStore) Save(ctx context.Context, txn *domain.SavingTransaction) (int64, error) {
	s.nextID++
	txn.ID = s.nextID
	s.saved = append(s.saved, txn)
	return txn.ID, nil
}

func (s *fakeSavingTransactionStore) ExistsByIncomeID(ctx context.Context, incomeID int64) (bool, error) {
	return s.usedByIncome, nil
}

func (s *fakeSavingTransactionStore) DeleteAllByUserID(ctx context.Context, userID int64) (int64, error) {
	s.log.add("saving_transactions.delete_all")
	if s.deleteAllErr != nil {
		return 0, s.deleteAllErr
	}
	return int64(len(s.saved)), nil
}

// fakeStores bundles one fake per store interface around a shared op log.
type fakeStores struct {
	log                *opLog
	users              *fakeUserStore
	categories         *fakeCategoryStore
	incomes            *fakeIncomeStore
	expenses           *fakeExpenseStore
	debts              *fakeDebtStore
	debtPayments       *fakeDebtPaymentStore
	savingGoals        *fakeSavingGoalStore
	savingTransactions *fakeSavingTransactionStore
}

func newFakeStores() *fakeStores {
	log := &opLog{}
	return &fakeStores{
		log:                log,
		users:              &fakeUserStore{log: log},
		categories:         &fakeCategoryStore{byName: map[string]*domain.Category{}},
		incomes:            &fakeIncomeStore{},
		expenses:           &fakeExpenseStore{},
		debts:              &fakeDebtStore{},
		debtPayments:       &fakeDebtPaymentStore{log: log},
		savingGoals:        &fakeSavingGoalStore{},
		savingTransactions: &fakeSavingTransactionStore{log: log},
	}
}

// newTestUnitOfWork wires the fakes over a mock database so transactional
// services run against real begin/commit/rollback expectations.
func newTestUnitOfWork(t *testing.T, f *fakeStores) (*store.UnitOfWork, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	uow := store.NewUnitOfWork(
		db,
		f.users,
		f.categories,
		f.incomes,
		f.expenses,
		f.debts,
		f.debtPayments,
		f.savingGoals,
		f.savingTransactions,
	)
	return uow, mock
}
