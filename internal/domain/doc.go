// Package domain contains the in-memory business entities of the ledger:
// users, categories, debts, income, expenses, debt payments, saving goals
// and saving transactions.
//
// Entities validate every field at construction time and re-validate any
// field touched by a named mutator. They carry no persistence awareness;
// storage concerns live in the store and platform/postgres packages.
// Validation failures wrap a per-entity sentinel error (ErrInvalidDebt,
// ErrInvalidIncome, ...) and are never transient.
package domain
