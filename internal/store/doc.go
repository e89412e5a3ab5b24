// Package store defines the persistence contracts of the ledger: one
// store interface per entity family, the DBTX abstraction over
// connections and transactions, the transaction runner, and the
// UnitOfWork that bundles every store behind a single atomic scope.
// Implementations live in platform/postgres.
package store
