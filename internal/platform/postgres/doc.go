// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX so it can run against the
// shared *sql.DB or a transaction handed out by the unit of work.
package postgres
