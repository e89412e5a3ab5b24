// Package finance holds the pure financial calculators of the ledger:
// debt interest and schedules, net worth and balance figures, transaction
// pattern analysis and saving-goal progress. Every function operates on
// already-fetched aggregate numbers or entity collections and performs no
// I/O, so the package is trivially testable and safe to call anywhere.
package finance
