package domain

import "time"

// DateOf truncates a timestamp to its calendar date in UTC. Ledger dates
// carry no time-of-day semantics, so every date comparison in this package
// goes through this normalization first.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOf(time.Now())
}
