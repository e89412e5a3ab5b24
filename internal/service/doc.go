// Package service provides application-level use cases over the policy,
// domain and store layers. Each use case validates input through a
// policy, constructs domain entities, and persists them through the unit
// of work so multi-entity writes stay atomic.
package service
