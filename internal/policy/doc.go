// Package policy contains the stateless request-shape validators that sit
// between untrusted input and entity construction. Every insert validation
// follows the same algorithm: require fields, trim strings, drop anything
// outside the whitelist (the typed input structs make mass assignment
// impossible by construction), run the shared per-primitive validators,
// and hand back a fully-typed cleaned value. Edit validations accept
// partial input and fail when nothing valid remains; deletion validations
// take already-fetched related records and reject references or ownership
// mismatches.
//
// The money, date and bounded-enum parsers live in validators.go and are
// shared by every policy so the rules cannot diverge.
package policy
