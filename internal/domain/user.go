package domain

import (
	"fmt"
	"regexp"
)

// nameRe matches letters with single spaces between words. Person names,
// category names, goal names and lender names all share this shape.
var nameRe = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)

// emailRe is the ledger's email shape: local@domain.tld.
var emailRe = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// User represents a registered user of the ledger.
// CurrentValue is a derived figure computed on demand by the dashboard
// use case; the domain layer never treats it as authoritative state.
type User struct {
	ID           int64   `json:"id"`
	Firstname    string  `json:"firstname"`
	Lastname     string  `json:"lastname"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"` // Never expose the hash in JSON
	CurrentValue float64 `json:"current_value"`
}

// NewUser creates a User with the given names and email.
// The password hash is set separately via SetPasswordHash because hashing
// is a collaborator capability, not a domain concern.
// Returns an error wrapping ErrInvalidUser if validation fails.
func NewUser(firstname, lastname, email string) (*User, error) {
	first, err := validatePersonName(firstname, "firstname")
	if err != nil {
		return nil, err
	}
	last, err := validatePersonName(lastname, "lastname")
	if err != nil {
		return nil, err
	}
	cleanEmail, err := validateEmail(email)
	if err != nil {
		return nil, err
	}

	return &User{
		Firstname: first,
		Lastname:  last,
		Email:     cleanEmail,
	}, nil
}

// SetPasswordHash records the opaque credential hash produced by the
// hashing collaborator. Returns an error if the hash is empty.
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return validationErr(ErrInvalidUser, "password_hash", "cannot be empty")
	}
	u.PasswordHash = hash
	return nil
}

// UpdateProfile updates firstname and/or lastname. Nil fields are left
// untouched. Returns an error wrapping ErrInvalidUser if a new value
// violates the name rules.
func (u *User) UpdateProfile(firstname, lastname *string) error {
	if firstname != nil {
		clean, err := validatePersonName(*firstname, "firstname")
		if err != nil {
			return err
		}
		u.Firstname = clean
	}
	if lastname != nil {
		clean, err := validatePersonName(*lastname, "lastname")
		if err != nil {
			return err
		}
		u.Lastname = clean
	}
	return nil
}

// Validate checks all user invariants. The password hash is allowed to be
// empty here: a freshly constructed user has no credential yet.
func (u *User) Validate() error {
	if _, err := validatePersonName(u.Firstname, "firstname"); err != nil {
		return err
	}
	if _, err := validatePersonName(u.Lastname, "lastname"); err != nil {
		return err
	}
	if _, err := validateEmail(u.Email); err != nil {
		return err
	}
	return nil
}

// Equal reports entity equality: by ID when both are persisted, otherwise
// by email (the natural key).
func (u *User) Equal(other *User) bool {
	if other == nil {
		return false
	}
	if u.ID != 0 && other.ID != 0 {
		return u.ID == other.ID
	}
	return u.Email == other.Email
}

func validatePersonName(name, field string) (string, error) {
	clean := trimmed(name)
	if len(clean) < 2 {
		return "", validationErr(ErrInvalidUser, field, "must be at least 2 characters")
	}
	if !nameRe.MatchString(clean) {
		return "", validationErr(ErrInvalidUser, field,
			"must contain letters only, with single spaces between words")
	}
	return clean, nil
}

func validateEmail(email string) (string, error) {
	clean := trimmed(email)
	if !emailRe.MatchString(clean) {
		return "", validationErr(ErrInvalidUser, "email", "format is invalid")
	}
	return clean, nil
}

func (u *User) String() string {
	return fmt.Sprintf("User(id=%d, email=%s, name=%s %s)", u.ID, u.Email, u.Firstname, u.Lastname)
}
