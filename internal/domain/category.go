package domain

import (
	"fmt"
	"strings"
	"time"
)

// CategoryType classifies a category as holding income or expense rows.
type CategoryType string

// Valid category types.
const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// MaxCategoryDescriptionLen caps the free-text description column.
const MaxCategoryDescriptionLen = 255

// Category groups a user's income or expense rows under a name.
// (Name, UserID) is unique per user; the uniqueness itself is enforced by
// the store, the shape of the fields is enforced here.
type Category struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Type        CategoryType `json:"type"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewCategory creates a Category owned by userID.
// Returns an error wrapping ErrInvalidCategory if validation fails.
func NewCategory(userID int64, categoryType, name, description string) (*Category, error) {
	if userID <= 0 {
		return nil, validationErr(ErrInvalidCategory, "user_id", "must be a positive integer")
	}
	typ, err := validateCategoryType(categoryType)
	if err != nil {
		return nil, err
	}
	cleanName, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}
	cleanDesc, err := validateCategoryDescription(description)
	if err != nil {
		return nil, err
	}

	return &Category{
		UserID:      userID,
		Type:        typ,
		Name:        cleanName,
		Description: cleanDesc,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Rename updates the category name, re-validating the name rules.
func (c *Category) Rename(name string) error {
	clean, err := validateCategoryName(name)
	if err != nil {
		return err
	}
	c.Name = clean
	return nil
}

// UpdateDescription replaces the description. An empty string clears it.
func (c *Category) UpdateDescription(description string) error {
	clean, err := validateCategoryDescription(description)
	if err != nil {
		return err
	}
	c.Description = clean
	return nil
}

// Equal reports entity equality: by ID when both are persisted, otherwise
// by the (user_id, name) natural key.
func (c *Category) Equal(other *Category) bool {
	if other == nil {
		return false
	}
	if c.ID != 0 && other.ID != 0 {
		return c.ID == other.ID
	}
	return c.UserID == other.UserID && c.Name == other.Name
}

// ParseCategoryType validates a raw category type against the whitelist.
func ParseCategoryType(raw string) (CategoryType, error) {
	return validateCategoryType(raw)
}

func validateCategoryType(raw string) (CategoryType, error) {
	typ := CategoryType(strings.ToLower(trimmed(raw)))
	if typ != CategoryTypeIncome && typ != CategoryTypeExpense {
		return "", validationErr(ErrInvalidCategory, "type",
			fmt.Sprintf("must be %q or %q, got %q", CategoryTypeIncome, CategoryTypeExpense, raw))
	}
	return typ, nil
}

func validateCategoryName(name string) (string, error) {
	clean := trimmed(name)
	if len(clean) < 3 {
		return "", validationErr(ErrInvalidCategory, "name", "must be at least 3 characters")
	}
	return clean, nil
}

func validateCategoryDescription(description string) (string, error) {
	clean := trimmed(description)
	if len(clean) > MaxCategoryDescriptionLen {
		return "", validationErr(ErrInvalidCategory, "description",
			fmt.Sprintf("must be %d characters or less", MaxCategoryDescriptionLen))
	}
	return clean, nil
}

func (c *Category) String() string {
	return fmt.Sprintf("Category(id=%d, type=%s, name=%s)", c.ID, c.Type, c.Name)
}
