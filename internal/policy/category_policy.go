package policy

import (
	"strings"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// CategoryInsertInput is the untrusted category-creation shape.
type CategoryInsertInput struct {
	UserID      int64
	Type        string
	Name        string
	Description string
}

// CategoryInsert is the cleaned category-creation data.
type CategoryInsert struct {
	UserID      int64
	Type        domain.CategoryType
	Name        string
	Description string
}

// CategoryEditInput is the untrusted category-edit shape. Nil fields were
// not submitted.
type CategoryEditInput struct {
	Name        *string
	Description *string
}

// CategoryEdit is the cleaned category-edit data.
type CategoryEdit struct {
	Name        string
	Description *string
}

// CategoryPolicy validates category creation, renaming and deletion.
type CategoryPolicy struct{}

// ValidateInsert checks the category-creation form.
func (CategoryPolicy) ValidateInsert(in CategoryInsertInput) (CategoryInsert, error) {
	if err := requireFields(
		idField("user_id", in.UserID),
		stringField("type", in.Type),
		stringField("name", in.Name),
	); err != nil {
		return CategoryInsert{}, err
	}

	userID, err := ValidateID(in.UserID, "User ID")
	if err != nil {
		return CategoryInsert{}, err
	}

	typ := domain.CategoryType(strings.ToLower(strings.TrimSpace(in.Type)))
	if typ != domain.CategoryTypeIncome && typ != domain.CategoryTypeExpense {
		return CategoryInsert{}, Errorf("Type should be income or expense only")
	}

	name, err := ValidateString(in.Name, "Category Name", 3)
	if err != nil {
		return CategoryInsert{}, err
	}

	return CategoryInsert{
		UserID:      userID,
		Type:        typ,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}, nil
}

// ValidateDuplicateName rejects an insert or rename when another category
// with the same name already exists for the user.
func (CategoryPolicy) ValidateDuplicateName(existing *domain.Category) error {
	if existing != nil {
		return Errorf("You already have %q as a category", existing.Name)
	}
	return nil
}

// ValidateEdit checks a category rename. The category must have been
// fetched (scoped to the acting user) and a valid name must be present.
func (CategoryPolicy) ValidateEdit(in CategoryEditInput, category *domain.Category) (CategoryEdit, error) {
	if category == nil {
		return CategoryEdit{}, Errorf("Category not found")
	}
	if in.Name == nil && in.Description == nil {
		return CategoryEdit{}, Errorf("No valid fields provided for update")
	}
	if in.Name == nil {
		return CategoryEdit{}, Errorf("Name should be present")
	}

	name, err := ValidateString(*in.Name, "Category Name", 3)
	if err != nil {
		return CategoryEdit{}, err
	}

	out := CategoryEdit{Name: name}
	if in.Description != nil {
		clean := strings.TrimSpace(*in.Description)
		out.Description = &clean
	}
	return out, nil
}

// ValidateDeletion rejects deleting a category that is missing, in use by
// income/expense rows, or owned by someone else.
func (CategoryPolicy) ValidateDeletion(category *domain.Category, actingUserID int64, inUse bool) error {
	if category == nil {
		return Errorf("No Category instance found")
	}
	if inUse {
		return Errorf("Cannot delete category in use %q", category.Name)
	}
	if category.UserID != actingUserID {
		return Errorf("Cannot delete category user don't own %q", category.Name)
	}
	return nil
}

// ValidateExistence rejects operations on a category that was not found
// under the acting user.
func (CategoryPolicy) ValidateExistence(category *domain.Category) error {
	if category == nil {
		return Errorf("No category found")
	}
	return nil
}
