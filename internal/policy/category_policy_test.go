package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

func TestCategoryValidateInsert(t *testing.T) {
	t.Parallel()

	var policy CategoryPolicy

	t.Run("accepts and normalizes the type", func(t *testing.T) {
		t.Parallel()

		got, err := policy.ValidateInsert(CategoryInsertInput{
			UserID:      1,
			Type:        " Expense ",
			Name:        " Groceries ",
			Description: " weekly runs ",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.CategoryTypeExpense, got.Type)
		assert.Equal(t, "Groceries", got.Name)
		assert.Equal(t, "weekly runs", got.Description)
	})

	t.Run("lists missing fields", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateInsert(CategoryInsertInput{UserID: 1})
		assert.EqualError(t, err, "Missing fields: type, name")
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateInsert(CategoryInsertInput{UserID: 1, Type: "transfer", Name: "Groceries"})
		assert.EqualError(t, err, "Type should be income or expense only")
	})

	t.Run("rejects a short name", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateInsert(CategoryInsertInput{UserID: 1, Type: "income", Name: "ab"})
		assert.EqualError(t, err, "Category Name must be at least 3 characters long")
	})
}

func TestCategoryValidateDuplicateName(t *testing.T) {
	t.Parallel()

	var policy CategoryPolicy

	assert.NoError(t, policy.ValidateDuplicateName(nil))
	assert.EqualError(t, policy.ValidateDuplicateName(&domain.Category{Name: "Groceries"}),
		`You already have "Groceries" as a category`)
}

func TestCategoryValidateEdit(t *testing.T) {
	t.Parallel()

	var policy CategoryPolicy
	category := &domain.Category{ID: 1, UserID: 1, Name: "Groceries"}

	t.Run("missing category", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateEdit(CategoryEditInput{}, nil)
		assert.EqualError(t, err, "Category not found")
	})

	t.Run("no fields submitted", func(t *testing.T) {
		t.Parallel()

		_, err := policy.ValidateEdit(CategoryEditInput{}, category)
		assert.EqualError(t, err, "No valid fields provided for update")
	})

	t.Run("description alone is not enough", func(t *testing.T) {
		t.Parallel()

		desc := "new description"
		_, err := policy.ValidateEdit(CategoryEditInput{Description: &desc}, category)
		assert.EqualError(t, err, "Name should be present")
	})

	t.Run("accepts a rename with description", func(t *testing.T) {
		t.Parallel()

		name := " Food "
		desc := " all food spend "
		got, err := policy.ValidateEdit(CategoryEditInput{Name: &name, Description: &desc}, category)
		require.NoError(t, err)

		assert.Equal(t, "Food", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "all food spend", *got.Description)
	})
}

func TestCategoryValidateDeletion(t *testing.T) {
	t.Parallel()

	var policy CategoryPolicy
	category := &domain.Category{ID: 1, UserID: 1, Name: "Groceries"}

	assert.NoError(t, policy.ValidateDeletion(category, 1, false))
	assert.EqualError(t, policy.ValidateDeletion(nil, 1, false), "No Category instance found")
	assert.EqualError(t, policy.ValidateDeletion(category, 1, true),
		`Cannot delete category in use "Groceries"`)
	assert.EqualError(t, policy.ValidateDeletion(category, 2, false),
		`Cannot delete category user don't own "Groceries"`)
}

func TestCategoryValidateExistence(t *testing.T) {
	t.Parallel()

	var policy CategoryPolicy

	assert.NoError(t, policy.ValidateExistence(&domain.Category{ID: 1}))
	assert.EqualError(t, policy.ValidateExistence(nil), "No category found")
}
