package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Parallel()

	t.Run("creates category with trimmed fields", func(t *testing.T) {
		t.Parallel()

		cat, err := NewCategory(1, "Expense", "  Groceries  ", " Weekly food runs ")
		require.NoError(t, err)

		assert.Equal(t, int64(1), cat.UserID)
		assert.Equal(t, CategoryTypeExpense, cat.Type)
		assert.Equal(t, "Groceries", cat.Name)
		assert.Equal(t, "Weekly food runs", cat.Description)
	})

	t.Run("empty description is allowed", func(t *testing.T) {
		t.Parallel()

		cat, err := NewCategory(1, "income", "Salary", "")
		require.NoError(t, err)
		assert.Empty(t, cat.Description)
	})

	tests := []struct {
		name         string
		userID       int64
		categoryType string
		catName      string
		description  string
	}{
		{name: "zero user id", userID: 0, categoryType: "income", catName: "Salary"},
		{name: "unknown type", userID: 1, categoryType: "transfer", catName: "Salary"},
		{name: "name shorter than 3 characters", userID: 1, categoryType: "income", catName: "ab"},
		{
			name:         "description over 255 characters",
			userID:       1,
			categoryType: "income",
			catName:      "Salary",
			description:  strings.Repeat("x", 256),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("rejects "+tc.name, func(t *testing.T) {
			t.Parallel()

			cat, err := NewCategory(tc.userID, tc.categoryType, tc.catName, tc.description)

			assert.Nil(t, cat)
			assert.ErrorIs(t, err, ErrInvalidCategory)
		})
	}
}

func TestCategoryRename(t *testing.T) {
	t.Parallel()

	cat, err := NewCategory(1, "expense", "Groceries", "")
	require.NoError(t, err)

	require.NoError(t, cat.Rename("  Food  "))
	assert.Equal(t, "Food", cat.Name)

	err = cat.Rename("ab")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, "Food", cat.Name)
}

func TestCategoryUpdateDescription(t *testing.T) {
	t.Parallel()

	cat, err := NewCategory(1, "expense", "Groceries", "old")
	require.NoError(t, err)

	require.NoError(t, cat.UpdateDescription("new description"))
	assert.Equal(t, "new description", cat.Description)

	require.NoError(t, cat.UpdateDescription(""))
	assert.Empty(t, cat.Description)

	err = cat.UpdateDescription(strings.Repeat("x", 300))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCategoryEqual(t *testing.T) {
	t.Parallel()

	t.Run("persisted categories compare by id", func(t *testing.T) {
		t.Parallel()

		a := &Category{ID: 1, UserID: 1, Name: "Groceries"}
		b := &Category{ID: 1, UserID: 2, Name: "Other"}
		c := &Category{ID: 2, UserID: 1, Name: "Groceries"}

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
	})

	t.Run("unpersisted categories compare by natural key", func(t *testing.T) {
		t.Parallel()

		a := &Category{UserID: 1, Name: "Groceries"}
		b := &Category{UserID: 1, Name: "Groceries"}
		c := &Category{UserID: 2, Name: "Groceries"}

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c))
		assert.False(t, a.Equal(nil))
	})
}

func TestParseCategoryType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    CategoryType
		wantErr bool
	}{
		{name: "income", raw: "income", want: CategoryTypeIncome},
		{name: "expense", raw: "expense", want: CategoryTypeExpense},
		{name: "mixed case with spaces", raw: " Income ", want: CategoryTypeIncome},
		{name: "unknown type", raw: "transfer", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCategoryType(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
