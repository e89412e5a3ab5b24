package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// CategoryService provides category management operations.
type CategoryService interface {
	// CreateCategory validates and persists a new category.
	// Returns a policy error when the name is taken for this user.
	CreateCategory(ctx context.Context, in policy.CategoryInsertInput) (*domain.Category, error)

	// GetCategory retrieves one category owned by the user.
	GetCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error)

	// ListCategories lists every category owned by the user.
	ListCategories(ctx context.Context, userID int64) ([]*domain.Category, error)

	// ListCategoriesByType lists the user's categories of one type.
	ListCategoriesByType(ctx context.Context, userID int64, categoryType domain.CategoryType) ([]*domain.Category, error)

	// UpdateCategory applies a rename and/or description change.
	UpdateCategory(ctx context.Context, userID, categoryID int64, in policy.CategoryEditInput) (*domain.Category, error)

	// DeleteCategory removes a category that is not referenced by any
	// income or expense.
	DeleteCategory(ctx context.Context, userID, categoryID int64) error
}

// CategoryServiceImpl implements the CategoryService interface
type CategoryServiceImpl struct {
	uow    *store.UnitOfWork
	policy policy.CategoryPolicy
	logger *slog.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(uow *store.UnitOfWork, logger *slog.Logger) CategoryService {
	return &CategoryServiceImpl{
		uow:    uow,
		logger: logger.With("component", "category_service"),
	}
}

// CreateCategory validates and persists a new category.
func (s *CategoryServiceImpl) CreateCategory(ctx context.Context, in policy.CategoryInsertInput) (*domain.Category, error) {
	insert, err := s.policy.ValidateInsert(in)
	if err != nil {
		s.logger.Debug("category creation rejected by policy", "error", err)
		return nil, err
	}

	category, err := domain.NewCategory(insert.UserID, string(insert.Type), insert.Name, insert.Description)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		existing, err := uow.Categories.GetByNameAndUserID(ctx, insert.Name, insert.UserID)
		if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
			return err
		}
		if err := s.policy.ValidateDuplicateName(existing); err != nil {
			return err
		}
		_, err = uow.Categories.Save(ctx, category)
		return err
	})
	if err != nil {
		if policy.IsPolicyError(err) || errors.Is(err, store.ErrCategoryNameExists) {
			return nil, unwrapTransactionError(err)
		}
		s.logger.Error("failed to create category", "error", err, "user_id", insert.UserID)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created",
		"category_id", category.ID,
		"user_id", category.UserID,
		"type", category.Type)
	return category, nil
}

// GetCategory retrieves one category owned by the user.
func (s *CategoryServiceImpl) GetCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error) {
	category, err := s.uow.Categories.GetByIDAndUserID(ctx, categoryID, userID)
	if err != nil {
		if !errors.Is(err, store.ErrCategoryNotFound) {
			s.logger.Error("failed to retrieve category", "error", err, "category_id", categoryID)
		}
		return nil, err
	}
	return category, nil
}

// ListCategories lists every category owned by the user.
func (s *CategoryServiceImpl) ListCategories(ctx context.Context, userID int64) ([]*domain.Category, error) {
	categories, err := s.uow.Categories.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListCategoriesByType lists the user's categories of one type.
func (s *CategoryServiceImpl) ListCategoriesByType(
	ctx context.Context,
	userID int64,
	categoryType domain.CategoryType,
) ([]*domain.Category, error) {
	categories, err := s.uow.Categories.GetAllByUserIDAndType(ctx, userID, categoryType)
	if err != nil {
		s.logger.Error("failed to list categories by type",
			"error", err,
			"user_id", userID,
			"type", categoryType)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory applies a rename and/or description change.
func (s *CategoryServiceImpl) UpdateCategory(
	ctx context.Context,
	userID, categoryID int64,
	in policy.CategoryEditInput,
) (*domain.Category, error) {
	var updated *domain.Category
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		category, err := uow.Categories.GetByIDAndUserID(ctx, categoryID, userID)
		if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
			return err
		}
		if err := s.policy.ValidateExistence(category); err != nil {
			return err
		}

		edit, err := s.policy.ValidateEdit(in, category)
		if err != nil {
			return err
		}

		if edit.Name != category.Name {
			existing, err := uow.Categories.GetByNameAndUserID(ctx, edit.Name, userID)
			if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
				return err
			}
			if err := s.policy.ValidateDuplicateName(existing); err != nil {
				return err
			}
			if err := category.Rename(edit.Name); err != nil {
				return err
			}
		}
		if edit.Description != nil {
			if err := category.UpdateDescription(*edit.Description); err != nil {
				return err
			}
		}

		if err := uow.Categories.Update(ctx, category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, store.ErrCategoryNotFound) ||
			errors.Is(err, domain.ErrInvalidCategory) {
			return nil, err
		}
		s.logger.Error("failed to update category", "error", err, "category_id", categoryID)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info("category updated", "category_id", categoryID, "user_id", userID)
	return updated, nil
}

// DeleteCategory removes a category that is not in use.
func (s *CategoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		category, err := uow.Categories.GetByID(ctx, categoryID)
		if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
			return err
		}

		var inUse bool
		if category != nil {
			inUse, err = uow.Categories.IsInUse(ctx, categoryID)
			if err != nil {
				return err
			}
		}

		if err := s.policy.ValidateDeletion(category, userID, inUse); err != nil {
			return err
		}

		_, err = uow.Categories.Delete(ctx, categoryID)
		return err
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) {
			return err
		}
		s.logger.Error("failed to delete category", "error", err, "category_id", categoryID)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted", "category_id", categoryID, "user_id", userID)
	return nil
}

// unwrapTransactionError peels the TransactionError wrapper off an error
// that rolled back, so callers can match the underlying policy or store
// sentinel directly.
func unwrapTransactionError(err error) error {
	var txErr *store.TransactionError
	if errors.As(err, &txErr) && txErr.Err != nil {
		return txErr.Err
	}
	return err
}
