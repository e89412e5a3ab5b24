package api

import (
	"log/slog"
	"net/http"

	"github.com/pitaka-app/pitaka-api/internal/api/shared"
	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/service"
)

// CategoryHandler handles category-related API requests.
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler with the given dependencies.
func NewCategoryHandler(categoryService service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger.With("component", "category_handler"),
	}
}

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), policy.CategoryInsertInput{
		UserID:      userID,
		Type:        req.Type,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// GetCategory handles GET /categories/{id}.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), userID, categoryID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// ListCategories handles GET /categories. An optional ?type=income|expense
// query filters by category type.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var (
		categories []*domain.Category
		err        error
	)
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		categoryType, parseErr := domain.ParseCategoryType(typeParam)
		if parseErr != nil {
			HandleServiceError(w, r, parseErr)
			return
		}
		categories, err = h.categoryService.ListCategoriesByType(r.Context(), userID, categoryType)
	} else {
		categories, err = h.categoryService.ListCategories(r.Context(), userID)
	}
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// UpdateCategory handles PUT /categories/{id}.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req CategoryUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), userID, categoryID, policy.CategoryEditInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/{id}.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, categoryID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
