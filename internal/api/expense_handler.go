package api

import (
	"log/slog"
	"net/http"

	"github.com/pitaka-app/pitaka-api/internal/api/shared"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/service"
)

// ExpenseHandler handles expense-related API requests.
type ExpenseHandler struct {
	expenseService service.ExpenseService
	logger         *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler with the given dependencies.
func NewExpenseHandler(expenseService service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger.With("component", "expense_handler"),
	}
}

// CreateExpense handles POST /expenses.
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ExpenseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	expense, err := h.expenseService.CreateExpense(r.Context(), policy.ExpenseInsertInput{
		UserID:        userID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Payee:         req.Payee,
		Amount:        req.Amount,
		ExpenseDate:   req.ExpenseDate,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, expense)
}

// GetExpense handles GET /expenses/{id}.
func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, expenseID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(r.Context(), userID, expenseID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, expense)
}

// ListExpenses handles GET /expenses.
func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	expenses, err := h.expenseService.ListExpenses(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, expenses)
}

// UpdateExpense handles PUT /expenses/{id}.
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, expenseID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req ExpenseUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	expense, err := h.expenseService.UpdateExpense(r.Context(), userID, expenseID, policy.ExpenseEditInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Payee:         req.Payee,
		Amount:        req.Amount,
		ExpenseDate:   req.ExpenseDate,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, expense)
}

// DeleteExpense handles DELETE /expenses/{id}.
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, expenseID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(r.Context(), userID, expenseID); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
