package api

import (
	"log/slog"
	"net/http"

	"github.com/pitaka-app/pitaka-api/internal/api/shared"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/service"
)

// IncomeHandler handles income-related API requests.
type IncomeHandler struct {
	incomeService service.IncomeService
	logger        *slog.Logger
}

// NewIncomeHandler creates a new IncomeHandler with the given dependencies.
func NewIncomeHandler(incomeService service.IncomeService, logger *slog.Logger) *IncomeHandler {
	return &IncomeHandler{
		incomeService: incomeService,
		logger:        logger.With("component", "income_handler"),
	}
}

// CreateIncome handles POST /incomes.
func (h *IncomeHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req IncomeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	income, err := h.incomeService.CreateIncome(r.Context(), policy.IncomeInsertInput{
		UserID:        userID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Source:        req.Source,
		Amount:        req.Amount,
		ReceivedDate:  req.ReceivedDate,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, income)
}

// GetIncome handles GET /incomes/{id}.
func (h *IncomeHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
	userID, incomeID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	income, err := h.incomeService.GetIncome(r.Context(), userID, incomeID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, income)
}

// ListIncomes handles GET /incomes.
func (h *IncomeHandler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	incomes, err := h.incomeService.ListIncomes(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, incomes)
}

// UpdateIncome handles PUT /incomes/{id}.
func (h *IncomeHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID, incomeID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req IncomeUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	income, err := h.incomeService.UpdateIncome(r.Context(), userID, incomeID, policy.IncomeEditInput{
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Source:        req.Source,
		Amount:        req.Amount,
		ReceivedDate:  req.ReceivedDate,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, income)
}

// DeleteIncome handles DELETE /incomes/{id}.
func (h *IncomeHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID, incomeID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.incomeService.DeleteIncome(r.Context(), userID, incomeID); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
