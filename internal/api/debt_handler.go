package api

import (
	"log/slog"
	"net/http"

	"github.com/pitaka-app/pitaka-api/internal/api/shared"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/service"
)

// DebtHandler handles debt and debt-payment API requests.
type DebtHandler struct {
	debtService        service.DebtService
	debtPaymentService service.DebtPaymentService
	logger             *slog.Logger
}

// NewDebtHandler creates a new DebtHandler with the given dependencies.
func NewDebtHandler(
	debtService service.DebtService,
	debtPaymentService service.DebtPaymentService,
	logger *slog.Logger,
) *DebtHandler {
	return &DebtHandler{
		debtService:        debtService,
		debtPaymentService: debtPaymentService,
		logger:             logger.With("component", "debt_handler"),
	}
}

// CreateDebt handles POST /debts.
func (h *DebtHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req DebtRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	debt, err := h.debtService.CreateDebt(r.Context(), policy.DebtInsertInput{
		UserID:       userID,
		Lender:       req.Lender,
		Name:         req.Name,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, debt)
}

// GetDebt handles GET /debts/{id}.
func (h *DebtHandler) GetDebt(w http.ResponseWriter, r *http.Request) {
	userID, debtID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	summary, err := h.debtService.GetDebt(r.Context(), userID, debtID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// ListDebts handles GET /debts.
func (h *DebtHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	summaries, err := h.debtService.ListDebts(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// UpdateDebt handles PUT /debts/{id}. Only the terms (principal and
// interest rate) are editable.
func (h *DebtHandler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	userID, debtID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req DebtUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	debt, err := h.debtService.UpdateDebtTerms(r.Context(), userID, debtID, policy.DebtEditInput{
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, debt)
}

// CloseDebt handles POST /debts/{id}/close.
func (h *DebtHandler) CloseDebt(w http.ResponseWriter, r *http.Request) {
	userID, debtID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	debt, err := h.debtService.CloseDebt(r.Context(), userID, debtID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, debt)
}

// ReopenDebt handles POST /debts/{id}/reopen.
func (h *DebtHandler) ReopenDebt(w http.ResponseWriter, r *http.Request) {
	userID, debtID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	debt, err := h.debtService.ReopenDebt(r.Context(), userID, debtID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, debt)
}

// DeleteDebt handles DELETE /debts/{id}.
func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID, debtID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.debtService.DeleteDebt(r.Context(), userID, debtID); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateDebtPayment handles POST /debts/{id}/payments.
func (h *DebtHandler) CreateDebtPayment(w http.ResponseWriter, r *http.Request) {
	userID, debtID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req DebtPaymentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.debtPaymentService.CreateDebtPayment(r.Context(), service.CreateDebtPaymentInput{
		UserID:        userID,
		DebtID:        debtID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// ListDebtPayments handles GET /debts/{id}/payments.
func (h *DebtHandler) ListDebtPayments(w http.ResponseWriter, r *http.Request) {
	userID, debtID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	payments, err := h.debtPaymentService.ListDebtPayments(r.Context(), userID, debtID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, payments)
}
