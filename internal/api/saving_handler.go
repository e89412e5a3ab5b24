package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/pitaka-app/pitaka-api/internal/api/shared"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/service"
)

// SavingHandler handles saving goal and saving transaction API requests.
type SavingHandler struct {
	savingService service.SavingService
	logger        *slog.Logger
}

// NewSavingHandler creates a new SavingHandler with the given dependencies.
func NewSavingHandler(savingService service.SavingService, logger *slog.Logger) *SavingHandler {
	return &SavingHandler{
		savingService: savingService,
		logger:        logger.With("component", "saving_handler"),
	}
}

// CreateGoal handles POST /goals.
func (h *SavingHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	goal, err := h.savingService.CreateGoal(r.Context(), policy.SavingGoalInsertInput{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		Remarks:      req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, goal)
}

// GetGoal handles GET /goals/{id}.
func (h *SavingHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	summary, err := h.savingService.GetGoal(r.Context(), userID, goalID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// ListGoals handles GET /goals.
func (h *SavingHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	listing, err := h.savingService.ListGoals(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, listing)
}

// UpdateGoal handles PUT /goals/{id}.
func (h *SavingHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req GoalUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	goal, err := h.savingService.UpdateGoal(r.Context(), userID, goalID, policy.SavingGoalEditInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		Remarks:      req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, goal)
}

// DeleteGoal handles DELETE /goals/{id}.
func (h *SavingHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.savingService.DeleteGoal(r.Context(), userID, goalID); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Deposit handles POST /goals/{id}/deposit.
func (h *SavingHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.savingService.Deposit)
}

// Withdraw handles POST /goals/{id}/withdraw.
func (h *SavingHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, h.savingService.Withdraw)
}

func (h *SavingHandler) record(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, policy.SavingTransactionInsertInput) (*service.SavingTransactionResult, error),
) {
	userID, goalID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req SavingTransactionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := fn(r.Context(), policy.SavingTransactionInsertInput{
		UserID:  userID,
		GoalID:  goalID,
		Amount:  req.Amount,
		TxtDate: req.TxtDate,
		Remarks: req.Remarks,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// ListGoalTransactions handles GET /goals/{id}/transactions.
func (h *SavingHandler) ListGoalTransactions(w http.ResponseWriter, r *http.Request) {
	userID, goalID, ok := handleUserIDAndPathID(w, r, "id", h.logger)
	if !ok {
		return
	}

	transactions, err := h.savingService.ListGoalTransactions(r.Context(), userID, goalID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, transactions)
}
