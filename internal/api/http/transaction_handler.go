package http

import (
	"context"
	"net/http"
	"strconv"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/service"

	"github.com/gorilla/mux"
)

type TransactionHandler struct {
	txnSvc service.TransactionService
}

func NewTransactionHandler(txnSvc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnSvc: txnSvc}
}

type transactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	txns, err := h.txnSvc.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transactionsResponse{Transactions: txns})
}

func (h *TransactionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.txnSvc.Confirm)
}

func (h *TransactionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.txnSvc.Cancel)
}

func (h *TransactionHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID, txnID int32) (*domain.Transaction, error),
) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	txnID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := op(r.Context(), userID, int32(txnID))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]*domain.Transaction{"transaction": txn})
}
