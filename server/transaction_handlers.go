package server

import (
	// Go Internal Packages
	"net/http"
	"strconv"

	// Local Packages
	models "quick-sale/models"

	// External Packages
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	status := models.Status(r.URL.Query().Get("status"))
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	txns, err := s.txRepo.List(r.Context(), s.tenant.ID, status, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"transactions": txns})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.txRepo.GetByID(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}
