package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// AnalysisHandler serves stored beat/energy analyses.
type AnalysisHandler struct {
	deps Dependencies
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps Dependencies) *AnalysisHandler {
	return &AnalysisHandler{deps: deps}
}

// HandleGetAnalysis handles GET /songs/{id}/analysis requests.
func (h *AnalysisHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	songID := mux.Vars(r)["id"]

	analysis, err := h.deps.Analysis(r.Context(), songID)
	if err != nil {
		if isBadRequest(err) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
