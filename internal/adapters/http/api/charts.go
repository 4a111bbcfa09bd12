package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ChartsHandler serves generated charts.
type ChartsHandler struct {
	deps Dependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleGetChart handles GET /charts/{id}/{difficulty} requests.
func (h *ChartsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	songID, difficulty := vars["id"], vars["difficulty"]

	chart, err := h.deps.Chart(r.Context(), songID, difficulty)
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
	writeJSON(w, http.StatusOK, chart)
}
