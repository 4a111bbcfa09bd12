// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rhythmlab/tactus/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ListSongs returns descriptors for every prepared song.
	ListSongs(ctx context.Context) ([]model.SongMetadata, error)
	// Analysis returns the stored analysis for a song.
	Analysis(ctx context.Context, songID string) (model.Analysis, error)
	// Chart returns one stored chart.
	Chart(ctx context.Context, songID, difficulty string) (model.Chart, error)
}

// Server wires HTTP routes for the chart API.
type Server struct {
	healthHandler   *HealthHandler
	songsHandler    *SongsHandler
	analysisHandler *AnalysisHandler
	chartsHandler   *ChartsHandler
	metricsHandler  *MetricsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		songsHandler:    NewSongsHandler(deps),
		analysisHandler: NewAnalysisHandler(deps),
		chartsHandler:   NewChartsHandler(deps),
		metricsHandler:  NewMetricsHandler(),
	}
}

// Router builds the route table for the API.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	r.HandleFunc("/songs", MetricsMiddleware(s.songsHandler.HandleListSongs, "songs")).Methods(http.MethodGet)
	r.HandleFunc("/songs/{id}/analysis", MetricsMiddleware(s.analysisHandler.HandleGetAnalysis, "analysis")).Methods(http.MethodGet)
	r.HandleFunc("/charts/{id}/{difficulty}", MetricsMiddleware(s.chartsHandler.HandleGetChart, "charts")).Methods(http.MethodGet)
	r.Handle("/metrics", s.metricsHandler.Handler()).Methods(http.MethodGet)
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
