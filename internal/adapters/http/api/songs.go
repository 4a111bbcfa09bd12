package api

import (
	"net/http"

	"github.com/rhythmlab/tactus/internal/domain/model"
)

// SongsHandler serves the prepared song listing.
type SongsHandler struct {
	deps Dependencies
}

// NewSongsHandler creates a new songs handler.
func NewSongsHandler(deps Dependencies) *SongsHandler {
	return &SongsHandler{deps: deps}
}

// HandleListSongs handles GET /songs requests.
func (h *SongsHandler) HandleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.deps.ListSongs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err)
		return
	}
	if songs == nil {
		songs = []model.SongMetadata{}
	}
	writeJSON(w, http.StatusOK, songs)
}
