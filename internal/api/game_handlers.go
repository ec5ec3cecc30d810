package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/intuition/internal/intuition"
	"github.com/vytor/intuition/internal/models"
)

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"games": s.GameService.ListGames(r.Context())})
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	gameID := models.GameID(chi.URLParam(r, "gameID"))

	state, err := s.GameService.GetDifficulty(r.Context(), profile.ID, gameID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

type computeIndexRequest struct {
	Scores  []float64 `json:"scores"`
	Weights []float64 `json:"weights,omitempty"`
}

// handleComputeIndex evaluates the intuition index over caller-supplied scores.
func (s *Server) handleComputeIndex(w http.ResponseWriter, r *http.Request) {
	var req computeIndexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]int{"index": intuition.ComputeIndex(req.Scores, req.Weights)})
}
