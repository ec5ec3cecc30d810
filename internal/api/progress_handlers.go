package api

import (
	"net/http"

	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/services"
)

type runsResponse struct {
	Runs   []models.RunSummary `json:"runs"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.RunFilter{
		ProfileID: profile.ID,
		GameID:    models.GameID(r.URL.Query().Get("game_id")),
		Limit:     limit,
		Offset:    offset,
	}
	runs, total, err := s.ProgressService.ListRuns(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if runs == nil {
		runs = []models.RunSummary{}
	}
	writeJSON(w, r, http.StatusOK, runsResponse{Runs: runs, Total: total, Limit: services.RunPageSize(limit), Offset: offset})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	snap, err := s.ProgressService.Snapshot(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}
