package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/intuition/internal/errors"
	"github.com/vytor/intuition/internal/models"
)

type createSessionRequest struct {
	GameID models.GameID `json:"game_id"`
}

type selectOptionRequest struct {
	Index *int `json:"index"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req createSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.GameID == "" {
		handleError(w, r, errors.NewValidationError("game_id", "cannot be empty"))
		return
	}

	state, err := s.SessionService.CreateSession(r.Context(), profile.ID, req.GameID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, state)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	state, err := s.SessionService.GetSession(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	state, err := s.SessionService.StartSession(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}

// handleSelectOption answers 200 even when the selection is ignored; the
// accepted flag tells the client whether it counted.
func (s *Server) handleSelectOption(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req selectOptionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Index == nil {
		handleError(w, r, errors.NewValidationError("index", "is required"))
		return
	}

	res, err := s.SessionService.SelectOption(r.Context(), profile.ID, chi.URLParam(r, "id"), *req.Index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	res, err := s.SessionService.NextRound(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	result, err := s.SessionService.EndSession(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	state, err := s.SessionService.ResetSession(r.Context(), profile.ID, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, state)
}
