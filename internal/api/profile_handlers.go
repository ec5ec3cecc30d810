package api

import (
	"net/http"

	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
)

type createProfileRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"profiles": profiles})
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("profile ready: id=%d, username=%s", profile.ID, profile.Username)
	writeJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var update models.ProfileUpdate
	if err := decodeJSON(w, r, &update); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.UpdateProfile(r.Context(), id, update)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("profile deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
