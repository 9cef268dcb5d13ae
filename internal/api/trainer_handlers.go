package api

import (
	"net/http"
	"strings"

	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
)

type sessionRequest struct {
	TrainerID string `json:"trainer_id"`
}

// handleStartSession remembers the trainer id in a cookie for browser clients.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	trainerID := strings.TrimSpace(req.TrainerID)
	if trainerID == "" {
		log.Warn("start session with empty trainer id")
		s.handleError(w, r, errors.NewNotAuthenticatedError())
		return
	}

	profile, err := s.TrainerService.Profile(r.Context(), trainerID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	setTrainerCookie(w, trainerID)
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	clearTrainerCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.TrainerService.Profile(r.Context(), trainerFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	profile, err := s.TrainerService.UpdateUsername(r.Context(), trainerFromContext(r.Context()), req.Username)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}
