package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/trainerdesk/internal/models"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.ClientService.List(r.Context(), trainerFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"clients": clients})
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var in models.NewClient
	if err := decodeJSON(w, r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}

	client, err := s.ClientService.Create(r.Context(), trainerFromContext(r.Context()), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, client)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	client, err := s.ClientService.Get(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, client)
}
