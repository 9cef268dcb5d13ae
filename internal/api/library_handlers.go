package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.LibraryService.Folders(r.Context(), trainerFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"folders": folders})
}

type createFolderRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	folder, err := s.LibraryService.CreateFolder(r.Context(), trainerFromContext(r.Context()), req.Name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, folder)
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.LibraryService.Videos(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"videos": videos})
}

type addVideoRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s *Server) handleAddVideo(w http.ResponseWriter, r *http.Request) {
	var req addVideoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	video, err := s.LibraryService.AddVideo(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"), req.Name, req.URL)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, video)
}
