package api

import (
	"net/http"

	"github.com/vytor/trainerdesk/internal/models"
)

type templateRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type templateView struct {
	ID   string        `json:"id,omitempty"`
	Rows []templateRow `json:"rows"`
}

func (s *Server) templateView(lang string, t *models.MetricTemplate) templateView {
	view := templateView{ID: t.ID, Rows: make([]templateRow, 0, len(t.Rows))}
	for _, row := range t.Rows {
		view.Rows = append(view.Rows, templateRow{ID: row.ID, Name: row.Name, Label: s.translate(lang, row.Name)})
	}
	return view
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := s.TemplateService.Get(r.Context(), trainerFromContext(r.Context()))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.templateView(languageFromContext(r.Context()), template))
}

type saveTemplateRequest struct {
	Rows []models.MetricRow `json:"rows"`
}

func (s *Server) handleSaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req saveTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	template, err := s.TemplateService.Save(r.Context(), trainerFromContext(r.Context()), req.Rows)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.templateView(languageFromContext(r.Context()), template))
}
