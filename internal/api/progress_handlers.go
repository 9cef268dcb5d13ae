package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/trainerdesk/internal/calendar"
	"github.com/vytor/trainerdesk/internal/models"
)

type recordView struct {
	ID     string             `json:"id"`
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.ProgressService.Records(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	views := make([]recordView, 0, len(records))
	for _, rec := range records {
		views = append(views, recordView{
			ID:     rec.ID,
			Date:   rec.Date.In(s.location()).Format(calendar.DayLayout),
			Values: rec.Values,
		})
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"records": views})
}

func (s *Server) handleGetRecordValues(w http.ResponseWriter, r *http.Request) {
	day, err := s.dayParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	values, err := s.ProgressService.ValuesFor(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"), day)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, values)
}

type enterValuesRequest struct {
	Values map[string]string `json:"values"`
}

type enterValuesResponse struct {
	models.UpsertResult
	Message string `json:"message"`
}

func (s *Server) handleEnterRecordValues(w http.ResponseWriter, r *http.Request) {
	day, err := s.dayParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var req enterValuesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	res, err := s.ProgressService.EnterValues(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"), day, req.Values)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	lang := languageFromContext(r.Context())
	status, key := http.StatusOK, "valuesUpdated"
	if res.Created {
		status, key = http.StatusCreated, "valuesSaved"
	}
	writeJSON(w, r, status, enterValuesResponse{UpsertResult: *res, Message: s.translate(lang, key)})
}

type seriesView struct {
	MetricID         string    `json:"metric_id"`
	Name             string    `json:"name"`
	Label            string    `json:"label"`
	Labels           []string  `json:"labels,omitempty"`
	Points           []float64 `json:"points,omitempty"`
	InsufficientData bool      `json:"insufficient_data"`
	Notice           string    `json:"notice,omitempty"`
}

type statisticsView struct {
	ClientID string       `json:"client_id"`
	State    string       `json:"state"`
	Message  string       `json:"message,omitempty"`
	Series   []seriesView `json:"series"`
}

func (s *Server) statisticsView(lang string, stats *models.ClientStatistics) statisticsView {
	view := statisticsView{ClientID: stats.ClientID, State: stats.State, Series: make([]seriesView, 0, len(stats.Series))}
	switch stats.State {
	case models.StatisticsNoTemplate:
		view.Message = s.translate(lang, "noTemplateData")
	case models.StatisticsNoRecords:
		view.Message = s.translate(lang, "noProgressRecords")
	}

	for _, res := range stats.Series {
		sv := seriesView{
			MetricID:         res.MetricID,
			Name:             res.Name,
			Label:            s.translate(lang, res.Name),
			InsufficientData: res.InsufficientData,
		}
		if res.InsufficientData {
			sv.Notice = s.translate(lang, "notEnoughDataForChart")
		} else if res.Series != nil {
			sv.Labels = res.Series.Labels
			sv.Points = res.Series.Points
		}
		view.Series = append(view.Series, sv)
	}
	return view
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ProgressService.Statistics(r.Context(), trainerFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.statisticsView(languageFromContext(r.Context()), stats))
}
