package api

import (
	"net/http"

	"github.com/vytor/trainerdesk/internal/calendar"
	"github.com/vytor/trainerdesk/internal/models"
)

func (s *Server) handleDaySchedule(w http.ResponseWriter, r *http.Request) {
	day, err := s.dayParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	appointments, err := s.ScheduleService.DaySchedule(r.Context(), trainerFromContext(r.Context()), day)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	lang := languageFromContext(r.Context())
	for i := range appointments {
		if appointments[i].ClientName == "" {
			appointments[i].ClientName = s.translate(lang, "unknownClient")
		}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"date":         day.Format(calendar.DayLayout),
		"appointments": appointments,
	})
}

func (s *Server) handleAddAppointment(w http.ResponseWriter, r *http.Request) {
	var in models.NewAppointment
	if err := decodeJSON(w, r, &in); err != nil {
		s.handleError(w, r, err)
		return
	}

	appointment, err := s.ScheduleService.AddAppointment(r.Context(), trainerFromContext(r.Context()), in)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, appointment)
}
