package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/trainerdesk/internal/calendar"
	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	return nil
}

// dayParam parses the {date} URL parameter as a calendar day.
func (s *Server) dayParam(r *http.Request) (time.Time, error) {
	raw := chi.URLParam(r, "date")
	day, err := calendar.ParseDay(raw, s.location())
	if err != nil {
		return time.Time{}, errors.NewValidationError("date", errors.ReasonInvalidTime)
	}
	return day, nil
}
