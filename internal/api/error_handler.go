package api

import (
	"net/http"

	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
)

type fieldError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorBody struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Fields  map[string]fieldError `json:"fields,omitempty"`
}

// handleError centralizes error handling for HTTP responses
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	lang := languageFromContext(r.Context())
	body := errorBody{Code: appErr.Code, Message: appErr.Message}
	if appErr.Key != "" {
		body.Message = s.translate(lang, appErr.Key)
	}
	if len(appErr.Fields) > 0 {
		body.Fields = make(map[string]fieldError, len(appErr.Fields))
		for field, reason := range appErr.Fields {
			body.Fields[field] = fieldError{Reason: reason, Message: s.translate(lang, reason)}
		}
	}

	writeJSON(w, r, appErr.Status, map[string]any{"error": body})
}
