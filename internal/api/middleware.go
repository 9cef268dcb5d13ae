package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/trainerdesk/internal/errors"
	"github.com/vytor/trainerdesk/internal/logger"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const (
	trainerContextKey  contextKey = "trainer"
	languageContextKey contextKey = "language"

	trainerHeader     = "X-Trainer-ID"
	trainerCookieName = "trainer_id"
)

// trainerFromContext returns the caller's trainer id, or "" when the request
// carried none.
func trainerFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(trainerContextKey).(string); ok {
		return v
	}
	return ""
}

func languageFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(languageContextKey).(string); ok {
		return v
	}
	return ""
}

// trainerMiddleware reads the trainer id from the X-Trainer-ID header, then
// from the trainer_id cookie. Requests without one still pass through; the
// services reject them.
func trainerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trainerID := strings.TrimSpace(r.Header.Get(trainerHeader))
		if trainerID == "" {
			if cookie, err := r.Cookie(trainerCookieName); err == nil {
				trainerID = strings.TrimSpace(cookie.Value)
			}
		}
		if trainerID == "" {
			logger.FromContext(r.Context()).Debug("request without trainer identity")
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), trainerContextKey, trainerID)
		ctx = logger.NewContext(ctx, logger.FromContext(ctx).WithTrainer(trainerID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) languageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Catalog == nil {
			next.ServeHTTP(w, r)
			return
		}
		lang := s.Catalog.Negotiate(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", lang)
		ctx := context.WithValue(r.Context(), languageContextKey, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clearTrainerCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    trainerCookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
}

func setTrainerCookie(w http.ResponseWriter, trainerID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     trainerCookieName,
		Value:    trainerID,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// generateRequestID creates a random request ID.
func generateRequestID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}

		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		r = r.WithContext(logger.NewContext(r.Context(), log))
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		log.Debug("request started")
		next.ServeHTTP(wrapped, r)

		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": time.Since(start).Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// metricsMiddleware records request counts and latency per route pattern, so
// /api/clients/{id} is one series regardless of the id.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		begin := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.Metrics.RequestServed(r.Method, route, wrapped.status, time.Since(begin).Seconds())
	})
}

// recoveryMiddleware recovers from panics and answers with a JSON 500.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				s.Metrics.PanicRecovered()
				s.handleError(w, r, errors.NewInternalError(nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// timeoutMiddleware wraps a handler with a timeout.
func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, `{"error":{"code":"INTERNAL_ERROR","message":"request timeout"}}`)
	}
}
