package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.metricsMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.languageMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", s.metricsHandler())

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}
		r.Use(trainerMiddleware)

		r.Post("/session", s.handleStartSession)
		r.Delete("/session", s.handleEndSession)

		r.Get("/me", s.handleProfile)
		r.Put("/me", s.handleUpdateProfile)

		r.Get("/clients", s.handleListClients)
		r.Post("/clients", s.handleCreateClient)
		r.Get("/clients/{id}", s.handleGetClient)
		r.Get("/clients/{id}/records", s.handleListRecords)
		r.Get("/clients/{id}/records/{date}", s.handleGetRecordValues)
		r.Put("/clients/{id}/records/{date}", s.handleEnterRecordValues)
		r.Get("/clients/{id}/statistics", s.handleStatistics)
		r.Get("/clients/{id}/statistics/chart", s.handleStatisticsChart)

		r.Get("/template", s.handleGetTemplate)
		r.Put("/template", s.handleSaveTemplate)

		r.Get("/schedule/{date}", s.handleDaySchedule)
		r.Post("/schedule", s.handleAddAppointment)

		r.Get("/folders", s.handleListFolders)
		r.Post("/folders", s.handleCreateFolder)
		r.Get("/folders/{id}/videos", s.handleListVideos)
		r.Post("/folders/{id}/videos", s.handleAddVideo)
	})

	return r
}

func (s *Server) metricsHandler() http.Handler {
	if s.Gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})
}
