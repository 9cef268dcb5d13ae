package api

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vytor/trainerdesk/internal/i18n"
	"github.com/vytor/trainerdesk/internal/metrics"
	"github.com/vytor/trainerdesk/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	TrainerService  services.TrainerService
	ClientService   services.ClientService
	TemplateService services.TemplateService
	ProgressService services.ProgressService
	ScheduleService services.ScheduleService
	LibraryService  services.LibraryService

	Catalog        *i18n.Catalog
	Metrics        *metrics.Manager
	Gatherer       prometheus.Gatherer
	DB             Pinger
	Location       *time.Location
	RequestTimeout time.Duration
}

func (s *Server) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *Server) translate(lang, key string) string {
	if s.Catalog == nil {
		return key
	}
	return s.Catalog.Translate(lang, key)
}
