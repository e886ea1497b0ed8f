package http

import (
	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/metrics"
	"github.com/MKhiriev/post-board/internal/ratelimit"
	"github.com/MKhiriev/post-board/internal/service"
	"github.com/MKhiriev/post-board/internal/store"
)

// Admission bundles the traffic-control pieces every non-operational
// request passes through.
type Admission struct {
	Controller *ratelimit.Controller
	ClientIP   *ratelimit.IPResolver
}

type Handler struct {
	services  *service.Services
	admission Admission
	health    store.Pinger
	metrics   *metrics.Metrics
	settings  config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, admission Admission, health store.Pinger, metrics *metrics.Metrics, settings config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		admission: admission,
		health:    health,
		metrics:   metrics,
		settings:  settings,
		logger:    logger,
	}
}
