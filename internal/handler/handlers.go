package handler

import (
	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/handler/http"
	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/metrics"
	"github.com/MKhiriev/post-board/internal/service"
	"github.com/MKhiriev/post-board/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, admission http.Admission, health store.Pinger, metrics *metrics.Metrics, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, admission, health, metrics, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
