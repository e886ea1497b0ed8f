package service

import (
	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/store"
)

type Services struct {
	AuthService AuthService
	UserService UserService
	PostService PostService
}

// NewServices wires the services on top of storages. Every service is
// wrapped in its validation layer.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger, opts ...Option) *Services {
	return &Services{
		AuthService: NewAuthValidationService().Wrap(
			NewAuthService(storages.UserRepository, cfg.App, logger, opts...),
		),
		UserService: NewUserValidationService().Wrap(
			NewUserService(storages.UserRepository, storages.PostRepository, logger, opts...),
		),
		PostService: NewPostValidationService().Wrap(
			NewPostService(storages.PostRepository, logger, opts...),
		),
	}
}
