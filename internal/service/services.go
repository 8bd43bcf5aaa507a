package service

import (
	"github.com/mkarev/go-user-service/internal/audit"
	"github.com/mkarev/go-user-service/internal/config"
	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/store"
)

type Services struct {
	AuthService AuthService
	UserService UserService
}

func NewServices(repositories *store.Repositories, auditSink audit.Sink, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(repositories.UserRepository, auditSink, cfg.Auth, logger),
		UserService: NewUserService(repositories.UserRepository, auditSink, cfg.Auth, logger),
	}
}
