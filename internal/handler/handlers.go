package handler

import (
	"github.com/mkarev/go-user-service/internal/config"
	"github.com/mkarev/go-user-service/internal/handler/http"
	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, logger),
	}, nil
}
