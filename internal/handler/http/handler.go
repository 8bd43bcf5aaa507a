package http

import (
	"net/http"

	"github.com/mkarev/go-user-service/internal/logger"
	"github.com/mkarev/go-user-service/internal/service"
	"github.com/mkarev/go-user-service/internal/utils"
	"github.com/mkarev/go-user-service/models"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// writeError writes the uniform JSON error envelope with the given message
// and status code.
func writeError(w http.ResponseWriter, message string, status int) {
	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}
