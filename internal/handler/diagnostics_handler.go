package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/service"
	"github.com/noah-isme/hygiea-go-api/internal/utils"
)

// DiagnosticsHandler runs the connection checks for the status panel.
type DiagnosticsHandler struct {
	service service.DiagnosticsService
	logger  zerolog.Logger
}

// NewDiagnosticsHandler constructs a diagnostics handler.
func NewDiagnosticsHandler(service service.DiagnosticsService, logger zerolog.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		service: service,
		logger:  logger.With().Str("component", "diagnostics_handler").Logger(),
	}
}

// Register wires the diagnostics route.
func (h *DiagnosticsHandler) Register(router fiber.Router) {
	router.Get("", h.check)
}

func (h *DiagnosticsHandler) check(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "connection checks", h.service.CheckConnections(c.Context()))
}
