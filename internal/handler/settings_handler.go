package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/service"
	"github.com/noah-isme/hygiea-go-api/internal/utils"
)

// SettingsHandler serves the semester start configuration.
type SettingsHandler struct {
	service   service.SettingsService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(service service.SettingsService, validate *validator.Validate, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "settings_handler").Logger(),
	}
}

// Register wires the read route available to any session.
func (h *SettingsHandler) Register(router fiber.Router) {
	router.Get("/semester-start", h.semesterStart)
}

// RegisterAdmin wires the admin-only update route.
func (h *SettingsHandler) RegisterAdmin(router fiber.Router) {
	router.Put("/semester-start", h.updateSemesterStart)
}

func (h *SettingsHandler) semesterStart(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "semester start", h.service.Describe(c.Context(), time.Now().UTC()))
}

func (h *SettingsHandler) updateSemesterStart(c *fiber.Ctx) error {
	var payload dto.SemesterStartUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "date must be formatted YYYY-MM-DD")
	}

	date, err := time.ParseInLocation("2006-01-02", payload.Date, time.UTC)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "date must be formatted YYYY-MM-DD")
	}

	if err := h.service.SetSemesterStart(c.Context(), sessionActorFromContext(c), date); err != nil {
		if errors.Is(err, service.ErrConfigMissing) {
			return utils.SendError(c, fiber.StatusConflict, "semester start setting row is missing")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("semester start update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "semester start update failed")
	}

	return utils.SendSuccess(c, "semester start updated", h.service.Describe(c.Context(), time.Now().UTC()))
}
