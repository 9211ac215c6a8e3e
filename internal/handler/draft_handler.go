package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/service"
	"github.com/noah-isme/hygiea-go-api/internal/utils"
)

// DraftHandler serves the per-session submission form state.
type DraftHandler struct {
	service   service.DraftService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDraftHandler constructs a draft handler.
func NewDraftHandler(service service.DraftService, validate *validator.Validate, logger zerolog.Logger) *DraftHandler {
	return &DraftHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "draft_handler").Logger(),
	}
}

// Register wires draft routes.
func (h *DraftHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.update)
	router.Post("/score", h.adjustScore)
}

func (h *DraftHandler) get(c *fiber.Ctx) error {
	draft, err := h.service.Get(c.Context(), sessionIDFromContext(c))
	if err != nil {
		return h.draftError(c, err)
	}

	return utils.SendSuccess(c, "draft", draft)
}

func (h *DraftHandler) update(c *fiber.Ctx) error {
	var payload dto.DraftUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	draft, err := h.service.Update(c.Context(), sessionIDFromContext(c), payload)
	if err != nil {
		return h.draftError(c, err)
	}

	return utils.SendSuccess(c, "draft updated", draft)
}

func (h *DraftHandler) adjustScore(c *fiber.Ctx) error {
	var payload dto.ScoreAdjustRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "delta must be -1 or 1")
	}

	draft, err := h.service.AdjustScore(c.Context(), sessionIDFromContext(c), payload.Delta)
	if err != nil {
		return h.draftError(c, err)
	}

	return utils.SendSuccess(c, "score adjusted", draft)
}

func (h *DraftHandler) draftError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrDraftUnavailable) {
		return utils.SendError(c, fiber.StatusServiceUnavailable, "draft store unavailable")
	}
	requestLogger(h.logger, c).Error().Err(err).Msg("draft operation failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "draft operation failed")
}
