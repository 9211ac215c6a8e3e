package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/service"
	"github.com/noah-isme/hygiea-go-api/internal/utils"
)

const defaultRecentLimit = 20

// RecordHandler accepts inspection submissions and serves the recent ledger
// rows.
type RecordHandler struct {
	records service.RecordService
	drafts  service.DraftService
	logger  zerolog.Logger
}

// NewRecordHandler constructs a record handler.
func NewRecordHandler(records service.RecordService, drafts service.DraftService, logger zerolog.Logger) *RecordHandler {
	return &RecordHandler{
		records: records,
		drafts:  drafts,
		logger:  logger.With().Str("component", "record_handler").Logger(),
	}
}

// Register wires record routes.
func (h *RecordHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("/recent", h.recent)
}

func (h *RecordHandler) submit(c *fiber.Ctx) error {
	var draft dto.RecordDraft
	if err := c.BodyParser(&draft); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	batch := service.EvidenceBatch{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		batch.Files = form.File["photos"]
	}

	actor := sessionActorFromContext(c)
	result, err := h.records.Submit(c.Context(), actor, draft, batch)
	if err != nil {
		return h.submitError(c, err)
	}

	// The committed form resets for the next consecutive submission; a reset
	// failure must not mask the committed record.
	if actor.SessionID != "" {
		if _, err := h.drafts.ResetAfterSubmit(c.Context(), actor.SessionID); err != nil {
			requestLogger(h.logger, c).Warn().Err(err).Msg("draft reset after submit failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "record committed", result)
}

func (h *RecordHandler) recent(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "limit must be a non-negative integer")
	}
	if limit == 0 {
		limit = defaultRecentLimit
	}

	records, err := h.records.ListRecent(c.Context(), limit)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("recent records lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list records")
	}

	return utils.SendSuccess(c, "recent records", records)
}

func (h *RecordHandler) submitError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEvidenceRequired):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrEvidenceUploadFailed):
		return utils.SendError(c, fiber.StatusBadGateway, err.Error())
	case errors.Is(err, service.ErrUnknownVocabulary), errors.Is(err, service.ErrInspectorNotInGrade), isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAppendFailed):
		requestLogger(h.logger, c).Error().Err(err).Msg("ledger append failed")
		return utils.SendError(c, fiber.StatusBadGateway, service.ErrAppendFailed.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("record submission failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "record submission failed")
	}
}
