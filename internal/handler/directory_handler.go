package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/service"
	"github.com/noah-isme/hygiea-go-api/internal/utils"
)

// DirectoryHandler serves the grade-filtered roster projections and the fixed
// violation vocabularies the submission form is built from.
type DirectoryHandler struct {
	service service.DirectoryService
	logger  zerolog.Logger
}

// NewDirectoryHandler constructs a directory handler.
func NewDirectoryHandler(service service.DirectoryService, logger zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		logger:  logger.With().Str("component", "directory_handler").Logger(),
	}
}

// Register wires directory routes.
func (h *DirectoryHandler) Register(router fiber.Router) {
	router.Get("/inspectors", h.inspectors)
	router.Get("/classes", h.classes)
	router.Get("/vocabulary", h.vocabulary)
}

func (h *DirectoryHandler) inspectors(c *fiber.Ctx) error {
	grade, ok := gradeFromQuery(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, service.ErrInvalidGrade.Error())
	}

	return utils.SendSuccess(c, "inspectors listed", h.service.ListInspectors(c.Context(), grade))
}

func (h *DirectoryHandler) classes(c *fiber.Ctx) error {
	grade, ok := gradeFromQuery(c)
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, service.ErrInvalidGrade.Error())
	}

	return utils.SendSuccess(c, "classes listed", h.service.ListClasses(c.Context(), grade))
}

func (h *DirectoryHandler) vocabulary(c *fiber.Ctx) error {
	areas := []string{models.AreaIndoor, models.AreaOutdoor, models.AreaOther}
	items := make(map[string][]string, len(areas))
	for _, area := range areas {
		items[area] = models.ItemsForArea(area)
	}

	return utils.SendSuccess(c, "vocabulary listed", dto.VocabularyResponse{
		Areas:      areas,
		Items:      items,
		Conditions: models.Conditions(),
	})
}

func gradeFromQuery(c *fiber.Ctx) (models.Grade, bool) {
	return models.ParseGrade(strings.TrimSpace(c.Query("grade")))
}
