package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/repository"
)

// SessionActor identifies the passcode session performing an action.
type SessionActor struct {
	SessionID string
	Role      string
}

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	SessionID string
	ActorRole string
	Action    string
	Entity    string
	EntityKey string
	Metadata  map[string]interface{}
}

// ActivityRecorder defines behaviour for recording audit events.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry) error
}

// ActivityService records and lists the audit trail.
type ActivityService interface {
	ActivityRecorder
	List(ctx context.Context, page, pageSize int) (dto.ActivityListResponse, error)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the audit trail service.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) error {
	if strings.TrimSpace(entry.Action) == "" {
		return fmt.Errorf("action is required")
	}
	if strings.TrimSpace(entry.Entity) == "" {
		return fmt.Errorf("entity is required")
	}

	model := models.ActivityLog{
		SessionID: strings.TrimSpace(entry.SessionID),
		ActorRole: strings.ToLower(strings.TrimSpace(entry.ActorRole)),
		Action:    strings.ToLower(strings.TrimSpace(entry.Action)),
		Entity:    strings.ToLower(strings.TrimSpace(entry.Entity)),
		EntityKey: strings.TrimSpace(entry.EntityKey),
		Metadata:  datatypes.JSONMap(entry.Metadata),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		return err
	}

	s.logger.Debug().Str("action", model.Action).Str("entity", model.Entity).Msg("audit entry recorded")

	return nil
}

func (s *activityService) List(ctx context.Context, page, pageSize int) (dto.ActivityListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	entries, total, err := s.repo.List(ctx, repository.ActivityLogFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ActivityResponse{
			ID:        entry.ID,
			SessionID: entry.SessionID,
			ActorRole: entry.ActorRole,
			Action:    entry.Action,
			Entity:    entry.Entity,
			EntityKey: entry.EntityKey,
			Metadata:  map[string]interface{}(entry.Metadata),
			CreatedAt: entry.CreatedAt,
		})
	}

	return dto.ActivityListResponse{
		Items:      items,
		TotalItems: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
