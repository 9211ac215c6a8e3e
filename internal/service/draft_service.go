package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
)

// ErrDraftUnavailable indicates the draft store could not be reached.
var ErrDraftUnavailable = errors.New("draft store unavailable")

// DraftService holds the in-progress submission form state per session, so
// concurrent sessions never share mutable state.
type DraftService interface {
	Get(ctx context.Context, sessionID string) (dto.DraftResponse, error)
	Update(ctx context.Context, sessionID string, update dto.DraftUpdateRequest) (dto.DraftResponse, error)
	AdjustScore(ctx context.Context, sessionID string, delta int) (dto.DraftResponse, error)
	ResetAfterSubmit(ctx context.Context, sessionID string) (dto.DraftResponse, error)
}

type draftService struct {
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

// NewDraftService constructs the session draft store.
func NewDraftService(cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DraftService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &draftService{
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "draft_service").Logger(),
		now:    time.Now,
	}
}

func draftKey(sessionID string) string {
	return "draft:" + sessionID
}

func (s *draftService) Get(ctx context.Context, sessionID string) (dto.DraftResponse, error) {
	return s.load(ctx, sessionID)
}

func (s *draftService) Update(ctx context.Context, sessionID string, update dto.DraftUpdateRequest) (dto.DraftResponse, error) {
	draft, err := s.load(ctx, sessionID)
	if err != nil {
		return dto.DraftResponse{}, err
	}

	apply := func(target *string, value *string) {
		if value != nil {
			*target = *value
		}
	}
	apply(&draft.InspectionDate, update.InspectionDate)
	apply(&draft.Grade, update.Grade)
	apply(&draft.ClassLabel, update.ClassLabel)
	apply(&draft.InspectorName, update.InspectorName)
	apply(&draft.Area, update.Area)
	apply(&draft.Item, update.Item)
	apply(&draft.Condition, update.Condition)
	apply(&draft.Remark, update.Remark)

	if err := s.save(ctx, sessionID, draft); err != nil {
		return dto.DraftResponse{}, err
	}

	return draft, nil
}

// AdjustScore nudges the running deduction score by delta, clamped at zero.
func (s *draftService) AdjustScore(ctx context.Context, sessionID string, delta int) (dto.DraftResponse, error) {
	draft, err := s.load(ctx, sessionID)
	if err != nil {
		return dto.DraftResponse{}, err
	}

	draft.DeductionScore += delta
	if draft.DeductionScore < 0 {
		draft.DeductionScore = 0
	}

	if err := s.save(ctx, sessionID, draft); err != nil {
		return dto.DraftResponse{}, err
	}

	return draft, nil
}

// ResetAfterSubmit zeroes the score and clears the violation fields while
// keeping inspector, class and date for the next consecutive submission.
func (s *draftService) ResetAfterSubmit(ctx context.Context, sessionID string) (dto.DraftResponse, error) {
	draft, err := s.load(ctx, sessionID)
	if err != nil {
		return dto.DraftResponse{}, err
	}

	draft.DeductionScore = 0
	draft.Area = ""
	draft.Item = ""
	draft.Condition = ""
	draft.Remark = ""

	if err := s.save(ctx, sessionID, draft); err != nil {
		return dto.DraftResponse{}, err
	}

	return draft, nil
}

func (s *draftService) load(ctx context.Context, sessionID string) (dto.DraftResponse, error) {
	if s.cache == nil {
		return dto.DraftResponse{}, ErrDraftUnavailable
	}

	cached, err := s.cache.Get(ctx, draftKey(sessionID)).Result()
	if err == redis.Nil {
		return s.emptyDraft(), nil
	}
	if err != nil {
		return dto.DraftResponse{}, fmt.Errorf("%w: %v", ErrDraftUnavailable, err)
	}

	var draft dto.DraftResponse
	if err := json.Unmarshal([]byte(cached), &draft); err != nil {
		s.logger.Warn().Err(err).Msg("discarding corrupt draft payload")
		return s.emptyDraft(), nil
	}

	return draft, nil
}

func (s *draftService) save(ctx context.Context, sessionID string, draft dto.DraftResponse) error {
	if s.cache == nil {
		return ErrDraftUnavailable
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, draftKey(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDraftUnavailable, err)
	}

	return nil
}

func (s *draftService) emptyDraft() dto.DraftResponse {
	return dto.DraftResponse{
		InspectionDate: s.now().UTC().Format(isoDateLayout),
	}
}
