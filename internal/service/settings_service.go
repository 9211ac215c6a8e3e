package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/repository"
	"github.com/noah-isme/hygiea-go-api/internal/schoolweek"
)

var (
	// ErrConfigMissing indicates the settings key does not exist.
	ErrConfigMissing = errors.New("configuration key missing")
	// ErrConfigMalformed indicates the stored value is not a valid ISO date.
	ErrConfigMalformed = errors.New("configuration value malformed")
)

const isoDateLayout = "2006-01-02"

// SemesterStart is the resolved semester start date. Fallback marks a
// substituted value so callers can render it distinctly from a real one.
type SemesterStart struct {
	Date     time.Time
	Fallback bool
}

// SettingsService reads and updates the semester configuration.
type SettingsService interface {
	SemesterStart(ctx context.Context) (SemesterStart, error)
	SetSemesterStart(ctx context.Context, actor SessionActor, date time.Time) error
	Describe(ctx context.Context, today time.Time) dto.SemesterStartResponse
}

type settingsService struct {
	repo     repository.SettingsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	recorder ActivityRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSettingsService constructs the settings service.
func NewSettingsService(repo repository.SettingsRepository, cache *redis.Client, ttl time.Duration, recorder ActivityRecorder, logger zerolog.Logger) SettingsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &settingsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		recorder: recorder,
		logger:   logger.With().Str("component", "settings_service").Logger(),
		now:      time.Now,
	}
}

func settingsCacheKey(key string) string {
	return "settings:" + key
}

// SemesterStart resolves the configured date. A missing key or unparsable
// value degrades to today's date with Fallback set, and the typed error is
// returned alongside so callers can classify the failure.
func (s *settingsService) SemesterStart(ctx context.Context) (SemesterStart, error) {
	value, err := s.lookup(ctx, models.SettingSemesterStart)
	if err != nil {
		return SemesterStart{Date: s.today(), Fallback: true}, err
	}

	parsed, parseErr := time.ParseInLocation(isoDateLayout, value, time.UTC)
	if parseErr != nil {
		s.logger.Warn().Str("value", value).Msg("semester start value is not an ISO date")
		return SemesterStart{Date: s.today(), Fallback: true}, ErrConfigMalformed
	}

	return SemesterStart{Date: parsed}, nil
}

// SetSemesterStart writes the new date and invalidates the cached read so the
// next lookup can never observe the old value.
func (s *settingsService) SetSemesterStart(ctx context.Context, actor SessionActor, date time.Time) error {
	value := date.Format(isoDateLayout)

	updated, err := s.repo.UpdateValue(ctx, models.SettingSemesterStart, value)
	if err != nil {
		return err
	}
	if !updated {
		return ErrConfigMissing
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, settingsCacheKey(models.SettingSemesterStart)).Err(); err != nil {
			// A stale cache entry would serve the old date for up to one TTL;
			// surface the failure instead of silently accepting that window.
			return err
		}
	}

	s.record(ctx, actor, "settings.updated", models.SettingSemesterStart, map[string]interface{}{"value": value})
	s.logger.Info().Str("value", value).Msg("semester start updated")

	return nil
}

// Describe resolves the semester start together with the current week number
// for the given date, flagging fallback and pre-semester states.
func (s *settingsService) Describe(ctx context.Context, today time.Time) dto.SemesterStartResponse {
	start, err := s.SemesterStart(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("semester start degraded to fallback")
	}

	week := schoolweek.WeekOf(today, start.Date)

	return dto.SemesterStartResponse{
		Date:        start.Date.Format(isoDateLayout),
		Fallback:    start.Fallback,
		CurrentWeek: week,
		PreSemester: week <= 0,
	}
}

func (s *settingsService) lookup(ctx context.Context, key string) (string, error) {
	cacheKey := settingsCacheKey(key)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		} else if err != nil && err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read settings cache")
		}
	}

	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrConfigMissing
		}
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, setting.Value, s.cacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to store settings cache")
		}
	}

	return setting.Value, nil
}

func (s *settingsService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *settingsService) record(ctx context.Context, actor SessionActor, action, entityKey string, metadata map[string]interface{}) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, ActivityEntry{
		SessionID: actor.SessionID,
		ActorRole: actor.Role,
		Action:    action,
		Entity:    "setting",
		EntityKey: entityKey,
		Metadata:  metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record settings audit entry")
	}
}
