package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/observability"
	"github.com/noah-isme/hygiea-go-api/internal/repository"
)

// ErrInvalidGrade indicates the requested grade is outside the enumeration.
var ErrInvalidGrade = errors.New("grade must be 1, 2 or 3")

// DirectoryService projects the rosters per grade. Read failures degrade to
// empty lists; the diagnostics surface is the out-of-band health signal.
type DirectoryService interface {
	ListInspectors(ctx context.Context, grade models.Grade) dto.DirectoryListResponse
	ListClasses(ctx context.Context, grade models.Grade) dto.DirectoryListResponse
	InspectorInGrade(ctx context.Context, grade models.Grade, name string) (bool, bool)
	Invalidate(ctx context.Context)
}

type directoryService struct {
	repo     repository.DirectoryRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDirectoryService constructs the directory service. The TTL is clamped to
// sixty seconds so roster edits propagate quickly.
func NewDirectoryService(repo repository.DirectoryRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DirectoryService {
	if ttl <= 0 || ttl > time.Minute {
		ttl = time.Minute
	}
	return &directoryService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "directory_service").Logger(),
	}
}

func (s *directoryService) ListInspectors(ctx context.Context, grade models.Grade) dto.DirectoryListResponse {
	return s.list(ctx, grade, "inspectors", func() ([]string, error) {
		inspectors, err := s.repo.ListInspectors(ctx)
		if err != nil {
			return nil, err
		}

		prefix := grade.Prefix()
		names := make([]string, 0, len(inspectors))
		for _, inspector := range inspectors {
			if strings.HasPrefix(inspector.ClassLabel, prefix) {
				names = append(names, inspector.Name)
			}
		}
		sort.Strings(names)
		return names, nil
	})
}

func (s *directoryService) ListClasses(ctx context.Context, grade models.Grade) dto.DirectoryListResponse {
	return s.list(ctx, grade, "classes", func() ([]string, error) {
		classes, err := s.repo.ListClasses(ctx)
		if err != nil {
			return nil, err
		}

		prefix := grade.Prefix()
		seen := make(map[string]struct{}, len(classes))
		labels := make([]string, 0, len(classes))
		for _, class := range classes {
			if !strings.HasPrefix(class.Label, prefix) {
				continue
			}
			if _, dup := seen[class.Label]; dup {
				continue
			}
			seen[class.Label] = struct{}{}
			labels = append(labels, class.Label)
		}
		sort.Strings(labels)
		return labels, nil
	})
}

// InspectorInGrade reports whether the named inspector belongs to the grade's
// roster. The second return is false when the directory could not be read, in
// which case membership cannot be decided.
func (s *directoryService) InspectorInGrade(ctx context.Context, grade models.Grade, name string) (bool, bool) {
	inspectors, err := s.repo.ListInspectors(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("directory unavailable for membership check")
		return false, false
	}

	prefix := grade.Prefix()
	for _, inspector := range inspectors {
		if inspector.Name == name && strings.HasPrefix(inspector.ClassLabel, prefix) {
			return true, true
		}
	}

	return false, true
}

// Invalidate drops the cached projections for every grade. Called by the
// seeding surface after replacing the rosters.
func (s *directoryService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, grade := range []models.Grade{models.GradeFirst, models.GradeSecond, models.GradeThird} {
		for _, kind := range []string{"inspectors", "classes"} {
			if err := s.cache.Del(ctx, directoryCacheKey(kind, grade)).Err(); err != nil {
				s.logger.Warn().Err(err).Str("kind", kind).Msg("failed to invalidate directory cache")
			}
		}
	}
}

func directoryCacheKey(kind string, grade models.Grade) string {
	return fmt.Sprintf("directory:%s:%s", kind, grade.Prefix())
}

func (s *directoryService) list(ctx context.Context, grade models.Grade, kind string, load func() ([]string, error)) dto.DirectoryListResponse {
	response := dto.DirectoryListResponse{Grade: grade.Prefix(), Items: []string{}}
	if !grade.Valid() {
		return response
	}

	cacheKey := directoryCacheKey(kind, grade)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var items []string
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				observability.DirectoryReads().WithLabelValues("cache").Inc()
				response.Items = items
				response.CacheHit = true
				return response
			}
		} else if err != nil && err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read directory cache")
		}
	}

	items, err := load()
	if err != nil {
		// Degrade to an empty projection; navigation must keep working while
		// the store is unreachable.
		observability.DirectoryReads().WithLabelValues("degraded").Inc()
		s.logger.Warn().Err(err).Str("kind", kind).Str("grade", grade.Prefix()).Msg("directory read degraded to empty list")
		return response
	}

	observability.DirectoryReads().WithLabelValues("store").Inc()
	response.Items = items

	if s.cache != nil {
		if payload, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store directory cache")
			}
		}
	}

	return response
}
