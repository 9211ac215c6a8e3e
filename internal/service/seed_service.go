package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService replaces the directory rosters from a token-gated payload.
type SeedService interface {
	SeedDirectory(ctx context.Context, token string, req dto.SeedDirectoryRequest) (dto.SeedDirectoryResponse, error)
}

type seedService struct {
	directory repository.DirectoryRepository
	caches    DirectoryService
	enabled   bool
	token     string
	logger    zerolog.Logger
}

// NewSeedService constructs the roster seeding service.
func NewSeedService(directory repository.DirectoryRepository, caches DirectoryService, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		directory: directory,
		caches:    caches,
		enabled:   enabled,
		token:     token,
		logger:    logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedDirectory(ctx context.Context, token string, req dto.SeedDirectoryRequest) (dto.SeedDirectoryResponse, error) {
	if !s.enabled {
		return dto.SeedDirectoryResponse{}, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return dto.SeedDirectoryResponse{}, ErrSeedUnauthorized
	}

	inspectors := make([]models.Inspector, 0, len(req.Inspectors))
	for _, item := range req.Inspectors {
		name := strings.TrimSpace(item.Name)
		label := strings.TrimSpace(item.ClassLabel)
		if name == "" || label == "" {
			continue
		}
		inspectors = append(inspectors, models.Inspector{Name: name, ClassLabel: label})
	}

	classes := make([]models.RosterClass, 0, len(req.Classes))
	for _, item := range req.Classes {
		label := strings.TrimSpace(item.Label)
		if label == "" {
			continue
		}
		classes = append(classes, models.RosterClass{Label: label, Homeroom: strings.TrimSpace(item.Homeroom)})
	}

	inspectorCount, err := s.directory.ReplaceInspectors(ctx, inspectors)
	if err != nil {
		return dto.SeedDirectoryResponse{}, err
	}

	classCount, err := s.directory.ReplaceClasses(ctx, classes)
	if err != nil {
		return dto.SeedDirectoryResponse{}, err
	}

	// The rosters changed; cached projections must not outlive the write.
	if s.caches != nil {
		s.caches.Invalidate(ctx)
	}

	s.logger.Info().Int64("inspectors", inspectorCount).Int64("classes", classCount).Msg("directory seeded")

	return dto.SeedDirectoryResponse{Inspectors: inspectorCount, Classes: classCount}, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtleConstantTimeCompare(expected, strings.TrimSpace(token))
}

func subtleConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}
