package cloudinary

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName      string
	APIKey         string
	APISecret      string
	Folder         string
	ThumbnailWidth int
}

// Service implements the evidence BlobStorage interface using Cloudinary.
// Creation and the public-read grant are two sequential API calls, so a blob
// can exist in an unlisted state when the grant fails.
type Service struct {
	client         *cloudinary.Cloudinary
	cloudName      string
	folder         string
	thumbnailWidth int
	logger         zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	width := cfg.ThumbnailWidth
	if width <= 0 {
		width = 400
	}

	return &Service{
		client:         cld,
		cloudName:      cfg.CloudName,
		folder:         strings.Trim(cfg.Folder, "/"),
		thumbnailWidth: width,
		logger:         logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Create stores the blob under the configured folder and returns its assigned
// identifier. The blob is not publicly readable until GrantPublicRead succeeds.
func (s *Service) Create(ctx context.Context, name string, reader io.Reader) (string, error) {
	params := uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     strings.TrimSuffix(name, extension(name)),
		ResourceType: "image",
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("blob created")

	return result.PublicID, nil
}

// GrantPublicRead flips the blob's access control to anonymous read.
func (s *Service) GrantPublicRead(ctx context.Context, id string) error {
	_, err := s.client.Admin.UpdateAsset(ctx, admin.UpdateAssetParams{
		PublicID:      id,
		AccessControl: []map[string]string{{"access_type": "anonymous"}},
	})
	if err != nil {
		return fmt.Errorf("failed to grant public read on %s: %w", id, err)
	}

	return nil
}

// ThumbnailURL builds the stable fixed-width delivery URL for a blob id.
func (s *Service) ThumbnailURL(id string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/c_limit,w_%d/%s", s.cloudName, s.thumbnailWidth, id)
}

// Ping verifies the credentials against the Cloudinary admin API.
func (s *Service) Ping(ctx context.Context) error {
	result, err := s.client.Admin.Ping(ctx)
	if err != nil {
		return fmt.Errorf("cloudinary ping failed: %w", err)
	}
	if result != nil && result.Status != "" && !strings.EqualFold(result.Status, "ok") {
		return fmt.Errorf("cloudinary ping returned status %q", result.Status)
	}

	return nil
}

func extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx:]
}
