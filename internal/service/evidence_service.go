package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/observability"
)

// BlobStorage abstracts the evidence blob store. Creation and the public-read
// grant are separate calls; a created blob whose grant failed stays stored but
// unlisted.
type BlobStorage interface {
	Create(ctx context.Context, name string, reader io.Reader) (string, error)
	GrantPublicRead(ctx context.Context, id string) error
	ThumbnailURL(id string) string
}

// EvidenceBatch is one ordered set of photos attached to a single draft.
type EvidenceBatch struct {
	DeclaredDate string
	ClassLabel   string
	Files        []*multipart.FileHeader
}

// EvidenceService stores photo evidence and returns stable URLs.
type EvidenceService interface {
	UploadBatch(ctx context.Context, batch EvidenceBatch) dto.EvidenceResult
}

type evidenceService struct {
	storage BlobStorage
	logger  zerolog.Logger
	maxSize int64
	tracer  trace.Tracer
}

// NewEvidenceService constructs the evidence uploader.
func NewEvidenceService(storage BlobStorage, maxSizeMB int, logger zerolog.Logger) EvidenceService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &evidenceService{
		storage: storage,
		logger:  logger.With().Str("component", "evidence_service").Logger(),
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		tracer:  otel.Tracer("github.com/noah-isme/hygiea-go-api/internal/service/evidence"),
	}
}

// UploadBatch stores each file in order. Individual failures (oversized file,
// wrong type, create error) skip that file and continue; the grant step
// failing leaves the blob unlisted but keeps its URL in the result. The call
// itself never fails.
func (s *evidenceService) UploadBatch(ctx context.Context, batch EvidenceBatch) dto.EvidenceResult {
	ctx, span := s.tracer.Start(ctx, "evidence.upload_batch")
	defer span.End()
	span.SetAttributes(
		attribute.Int("evidence.batch_size", len(batch.Files)),
		attribute.String("evidence.class_label", batch.ClassLabel),
	)

	start := time.Now()
	defer func() {
		observability.EvidenceLatency().Observe(time.Since(start).Seconds())
	}()

	result := dto.EvidenceResult{
		Uploaded: make([]dto.UploadedEvidence, 0, len(batch.Files)),
		Failed:   make([]dto.FailedEvidence, 0),
	}

	for index, file := range batch.Files {
		name := evidenceFileName(batch.DeclaredDate, batch.ClassLabel, index, file.Filename)

		entry, err := s.store(ctx, name, file)
		if err != nil {
			observability.EvidenceRejected().WithLabelValues(rejectReason(err)).Inc()
			s.logger.Warn().Err(err).Int("index", index).Str("file", file.Filename).Msg("evidence file skipped")
			result.Failed = append(result.Failed, dto.FailedEvidence{
				Index:  index,
				Name:   file.Filename,
				Reason: err.Error(),
			})
			continue
		}

		entry.Index = index
		entry.FileName = name
		observability.EvidenceStored().Inc()
		result.Uploaded = append(result.Uploaded, entry)
	}

	span.SetAttributes(
		attribute.Int("evidence.uploaded", len(result.Uploaded)),
		attribute.Int("evidence.failed", len(result.Failed)),
	)

	return result
}

var (
	errEvidenceTooLarge = errors.New("file exceeds maximum allowed size")
	errEvidenceNotImage = errors.New("file is not an image")
	errEvidenceNoStore  = errors.New("blob storage is not configured")
)

func (s *evidenceService) store(ctx context.Context, name string, file *multipart.FileHeader) (dto.UploadedEvidence, error) {
	if s.storage == nil {
		return dto.UploadedEvidence{}, errEvidenceNoStore
	}

	if file.Size > s.maxSize {
		return dto.UploadedEvidence{}, errEvidenceTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.UploadedEvidence{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.UploadedEvidence{}, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(buf.Len()) > s.maxSize {
		return dto.UploadedEvidence{}, errEvidenceTooLarge
	}

	if !strings.HasPrefix(mimetype.Detect(buf.Bytes()).String(), "image/") {
		return dto.UploadedEvidence{}, errEvidenceNotImage
	}

	blobID, err := s.storage.Create(ctx, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return dto.UploadedEvidence{}, fmt.Errorf("failed to create blob: %w", err)
	}

	entry := dto.UploadedEvidence{
		BlobID: blobID,
		URL:    s.storage.ThumbnailURL(blobID),
	}

	if err := s.storage.GrantPublicRead(ctx, blobID); err != nil {
		// The blob exists but is unlisted. Not fatal to the batch.
		entry.Unlisted = true
		s.logger.Warn().Err(err).Str("blob_id", blobID).Msg("public read grant failed, blob stored unlisted")
	}

	return entry, nil
}

// evidenceFileName builds the deterministic blob name
// {declared_date}_{class_label}_{NN}{ext}; NN is the zero-based position in
// this batch, zero-padded to two digits.
func evidenceFileName(declaredDate, classLabel string, index int, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s_%s_%02d%s", declaredDate, classLabel, index, ext)
}

func rejectReason(err error) string {
	switch {
	case err == errEvidenceTooLarge:
		return "size"
	case err == errEvidenceNotImage:
		return "type"
	default:
		return "storage"
	}
}
