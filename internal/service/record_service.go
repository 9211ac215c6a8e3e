package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/observability"
	"github.com/noah-isme/hygiea-go-api/internal/repository"
	"github.com/noah-isme/hygiea-go-api/internal/schoolweek"
)

var (
	// ErrEvidenceRequired rejects a positive deduction score without photos.
	// The draft is left untouched so the caller can attach files and retry.
	ErrEvidenceRequired = errors.New("photo evidence is required when a deduction is recorded")
	// ErrEvidenceUploadFailed rejects a submission whose attached photos all
	// failed to upload; distinct from ErrEvidenceRequired so the user knows
	// the files were supplied but lost.
	ErrEvidenceUploadFailed = errors.New("photo evidence could not be uploaded")
	// ErrAppendFailed marks a failed ledger write. Nothing is retried; the
	// user must resubmit.
	ErrAppendFailed = errors.New("failed to append record to ledger")
	// ErrUnknownVocabulary rejects area/item/condition values outside the
	// fixed vocabularies.
	ErrUnknownVocabulary = errors.New("violation fields outside the fixed vocabulary")
	// ErrInspectorNotInGrade rejects an inspector that is not on the roster
	// for the class's grade.
	ErrInspectorNotInGrade = errors.New("inspector is not on the roster for this grade")
)

// RecordService validates a draft, uploads its evidence and appends one row to
// the inspection ledger.
type RecordService interface {
	Submit(ctx context.Context, actor SessionActor, draft dto.RecordDraft, batch EvidenceBatch) (dto.SubmitResult, error)
	ListRecent(ctx context.Context, limit int) ([]dto.RecordResponse, error)
}

type recordService struct {
	records   repository.RecordRepository
	evidence  EvidenceService
	settings  SettingsService
	directory DirectoryService
	recorder  ActivityRecorder
	validator *validator.Validate
	policy    *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewRecordService constructs the record submitter.
func NewRecordService(records repository.RecordRepository, evidence EvidenceService, settings SettingsService, directory DirectoryService, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) RecordService {
	return &recordService{
		records:   records,
		evidence:  evidence,
		settings:  settings,
		directory: directory,
		recorder:  recorder,
		validator: validate,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "record_service").Logger(),
		now:       time.Now,
	}
}

// Submit runs the pipeline: validate, upload evidence, generate the record id,
// append the ledger row. Validation failures reject the draft unchanged;
// append failures surface the store error verbatim with no automatic retry.
func (s *recordService) Submit(ctx context.Context, actor SessionActor, draft dto.RecordDraft, batch EvidenceBatch) (dto.SubmitResult, error) {
	start := s.now()
	defer func() {
		observability.SubmissionLatency().Observe(time.Since(start).Seconds())
	}()

	// Validating
	if err := s.validate(ctx, draft, len(batch.Files)); err != nil {
		observability.Submissions().WithLabelValues("rejected").Inc()
		return dto.SubmitResult{}, err
	}

	inspectionDate, err := time.ParseInLocation(isoDateLayout, draft.InspectionDate, time.UTC)
	if err != nil {
		observability.Submissions().WithLabelValues("rejected").Inc()
		return dto.SubmitResult{}, fmt.Errorf("invalid inspection date: %w", err)
	}

	// UploadingEvidence
	var uploaded dto.EvidenceResult
	if len(batch.Files) > 0 {
		batch.DeclaredDate = draft.InspectionDate
		batch.ClassLabel = draft.ClassLabel
		uploaded = s.evidence.UploadBatch(ctx, batch)
		if len(uploaded.Uploaded) == 0 {
			// Files were supplied but none survived: equivalent to "no
			// evidence" yet reported with its own reason.
			observability.Submissions().WithLabelValues("upload_failed").Inc()
			return dto.SubmitResult{}, ErrEvidenceUploadFailed
		}
	}

	photoURLs := make([]string, 0, len(uploaded.Uploaded))
	storedFiles := make([]string, 0, len(uploaded.Uploaded))
	for _, entry := range uploaded.Uploaded {
		photoURLs = append(photoURLs, entry.URL)
		storedFiles = append(storedFiles, entry.FileName)
	}

	semester, semesterErr := s.settings.SemesterStart(ctx)
	if semesterErr != nil {
		s.logger.Warn().Err(semesterErr).Msg("week number computed against fallback semester start")
	}
	week := schoolweek.WeekOf(inspectionDate, semester.Date)

	// AppendingRecord
	submittedAt := s.now().UTC()
	recordID := newRecordID(submittedAt)

	record := models.InspectionRecord{
		InspectionDate: datatypes.Date(inspectionDate),
		WeekNumber:     week,
		ClassLabel:     draft.ClassLabel,
		InspectorName:  draft.InspectorName,
		Area:           draft.Area,
		Item:           draft.Item,
		Condition:      draft.Condition,
		Remark:         s.policy.Sanitize(strings.TrimSpace(draft.Remark)),
		DeductionScore: draft.DeductionScore,
		PhotoURLs:      models.JoinPhotoURLs(photoURLs),
		SubmittedAt:    submittedAt,
		RecordID:       recordID,
	}

	if err := s.records.Append(ctx, &record); err != nil {
		observability.Submissions().WithLabelValues("append_failed").Inc()
		s.logger.Error().Err(err).Str("record_id", recordID).Msg("ledger append failed")
		return dto.SubmitResult{}, fmt.Errorf("%w: %v", ErrAppendFailed, err)
	}

	// Committed
	observability.Submissions().WithLabelValues("committed").Inc()
	s.logger.Info().
		Str("record_id", recordID).
		Str("class_label", draft.ClassLabel).
		Int("week_number", week).
		Int("deduction_score", draft.DeductionScore).
		Msg("inspection record committed")

	s.audit(ctx, actor, recordID, draft, len(photoURLs))

	return dto.SubmitResult{
		RecordID:       recordID,
		WeekNumber:     week,
		PreSemester:    week <= 0,
		InspectionDate: draft.InspectionDate,
		ClassLabel:     draft.ClassLabel,
		DeductionScore: draft.DeductionScore,
		PhotoURLs:      photoURLs,
		StoredFiles:    storedFiles,
		FailedUploads:  uploaded.Failed,
		SubmittedAt:    submittedAt,
	}, nil
}

func (s *recordService) ListRecent(ctx context.Context, limit int) ([]dto.RecordResponse, error) {
	records, err := s.records.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, dto.RecordResponse{
			RecordID:       record.RecordID,
			InspectionDate: time.Time(record.InspectionDate).Format(isoDateLayout),
			WeekNumber:     record.WeekNumber,
			ClassLabel:     record.ClassLabel,
			InspectorName:  record.InspectorName,
			Area:           record.Area,
			Item:           record.Item,
			Condition:      record.Condition,
			Remark:         record.Remark,
			DeductionScore: record.DeductionScore,
			PhotoURLs:      models.SplitPhotoURLs(record.PhotoURLs),
			SubmittedAt:    record.SubmittedAt,
		})
	}

	return responses, nil
}

func (s *recordService) validate(ctx context.Context, draft dto.RecordDraft, fileCount int) error {
	if err := s.validator.Struct(draft); err != nil {
		return err
	}

	if !models.ValidArea(draft.Area) || !models.ValidItem(draft.Area, draft.Item) || !models.ValidCondition(draft.Condition) {
		return ErrUnknownVocabulary
	}

	if draft.DeductionScore > 0 && fileCount == 0 {
		return ErrEvidenceRequired
	}

	if grade, ok := models.ParseGrade(draft.ClassLabel[:1]); ok {
		member, decided := s.directory.InspectorInGrade(ctx, grade, draft.InspectorName)
		if decided && !member {
			return ErrInspectorNotInGrade
		}
	}

	return nil
}

func (s *recordService) audit(ctx context.Context, actor SessionActor, recordID string, draft dto.RecordDraft, photoCount int) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, ActivityEntry{
		SessionID: actor.SessionID,
		ActorRole: actor.Role,
		Action:    "record.committed",
		Entity:    "inspection_record",
		EntityKey: recordID,
		Metadata: map[string]interface{}{
			"class_label":     draft.ClassLabel,
			"deduction_score": draft.DeductionScore,
			"photo_count":     photoCount,
		},
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record submission audit entry")
	}
}

const recordIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newRecordID builds the ledger row identifier: a second-resolution timestamp
// plus five random alphanumerics. Uniqueness is best effort; collisions are
// possible but vanishingly rare at this submission volume.
func newRecordID(now time.Time) string {
	suffix := make([]byte, 5)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing means the process is in a bad state; fall back
		// to the nanosecond clock rather than aborting the submission.
		nanos := now.Nanosecond()
		for i := range suffix {
			suffix[i] = recordIDAlphabet[(nanos+i)%len(recordIDAlphabet)]
		}
	} else {
		for i, b := range suffix {
			suffix[i] = recordIDAlphabet[int(b)%len(recordIDAlphabet)]
		}
	}

	return now.Format("20060102150405") + "_" + string(suffix)
}
