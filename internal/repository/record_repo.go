package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/hygiea-go-api/internal/models"
)

// RecordRepository appends rows to the inspection ledger and reads them back
// for the overview surface. The ledger is append-only: there is no update or
// delete path by design.
type RecordRepository interface {
	Append(ctx context.Context, record *models.InspectionRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.InspectionRecord, error)
	ListByClass(ctx context.Context, classLabel string, limit int) ([]models.InspectionRecord, error)
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository constructs the ledger repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

// Append writes a single ledger row as a blind insert. The column list is
// pinned so the physical row layout never depends on struct evolution.
func (r *recordRepository) Append(ctx context.Context, record *models.InspectionRecord) error {
	return r.db.WithContext(ctx).
		Select(models.LedgerColumns).
		Create(record).Error
}

func (r *recordRepository) ListRecent(ctx context.Context, limit int) ([]models.InspectionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []models.InspectionRecord
	if err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *recordRepository) ListByClass(ctx context.Context, classLabel string, limit int) ([]models.InspectionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []models.InspectionRecord
	if err := r.db.WithContext(ctx).
		Where("class_label = ?", classLabel).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
