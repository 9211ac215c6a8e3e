package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/hygiea-go-api/internal/models"
)

// DirectoryRepository reads the inspector and class rosters. The rosters are
// reference data; only the seeding surface replaces them.
type DirectoryRepository interface {
	ListInspectors(ctx context.Context) ([]models.Inspector, error)
	ListClasses(ctx context.Context) ([]models.RosterClass, error)
	ReplaceInspectors(ctx context.Context, inspectors []models.Inspector) (int64, error)
	ReplaceClasses(ctx context.Context, classes []models.RosterClass) (int64, error)
}

type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository constructs the directory repository.
func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) ListInspectors(ctx context.Context) ([]models.Inspector, error) {
	var inspectors []models.Inspector
	if err := r.db.WithContext(ctx).
		Order("class_label ASC, name ASC").
		Find(&inspectors).Error; err != nil {
		return nil, err
	}

	return inspectors, nil
}

func (r *directoryRepository) ListClasses(ctx context.Context) ([]models.RosterClass, error) {
	var classes []models.RosterClass
	if err := r.db.WithContext(ctx).
		Order("label ASC").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *directoryRepository) ReplaceInspectors(ctx context.Context, inspectors []models.Inspector) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Inspector{}).Error; err != nil {
			return err
		}
		if len(inspectors) == 0 {
			return nil
		}
		result := tx.Create(&inspectors)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

func (r *directoryRepository) ReplaceClasses(ctx context.Context, classes []models.RosterClass) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.RosterClass{}).Error; err != nil {
			return err
		}
		if len(classes) == 0 {
			return nil
		}
		result := tx.Create(&classes)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}
