package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/hygiea-go-api/internal/models"
)

// SettingsRepository reads and updates key-value configuration entries.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (models.Setting, error)
	// UpdateValue writes the value at an existing key. It reports false when
	// the key does not exist; it never creates one.
	UpdateValue(ctx context.Context, key, value string) (bool, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository constructs the settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		return models.Setting{}, err
	}

	return setting, nil
}

func (r *settingsRepository) UpdateValue(ctx context.Context, key, value string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Setting{}).
		Where("key = ?", key).
		Updates(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
