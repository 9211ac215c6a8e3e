package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/hygiea-go-api/internal/models"
)

func TestSettingsRepositoryGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	require.NoError(t, db.Create(&models.Setting{Key: models.SettingSemesterStart, Value: "2024-02-01"}).Error)

	setting, err := repo.Get(context.Background(), models.SettingSemesterStart)
	require.NoError(t, err)
	require.Equal(t, "2024-02-01", setting.Value)

	_, err = repo.Get(context.Background(), "missing_key")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSettingsRepositoryUpdateValueExistingKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	require.NoError(t, db.Create(&models.Setting{Key: models.SettingSemesterStart, Value: "2024-02-01"}).Error)

	updated, err := repo.UpdateValue(context.Background(), models.SettingSemesterStart, "2024-09-02")
	require.NoError(t, err)
	require.True(t, updated)

	setting, err := repo.Get(context.Background(), models.SettingSemesterStart)
	require.NoError(t, err)
	require.Equal(t, "2024-09-02", setting.Value)
}

func TestSettingsRepositoryUpdateValueNeverCreates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	updated, err := repo.UpdateValue(context.Background(), "semester_end", "2024-06-30")
	require.NoError(t, err)
	require.False(t, updated)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	require.Zero(t, count)
}
