package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hygiea-go-api/internal/models"
)

func TestDirectoryRepositoryListOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDirectoryRepository(db)

	require.NoError(t, db.Create(&[]models.Inspector{
		{Name: "Lin Wei", ClassLabel: "205"},
		{Name: "Chen Yi", ClassLabel: "101"},
		{Name: "Wang Fang", ClassLabel: "101"},
	}).Error)

	inspectors, err := repo.ListInspectors(context.Background())
	require.NoError(t, err)
	require.Len(t, inspectors, 3)
	require.Equal(t, "Chen Yi", inspectors[0].Name)
	require.Equal(t, "205", inspectors[2].ClassLabel)
}

func TestDirectoryRepositoryReplaceInspectors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDirectoryRepository(db)

	require.NoError(t, db.Create(&models.Inspector{Name: "Old Name", ClassLabel: "310"}).Error)

	affected, err := repo.ReplaceInspectors(context.Background(), []models.Inspector{
		{Name: "Chen Yi", ClassLabel: "101"},
		{Name: "Lin Wei", ClassLabel: "205"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), affected)

	inspectors, err := repo.ListInspectors(context.Background())
	require.NoError(t, err)
	require.Len(t, inspectors, 2)
	for _, inspector := range inspectors {
		require.NotEqual(t, "Old Name", inspector.Name)
	}
}

func TestDirectoryRepositoryReplaceClassesEmptyClears(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDirectoryRepository(db)

	require.NoError(t, db.Create(&models.RosterClass{Label: "101", Homeroom: "Ms. Huang"}).Error)

	affected, err := repo.ReplaceClasses(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, affected)

	classes, err := repo.ListClasses(context.Background())
	require.NoError(t, err)
	require.Empty(t, classes)
}
