package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
	"github.com/noah-isme/hygiea-go-api/internal/models"
)

func seedPayload() dto.SeedDirectoryRequest {
	return dto.SeedDirectoryRequest{
		Inspectors: []dto.SeedInspector{
			{Name: "Chen Yi", ClassLabel: "101"},
			{Name: "  Lin Wei  ", ClassLabel: "205"},
			{Name: "", ClassLabel: "310"}, // skipped
		},
		Classes: []dto.SeedClass{
			{Label: "101", Homeroom: "Ms. Huang"},
			{Label: "  205  "},
			{Label: "   "}, // skipped
		},
	}
}

func TestSeedDirectoryReplacesRosters(t *testing.T) {
	repo := rosterFixture()
	svc := NewSeedService(repo, nil, true, "seed-token", testLogger())

	resp, err := svc.SeedDirectory(context.Background(), "seed-token", seedPayload())
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Inspectors)
	require.Equal(t, int64(2), resp.Classes)

	require.Len(t, repo.inspectors, 2)
	require.Equal(t, "Lin Wei", repo.inspectors[1].Name)
	require.Equal(t, "205", repo.classes[1].Label)
	require.Equal(t, "Ms. Huang", repo.classes[0].Homeroom)
}

func TestSeedDirectoryDisabled(t *testing.T) {
	svc := NewSeedService(rosterFixture(), nil, false, "seed-token", testLogger())

	_, err := svc.SeedDirectory(context.Background(), "seed-token", seedPayload())
	require.ErrorIs(t, err, ErrSeedDisabled)
}

func TestSeedDirectoryRejectsBadToken(t *testing.T) {
	repo := rosterFixture()
	svc := NewSeedService(repo, nil, true, "seed-token", testLogger())

	_, err := svc.SeedDirectory(context.Background(), "wrong", seedPayload())
	require.ErrorIs(t, err, ErrSeedUnauthorized)
	require.Len(t, repo.inspectors, 3)
}

func TestSeedDirectoryEmptyConfiguredTokenAlwaysRejects(t *testing.T) {
	svc := NewSeedService(rosterFixture(), nil, true, "", testLogger())

	_, err := svc.SeedDirectory(context.Background(), "", seedPayload())
	require.ErrorIs(t, err, ErrSeedUnauthorized)
}

func TestSeedDirectoryInvalidatesCaches(t *testing.T) {
	repo := rosterFixture()
	cache, _ := testRedis(t)
	directory := NewDirectoryService(repo, cache, 0, testLogger())
	svc := NewSeedService(repo, directory, true, "seed-token", testLogger())

	// Warm the cache, then seed; the next read must hit the store again.
	directory.ListInspectors(context.Background(), models.GradeFirst)
	callsAfterWarm := repo.listCalls

	_, err := svc.SeedDirectory(context.Background(), "seed-token", seedPayload())
	require.NoError(t, err)

	directory.ListInspectors(context.Background(), models.GradeFirst)
	require.Greater(t, repo.listCalls, callsAfterWarm)
}
