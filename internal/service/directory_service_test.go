package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hygiea-go-api/internal/models"
)

type directoryRepoStub struct {
	inspectors []models.Inspector
	classes    []models.RosterClass
	err        error
	listCalls  int
}

func (r *directoryRepoStub) ListInspectors(ctx context.Context) ([]models.Inspector, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return append([]models.Inspector(nil), r.inspectors...), nil
}

func (r *directoryRepoStub) ListClasses(ctx context.Context) ([]models.RosterClass, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return append([]models.RosterClass(nil), r.classes...), nil
}

func (r *directoryRepoStub) ReplaceInspectors(ctx context.Context, inspectors []models.Inspector) (int64, error) {
	r.inspectors = inspectors
	return int64(len(inspectors)), nil
}

func (r *directoryRepoStub) ReplaceClasses(ctx context.Context, classes []models.RosterClass) (int64, error) {
	r.classes = classes
	return int64(len(classes)), nil
}

func rosterFixture() *directoryRepoStub {
	return &directoryRepoStub{
		inspectors: []models.Inspector{
			{Name: "Chen Yi", ClassLabel: "101"},
			{Name: "Lin Wei", ClassLabel: "205"},
			{Name: "Wang Fang", ClassLabel: "310"},
		},
		classes: []models.RosterClass{
			{Label: "101"},
			{Label: "102"},
			{Label: "205"},
			{Label: "205"}, // duplicate row in the roster sheet
			{Label: "310"},
		},
	}
}

func TestDirectoryServiceFiltersByGradePrefix(t *testing.T) {
	svc := NewDirectoryService(rosterFixture(), nil, time.Minute, testLogger())

	resp := svc.ListInspectors(context.Background(), models.GradeSecond)
	require.Equal(t, "2", resp.Grade)
	require.Equal(t, []string{"Lin Wei"}, resp.Items)

	classes := svc.ListClasses(context.Background(), models.GradeFirst)
	require.Equal(t, []string{"101", "102"}, classes.Items)
}

func TestDirectoryServiceDeduplicatesClasses(t *testing.T) {
	svc := NewDirectoryService(rosterFixture(), nil, time.Minute, testLogger())

	resp := svc.ListClasses(context.Background(), models.GradeSecond)
	require.Equal(t, []string{"205"}, resp.Items)
}

func TestDirectoryServiceDegradesToEmptyOnFailure(t *testing.T) {
	repo := &directoryRepoStub{err: errors.New("store unreachable")}
	svc := NewDirectoryService(repo, nil, time.Minute, testLogger())

	resp := svc.ListInspectors(context.Background(), models.GradeFirst)
	require.NotNil(t, resp.Items)
	require.Empty(t, resp.Items)
}

func TestDirectoryServiceCachesPerGrade(t *testing.T) {
	repo := rosterFixture()
	cache, _ := testRedis(t)
	svc := NewDirectoryService(repo, cache, time.Minute, testLogger())

	first := svc.ListInspectors(context.Background(), models.GradeFirst)
	require.False(t, first.CacheHit)

	second := svc.ListInspectors(context.Background(), models.GradeFirst)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Items, second.Items)
	require.Equal(t, 1, repo.listCalls)

	// A different grade is its own cache entry.
	third := svc.ListInspectors(context.Background(), models.GradeThird)
	require.False(t, third.CacheHit)
}

func TestDirectoryServiceInvalidateDropsCaches(t *testing.T) {
	repo := rosterFixture()
	cache, _ := testRedis(t)
	svc := NewDirectoryService(repo, cache, time.Minute, testLogger())

	svc.ListInspectors(context.Background(), models.GradeFirst)
	svc.Invalidate(context.Background())

	refreshed := svc.ListInspectors(context.Background(), models.GradeFirst)
	require.False(t, refreshed.CacheHit)
	require.Equal(t, 2, repo.listCalls)
}

func TestDirectoryServiceInspectorInGrade(t *testing.T) {
	svc := NewDirectoryService(rosterFixture(), nil, time.Minute, testLogger())

	member, decided := svc.InspectorInGrade(context.Background(), models.GradeFirst, "Chen Yi")
	require.True(t, decided)
	require.True(t, member)

	member, decided = svc.InspectorInGrade(context.Background(), models.GradeThird, "Chen Yi")
	require.True(t, decided)
	require.False(t, member)

	degraded := NewDirectoryService(&directoryRepoStub{err: errors.New("down")}, nil, time.Minute, testLogger())
	_, decided = degraded.InspectorInGrade(context.Background(), models.GradeFirst, "Chen Yi")
	require.False(t, decided)
}
