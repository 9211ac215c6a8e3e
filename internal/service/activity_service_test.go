package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hygiea-go-api/internal/models"
	"github.com/noah-isme/hygiea-go-api/internal/repository"
)

type activityLogRepoStub struct {
	created []models.ActivityLog
	err     error
}

func (r *activityLogRepoStub) Create(ctx context.Context, entry *models.ActivityLog) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *entry)
	return nil
}

func (r *activityLogRepoStub) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.created, int64(len(r.created)), nil
}

func TestActivityServiceRecordNormalizesFields(t *testing.T) {
	repo := &activityLogRepoStub{}
	svc := NewActivityService(repo, testLogger())

	err := svc.Record(context.Background(), ActivityEntry{
		SessionID: " session-1 ",
		ActorRole: "Admin",
		Action:    "Settings.Updated",
		Entity:    "Setting",
		EntityKey: "semester_start",
		Metadata:  map[string]interface{}{"value": "2024-09-02"},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	entry := repo.created[0]
	require.Equal(t, "session-1", entry.SessionID)
	require.Equal(t, "admin", entry.ActorRole)
	require.Equal(t, "settings.updated", entry.Action)
	require.Equal(t, "setting", entry.Entity)
}

func TestActivityServiceRecordRequiresActionAndEntity(t *testing.T) {
	svc := NewActivityService(&activityLogRepoStub{}, testLogger())

	require.Error(t, svc.Record(context.Background(), ActivityEntry{Entity: "setting"}))
	require.Error(t, svc.Record(context.Background(), ActivityEntry{Action: "settings.updated"}))
}

func TestActivityServiceListClampsPaging(t *testing.T) {
	repo := &activityLogRepoStub{}
	svc := NewActivityService(repo, testLogger())

	require.NoError(t, svc.Record(context.Background(), ActivityEntry{
		Action: "record.committed",
		Entity: "inspection_record",
	}))

	resp, err := svc.List(context.Background(), -1, 500)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Page)
	require.Equal(t, 20, resp.PageSize)
	require.Equal(t, int64(1), resp.TotalItems)
	require.Len(t, resp.Items, 1)
}
