package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hygiea-go-api/internal/dto"
)

func strptr(s string) *string { return &s }

func TestDraftServiceEmptyDraftDefaultsDateToToday(t *testing.T) {
	client, _ := testRedis(t)
	svc := NewDraftService(client, time.Hour, testLogger())

	draft, err := svc.Get(context.Background(), "session-a")
	require.NoError(t, err)
	require.Equal(t, time.Now().UTC().Format("2006-01-02"), draft.InspectionDate)
	require.Zero(t, draft.DeductionScore)
	require.Empty(t, draft.ClassLabel)
}

func TestDraftServiceUpdateAppliesOnlyProvidedFields(t *testing.T) {
	client, _ := testRedis(t)
	svc := NewDraftService(client, time.Hour, testLogger())
	ctx := context.Background()

	draft, err := svc.Update(ctx, "session-a", dto.DraftUpdateRequest{
		ClassLabel:    strptr("101"),
		InspectorName: strptr("Chen Yi"),
	})
	require.NoError(t, err)
	require.Equal(t, "101", draft.ClassLabel)

	draft, err = svc.Update(ctx, "session-a", dto.DraftUpdateRequest{Area: strptr("indoor")})
	require.NoError(t, err)
	require.Equal(t, "indoor", draft.Area)
	require.Equal(t, "101", draft.ClassLabel)
	require.Equal(t, "Chen Yi", draft.InspectorName)
}

func TestDraftServiceDraftsAreIsolatedPerSession(t *testing.T) {
	client, _ := testRedis(t)
	svc := NewDraftService(client, time.Hour, testLogger())
	ctx := context.Background()

	_, err := svc.Update(ctx, "session-a", dto.DraftUpdateRequest{ClassLabel: strptr("101")})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "session-b", dto.DraftUpdateRequest{ClassLabel: strptr("310")})
	require.NoError(t, err)

	a, err := svc.Get(ctx, "session-a")
	require.NoError(t, err)
	b, err := svc.Get(ctx, "session-b")
	require.NoError(t, err)
	require.Equal(t, "101", a.ClassLabel)
	require.Equal(t, "310", b.ClassLabel)
}

func TestDraftServiceAdjustScoreClampsAtZero(t *testing.T) {
	client, _ := testRedis(t)
	svc := NewDraftService(client, time.Hour, testLogger())
	ctx := context.Background()

	draft, err := svc.AdjustScore(ctx, "session-a", 1)
	require.NoError(t, err)
	require.Equal(t, 1, draft.DeductionScore)

	draft, err = svc.AdjustScore(ctx, "session-a", 1)
	require.NoError(t, err)
	require.Equal(t, 2, draft.DeductionScore)

	for i := 0; i < 5; i++ {
		draft, err = svc.AdjustScore(ctx, "session-a", -1)
		require.NoError(t, err)
	}
	require.Zero(t, draft.DeductionScore)
}

func TestDraftServiceResetKeepsContextFields(t *testing.T) {
	client, _ := testRedis(t)
	svc := NewDraftService(client, time.Hour, testLogger())
	ctx := context.Background()

	_, err := svc.Update(ctx, "session-a", dto.DraftUpdateRequest{
		InspectionDate: strptr("2024-05-01"),
		Grade:          strptr("1"),
		ClassLabel:     strptr("101"),
		InspectorName:  strptr("Chen Yi"),
		Area:           strptr("indoor"),
		Item:           strptr("floor"),
		Condition:      strptr("not cleaned"),
		Remark:         strptr("dust"),
	})
	require.NoError(t, err)
	_, err = svc.AdjustScore(ctx, "session-a", 1)
	require.NoError(t, err)

	draft, err := svc.ResetAfterSubmit(ctx, "session-a")
	require.NoError(t, err)
	require.Zero(t, draft.DeductionScore)
	require.Empty(t, draft.Area)
	require.Empty(t, draft.Item)
	require.Empty(t, draft.Condition)
	require.Empty(t, draft.Remark)
	require.Equal(t, "2024-05-01", draft.InspectionDate)
	require.Equal(t, "101", draft.ClassLabel)
	require.Equal(t, "Chen Yi", draft.InspectorName)
}

func TestDraftServiceCorruptPayloadIsDiscarded(t *testing.T) {
	client, mr := testRedis(t)
	svc := NewDraftService(client, time.Hour, testLogger())

	require.NoError(t, mr.Set(draftKey("session-a"), "{not json"))

	draft, err := svc.Get(context.Background(), "session-a")
	require.NoError(t, err)
	require.Empty(t, draft.ClassLabel)
	require.Zero(t, draft.DeductionScore)
}

func TestDraftServiceStoreDownSurfacesError(t *testing.T) {
	client, mr := testRedis(t)
	svc := NewDraftService(client, time.Hour, testLogger())
	mr.Close()

	_, err := svc.Get(context.Background(), "session-a")
	require.ErrorIs(t, err, ErrDraftUnavailable)
}
