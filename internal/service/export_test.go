package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/convergenps/backend/internal/config"
	"github.com/convergenps/backend/internal/model"
	"github.com/convergenps/backend/internal/smartsheet"
)

func exportFixture() (*ExportService, *memStore, *fakeSheetAPI) {
	store := newMemStore()
	api := newFakeSheetAPI()
	cfg := &config.Config{
		UsersSheetID:       "sheet-users",
		RSVPsSheetID:       "sheet-rsvps",
		ConnectionsSheetID: "sheet-connections",
	}
	svc := NewExportService(store, api, smartsheet.NewRequestQueue(time.Millisecond), cfg)
	return svc, store, api
}

func TestSyncOneCreatesRowAndRecordsSuccess(t *testing.T) {
	svc, store, api := exportFixture()
	ctx := context.Background()

	store.CreateProfile(ctx, &model.Profile{ID: "u1", FullName: "Ada", Email: "ada@example.com"})

	res := svc.SyncOne(ctx, model.KindUser, "u1")
	require.True(t, res.Success, res.Error)
	require.NotNil(t, res.RowID)

	require.Len(t, api.addCalls, 1)
	assert.Equal(t, "sheet-users", api.addCalls[0].sheetID)

	rec, err := store.LatestSync(ctx, model.KindUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.SyncSuccess, rec.Status)
	assert.Equal(t, model.DirectionUpload, rec.Direction)
	require.NotNil(t, rec.RowID)
	assert.Equal(t, *res.RowID, *rec.RowID)
	assert.NotNil(t, rec.CompletedAt)
}

func TestSyncOneSecondCallUpdatesSameRow(t *testing.T) {
	svc, store, api := exportFixture()
	ctx := context.Background()

	store.CreateProfile(ctx, &model.Profile{ID: "u1", FullName: "Ada", Email: "ada@example.com"})

	first := svc.SyncOne(ctx, model.KindUser, "u1")
	require.True(t, first.Success)

	second := svc.SyncOne(ctx, model.KindUser, "u1")
	require.True(t, second.Success)

	// no duplicate create: the second call reuses the first row id
	assert.Len(t, api.addCalls, 1)
	require.Len(t, api.updateCalls, 1)
	assert.Equal(t, *first.RowID, api.updateCalls[0].rowID)
	assert.Equal(t, *first.RowID, *second.RowID)
}

func TestSyncOneMissingEntityRecordsFailure(t *testing.T) {
	svc, store, _ := exportFixture()
	ctx := context.Background()

	res := svc.SyncOne(ctx, model.KindUser, "ghost")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "ghost")

	rec, err := store.LatestSync(ctx, model.KindUser, "ghost")
	require.NoError(t, err)
	assert.Equal(t, model.SyncFailed, rec.Status)
	assert.NotEmpty(t, rec.ErrorDetail)
}

func TestSyncOneMissingSheetIDRecordsFailure(t *testing.T) {
	svc, store, api := exportFixture()
	svc.cfg = &config.Config{} // no sheet ids configured
	ctx := context.Background()

	store.CreateProfile(ctx, &model.Profile{ID: "u1", FullName: "Ada", Email: "ada@example.com"})

	res := svc.SyncOne(ctx, model.KindUser, "u1")
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "not configured")
	assert.Empty(t, api.addCalls)
}

func TestSyncAllPartialFailureIsolation(t *testing.T) {
	svc, store, api := exportFixture()
	ctx := context.Background()

	store.CreateProfile(ctx, &model.Profile{ID: "u1", FullName: "A", Email: "a@example.com"})
	store.CreateProfile(ctx, &model.Profile{ID: "u2", FullName: "B", Email: "b@example.com"})
	store.CreateProfile(ctx, &model.Profile{ID: "u3", FullName: "C", Email: "c@example.com"})
	api.failForValue = "u2"

	out, err := svc.SyncAll(ctx, model.KindUser)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 2, out.Successful)
	assert.Equal(t, 1, out.Failed)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "u2", out.Errors[0].EntityID)

	for _, id := range []string{"u1", "u3"} {
		rec, err := store.LatestSync(ctx, model.KindUser, id)
		require.NoError(t, err)
		assert.Equal(t, model.SyncSuccess, rec.Status, id)
	}
	rec, err := store.LatestSync(ctx, model.KindUser, "u2")
	require.NoError(t, err)
	assert.Equal(t, model.SyncFailed, rec.Status)
}

func TestSyncAllOtherKinds(t *testing.T) {
	svc, store, api := exportFixture()
	ctx := context.Background()

	store.rsvps["r1"] = &model.RSVP{ID: "r1", ProfileID: "u1", SessionID: "s1", Status: "going"}
	store.connections["c1"] = &model.Connection{ID: "c1", RequesterID: "u1", RecipientID: "u2"}

	out, err := svc.SyncAll(ctx, model.KindRSVP)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Successful)
	assert.Equal(t, "sheet-rsvps", api.addCalls[0].sheetID)

	out, err = svc.SyncAll(ctx, model.KindConnection)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Successful)
	assert.Equal(t, "sheet-connections", api.addCalls[1].sheetID)
}

func TestRetryCountAdvancesOnRepeatedFailure(t *testing.T) {
	svc, store, api := exportFixture()
	ctx := context.Background()

	store.CreateProfile(ctx, &model.Profile{ID: "u1", FullName: "A", Email: "a@example.com"})
	api.failForValue = "u1"

	svc.SyncOne(ctx, model.KindUser, "u1")
	svc.SyncOne(ctx, model.KindUser, "u1")
	svc.SyncOne(ctx, model.KindUser, "u1")

	rec, err := store.LatestSync(ctx, model.KindUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.RetryCount)

	// a success after failures still carries the retry lineage
	api.failForValue = ""
	res := svc.SyncOne(ctx, model.KindUser, "u1")
	require.True(t, res.Success)
	rec, err = store.LatestSync(ctx, model.KindUser, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.SyncSuccess, rec.Status)
	assert.Equal(t, 3, rec.RetryCount)
}
