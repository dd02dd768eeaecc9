package draftcache

import (
	"context"
	"testing"
	"time"

	"appprove-backend/domain/keyword"
	"appprove-backend/domain/offer"
	"appprove-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore() (*Store, *memory.KVStore) {
	kv := memory.NewKVStore()
	return New(kv, zap.NewNop()), kv
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	draft := &offer.Draft{
		URL:         "https://github.com/acme/widget",
		Description: "Audit our widget service",
		Budget:      "750",
		Date:        offer.DateRange{From: &from, To: &to},
		Keywords:    []keyword.Keyword{{Value: "go", Label: "Go"}},
		RecordID:    42,
	}

	require.NoError(t, store.Save(ctx, "user-1", draft))

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, draft.URL, loaded.URL)
	assert.Equal(t, draft.Description, loaded.Description)
	assert.Equal(t, draft.Budget, loaded.Budget)
	assert.Equal(t, draft.Keywords, loaded.Keywords)
	assert.Equal(t, draft.RecordID, loaded.RecordID)
	require.NotNil(t, loaded.Date.From)
	assert.True(t, from.Equal(*loaded.Date.From))
}

func TestLoadEmptyStoreReturnsDefaults(t *testing.T) {
	store, _ := newTestStore()

	loaded, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, loaded.URL)
	assert.Empty(t, loaded.Budget)
	assert.Empty(t, loaded.Keywords)
	assert.Nil(t, loaded.Date.From)
	assert.True(t, loaded.IsNew())
}

func TestClearResetsToDefaults(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	draft := &offer.Draft{URL: "https://github.com/acme/widget", RecordID: 7}
	require.NoError(t, store.Save(ctx, "user-1", draft))
	require.NoError(t, store.Clear(ctx, "user-1"))

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.URL)
	assert.True(t, loaded.IsNew())
}

func TestUndefinedSentinelTreatedAsAbsent(t *testing.T) {
	store, kv := newTestStore()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "user-1", "budget", "undefined"))
	require.NoError(t, kv.Put(ctx, "user-1", "selectedKeywords", "undefined"))

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Budget)
	assert.Empty(t, loaded.Keywords)
}

func TestCorruptFieldFallsBackToDefault(t *testing.T) {
	store, kv := newTestStore()
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "user-1", "id", "{not json"))
	require.NoError(t, kv.Put(ctx, "user-1", "url", `"https://github.com/acme/widget"`))

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, loaded.RecordID)
	assert.Equal(t, "https://github.com/acme/widget", loaded.URL)
}
