package orders

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*DraftStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewDraftStore(client, time.Hour), mr
}

func TestDraftStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	draft, err := store.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, draft.ID)

	draft = draft.AddServiceLine().SetServiceDiscount(0, 12.5)
	require.NoError(t, store.Save(ctx, draft))

	loaded, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Services, 1)
	assert.Equal(t, 12.5, loaded.Services[0].Discount)
}

func TestDraftStoreMissingID(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftStoreDelete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	draft, err := store.Create(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("draft:"+draft.ID))

	require.NoError(t, store.Delete(ctx, draft.ID))
	assert.False(t, mr.Exists("draft:"+draft.ID))

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, draft.ID))
}

func TestDraftStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	draft, err := store.Create(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
