package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassine/cvbuilder/internal/resume"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := NewSession(uuid.New(), "Amina El Fassi", "amina@example.com")
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "Amina El Fassi", got.Document.Personal.FullName)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, s.ID, notFound.ID)
}

func TestMemoryStore_GetUnknownID(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), uuid.New())
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func newMiniredisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newMiniredisStore(t)

	s := NewSession(uuid.New(), "Amina El Fassi", "amina@example.com")
	require.NoError(t, s.UpdateField(StepSummary, rawJSON(t, "Backend engineer in Casablanca.")))
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, "Backend engineer in Casablanca.", got.Document.Summary)
	assert.Equal(t, s.Version(StepSummary), got.Version(StepSummary))
}

func TestRedisStore_MissingSession(t *testing.T) {
	store, _ := newMiniredisStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRedisStore_ExpiredSessionIsNotFound(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniredisStore(t)

	s := NewSession(uuid.New(), "Amina El Fassi", "amina@example.com")
	require.NoError(t, store.Put(ctx, s))

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, s.ID)
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestRedisStore_DeleteAfterFinish(t *testing.T) {
	ctx := context.Background()
	store, _ := newMiniredisStore(t)

	doc := resume.NewEmptyDocument()
	doc.Personal.FullName = "Youssef Benali"
	doc.Personal.Email = "youssef@example.com"
	s := NewEditSession(uuid.New(), uuid.New(), doc, "classic-professional")
	require.NoError(t, store.Put(ctx, s))

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err := store.Get(ctx, s.ID)
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}
