package session_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/halalbot/internal/errs"
	"github.com/edgard/halalbot/internal/i18n"
	"github.com/edgard/halalbot/internal/session"
)

const testPrefix = "halalbot:session:"

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return session.NewRedisStoreWithClient(rdb, testPrefix, slog.New(slog.DiscardHandler)), mr, rdb
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	t.Parallel()
	store, mr, rdb := newRedisStore(t)
	ctx := context.Background()

	s := session.New(42, 4242)
	s.Language = i18n.Uzbek
	s.State = session.StateReadyForImage
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, int64(4242), got.ChatID)
	assert.Equal(t, i18n.Uzbek, got.Language)
	assert.Equal(t, session.StateReadyForImage, got.State)
	assert.False(t, got.UpdatedAt.IsZero())

	raw, err := mr.Get(testPrefix + "42")
	require.NoError(t, err)
	var stored session.Session
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, i18n.Uzbek, stored.Language)

	assert.Equal(t, time.Duration(-1), rdb.TTL(ctx, testPrefix+"42").Val())
}

func TestRedisStore_LastWriteWins(t *testing.T) {
	t.Parallel()
	store, mr, _ := newRedisStore(t)
	ctx := context.Background()

	first := session.New(7, 70)
	first.Language = i18n.Uzbek
	first.State = session.StateReadyForImage
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, session.New(7, 70)))

	got, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, i18n.English, got.Language)
	assert.Equal(t, session.StateSelectingLanguage, got.State)
	assert.Len(t, mr.Keys(), 1)
}

func TestRedisStore_Missing(t *testing.T) {
	t.Parallel()
	store, _, _ := newRedisStore(t)

	_, err := store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	t.Parallel()
	store, mr, _ := newRedisStore(t)

	require.NoError(t, mr.Set(testPrefix+"5", "{not json"))

	_, err := store.Get(context.Background(), 5)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_ServerGone(t *testing.T) {
	t.Parallel()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	store := session.NewRedisStoreWithClient(rdb, testPrefix, slog.New(slog.DiscardHandler))
	mr.Close()

	err = store.Save(context.Background(), session.New(1, 1))
	require.Error(t, err)
	assert.Equal(t, errs.CodeSession, errs.Code(err))
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := session.NewRedisStore(context.Background(), "http://localhost:6379", "p:", slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Equal(t, errs.CodeSession, errs.Code(err))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	t.Parallel()

	_, err := session.NewRedisStore(context.Background(), "redis://127.0.0.1:1/0", "p:", slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Equal(t, errs.CodeSession, errs.Code(err))
}

func TestNewRedisStore_Connects(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	store, err := session.NewRedisStore(context.Background(), "redis://"+mr.Addr()+"/0", testPrefix, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Save(context.Background(), session.New(3, 3)))
	assert.True(t, mr.Exists(testPrefix+"3"))
}
