package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edgard/halalbot/internal/errs"
)

const redisDialTimeout = 5 * time.Second

// RedisStore keeps sessions in Redis so several bot replicas share them.
// Keys never expire.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	log    *slog.Logger
}

// NewRedisStore connects to the Redis server at url (redis://...) and pings it.
func NewRedisStore(ctx context.Context, url, prefix string, logger *slog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.NewSessionError("invalid redis url", err)
	}
	opts.DialTimeout = redisDialTimeout

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errs.NewSessionError("redis ping failed", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return NewRedisStoreWithClient(rdb, prefix, logger), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(rdb *redis.Client, prefix string, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
		log:    logger.With("component", "session_store", "backend", "redis"),
	}
}

func (r *RedisStore) key(userID int64) string {
	return r.prefix + strconv.FormatInt(userID, 10)
}

// Get loads and decodes the session of userID.
func (r *RedisStore) Get(ctx context.Context, userID int64) (*Session, error) {
	raw, err := r.rdb.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errs.NewSessionError(fmt.Sprintf("failed to load session %d", userID), err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		r.log.WarnContext(ctx, "Discarding undecodable session", "user_id", userID, "error", err)
		return nil, ErrNotFound
	}
	return &s, nil
}

// Save encodes s and stores it without expiry.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	if s == nil {
		return fmt.Errorf("cannot save nil session")
	}
	s.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %d: %w", s.UserID, err)
	}
	if err := r.rdb.Set(ctx, r.key(s.UserID), raw, 0).Err(); err != nil {
		return errs.NewSessionError(fmt.Sprintf("failed to save session %d", s.UserID), err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}

var _ Store = (*RedisStore)(nil)
