package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "wizard:session:"

// DefaultSessionTTL is how long an untouched session survives in Redis.
// Every Put refreshes the TTL, so active sessions never expire mid-edit.
const DefaultSessionTTL = 24 * time.Hour

// RedisStore persists sessions in Redis so the wizard survives process
// restarts and works behind multiple server instances.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &SessionNotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("loading wizard session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding wizard session %s: %w", id, err)
	}
	if s.StepVersions == nil {
		s.StepVersions = make(map[StepKey]uint64)
	}
	return &s, nil
}

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding wizard session %s: %w", s.ID, err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("storing wizard session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting wizard session: %w", err)
	}
	return nil
}
