package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wapuda/tg-encoder-bot/internal/jobs"
)

// RedisStore keeps records as JSON under job:<id>; ttl bounds their lifetime.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func keyJob(id string) string { return "job:" + id }

func (s *RedisStore) Put(ctx context.Context, id string, rec jobs.Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyJob(id), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (jobs.Record, bool, error) {
	raw, err := s.rdb.Get(ctx, keyJob(id)).Bytes()
	return decode(id, raw, err)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyJob(id)).Err()
}

func (s *RedisStore) Claim(ctx context.Context, id string) (jobs.Record, bool, error) {
	raw, err := s.rdb.GetDel(ctx, keyJob(id)).Bytes()
	return decode(id, raw, err)
}

func decode(id string, raw []byte, err error) (jobs.Record, bool, error) {
	if errors.Is(err, redis.Nil) {
		return jobs.Record{}, false, nil
	}
	if err != nil {
		return jobs.Record{}, false, fmt.Errorf("redis get %s: %w", id, err)
	}
	var rec jobs.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return jobs.Record{}, false, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, true, nil
}
