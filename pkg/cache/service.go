package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("cache miss")
)

type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) bool

	// Cache-aside: on a miss, fetcher fills dest and the result is stored
	GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetcher func(ctx context.Context) (interface{}, error)) (hit bool, err error)

	Ping(ctx context.Context) error
}

type service struct {
	client *redis.Client
}

func NewService(client *redis.Client) Service {
	return &service{client: client}
}

func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

func (s *service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// DeletePattern removes every key matching pattern. SCAN is used so a large
// keyspace does not block the server the way KEYS would.
func (s *service) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan error: %w", err)
		}

		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete pattern error: %w", err)
			}
		}

		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *service) Exists(ctx context.Context, key string) bool {
	result, err := s.client.Exists(ctx, key).Result()
	return err == nil && result > 0
}

func (s *service) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, fetcher func(ctx context.Context) (interface{}, error)) (bool, error) {
	err := s.Get(ctx, key, dest)
	if err == nil {
		return true, nil
	}

	data, err := fetcher(ctx)
	if err != nil {
		return false, err
	}

	// A failed cache write must not fail the read
	_ = s.Set(ctx, key, data, ttl)

	// Round-trip so dest receives the fetched value whatever its concrete type
	raw, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("marshal fetched data error: %w", err)
	}

	return false, json.Unmarshal(raw, dest)
}

func (s *service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// noop never stores anything; every read is a miss.
type noop struct{}

// NewNoop returns a Service for deployments running without Redis
func NewNoop() Service {
	return noop{}
}

func (noop) Get(context.Context, string, interface{}) error { return ErrCacheMiss }

func (noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noop) Delete(context.Context, ...string) error { return nil }

func (noop) DeletePattern(context.Context, string) error { return nil }

func (noop) Exists(context.Context, string) bool { return false }

func (noop) GetOrSet(ctx context.Context, _ string, _ time.Duration, dest interface{}, fetcher func(ctx context.Context) (interface{}, error)) (bool, error) {
	data, err := fetcher(ctx)
	if err != nil {
		return false, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("marshal fetched data error: %w", err)
	}
	return false, json.Unmarshal(raw, dest)
}

func (noop) Ping(context.Context) error { return nil }
