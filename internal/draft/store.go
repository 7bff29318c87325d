package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"eventures/internal/shared/constants"
)

var ErrConflict = errors.New("draft was modified concurrently, please retry")

// Store persists one draft per customer. Load of an unknown customer returns
// a fresh empty draft, never an error.
type Store interface {
	Load(ctx context.Context, customerID uuid.UUID) (*Draft, error)
	Save(ctx context.Context, customerID uuid.UUID, d *Draft) error
	Delete(ctx context.Context, customerID uuid.UUID) error
	// Update applies fn to the current draft and stores the result atomically.
	// If fn returns an error nothing is written.
	Update(ctx context.Context, customerID uuid.UUID, fn func(*Draft) error) (*Draft, error)
}

// ================== REDIS ==================

const defaultUpdateRetries = 5

// RedisStore keeps drafts as JSON under a per-customer key. Every write
// refreshes the key's TTL so an abandoned draft expires on its own.
type RedisStore struct {
	client     *redis.Client
	ttl        time.Duration
	maxRetries int
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, maxRetries: defaultUpdateRetries}
}

func (s *RedisStore) Load(ctx context.Context, customerID uuid.UUID) (*Draft, error) {
	return load(ctx, s.client, constants.DraftKey(customerID.String()))
}

func (s *RedisStore) Save(ctx context.Context, customerID uuid.UUID, d *Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, constants.DraftKey(customerID.String()), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := s.client.Del(ctx, constants.DraftKey(customerID.String())).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

// Update runs fn inside a WATCH/MULTI transaction and retries when another
// writer touched the key in between.
func (s *RedisStore) Update(ctx context.Context, customerID uuid.UUID, fn func(*Draft) error) (*Draft, error) {
	key := constants.DraftKey(customerID.String())
	var result *Draft

	txf := func(tx *redis.Tx) error {
		d, err := load(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to encode draft: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			result = d
		}
		return err
	}

	for i := 0; i < s.maxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrConflict
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func load(ctx context.Context, c getter, key string) (*Draft, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	d := New()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	if d.CartItems == nil {
		d.CartItems = []CartLine{}
	}
	return d, nil
}

// ================== MEMORY ==================

// MemoryStore is a process-local Store used when Redis is disabled
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[uuid.UUID]*Draft)}
}

func (s *MemoryStore) Load(_ context.Context, customerID uuid.UUID) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(customerID), nil
}

func (s *MemoryStore) Save(_ context.Context, customerID uuid.UUID, d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[customerID] = d.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, customerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, customerID)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, customerID uuid.UUID, fn func(*Draft) error) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.get(customerID)
	if err := fn(d); err != nil {
		return nil, err
	}
	s.drafts[customerID] = d.Clone()
	return d, nil
}

func (s *MemoryStore) get(customerID uuid.UUID) *Draft {
	if d, ok := s.drafts[customerID]; ok {
		return d.Clone()
	}
	return New()
}
