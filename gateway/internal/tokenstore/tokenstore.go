// Package tokenstore persists the session token of the signed-in user.
package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Key is the fixed name the session token is stored under.
const Key = "auth_token"

var ErrNoToken = errors.New("no auth token stored")

type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	// Remove is idempotent: removing an absent token succeeds.
	Remove(ctx context.Context) error
}

type RedisStore struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewRedisStore keeps the token under prefix+Key. A zero ttl never expires.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    prefix + Key,
		ttl:    ttl,
	}
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", errors.Wrap(err, "redis get token")
	}
	return token, nil
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Remove(ctx)
	}
	return errors.Wrap(s.client.Set(ctx, s.key, token, s.ttl).Err(), "redis set token")
}

func (s *RedisStore) Remove(ctx context.Context) error {
	return errors.Wrap(s.client.Del(ctx, s.key).Err(), "redis del token")
}

type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context) error {
	return s.Set(context.Background(), "")
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
