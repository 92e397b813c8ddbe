package overlay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the durable tier with redis. Keys are stored verbatim
// under a configurable namespace prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisConfig struct {
	URL          string
	Namespace    string
	PoolSize     int
	MinIdleConns int
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("overlay: parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("overlay: connect redis: %w", err)
	}

	prefix := cfg.Namespace
	if prefix == "" {
		prefix = "overlay"
	}
	return &RedisStore{client: client, prefix: prefix + ":"}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("overlay: redis get %s: %w", key, err)
	}
	return raw, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("overlay: redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("overlay: redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	iter := s.client.Scan(ctx, 0, s.prefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		out = append(out, iter.Val()[len(s.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("overlay: redis scan: %w", err)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
