package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix  = "stopwatch:"
	defaultRedisTimeout = 2 * time.Second
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	URL     string
	Prefix  string
	Timeout time.Duration
}

// RedisClient is the subset of the redis client the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisStore keeps values in redis under a key prefix.
type RedisStore struct {
	client  RedisClient
	prefix  string
	timeout time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects lazily to the redis server at options.URL.
func NewRedisStore(options RedisOptions) (*RedisStore, error) {
	if options.URL == "" {
		return nil, errors.New("redis url is required")
	}
	clientOptions, err := redis.ParseURL(options.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return newRedisStore(redis.NewClient(clientOptions), options), nil
}

func newRedisStore(client RedisClient, options RedisOptions) *RedisStore {
	if options.Prefix == "" {
		options.Prefix = defaultRedisPrefix
	}
	if options.Timeout <= 0 {
		options.Timeout = defaultRedisTimeout
	}
	return &RedisStore{
		client:  client,
		prefix:  options.Prefix,
		timeout: options.Timeout,
	}
}

func (store *RedisStore) Load(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), store.timeout)
	defer cancel()

	value, err := store.client.Get(ctx, store.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (store *RedisStore) Save(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), store.timeout)
	defer cancel()

	if err := store.client.Set(ctx, store.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (store *RedisStore) Close() error {
	return store.client.Close()
}
