package memorydb

import (
	"context"
	"errors"
	"strings"
	"time"

	"ocr-translate-api/cmd/configs"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the translation cache. Keys are namespaced with prefix.
type RedisClient struct {
	client redis.UniversalClient
	prefix string
}

// Options turns REDIS_URL into client options. Both a bare "host:port" and a
// redis:// or rediss:// URL are accepted; explicit credentials win over the URL's.
func Options(config *configs.Config) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{
		Addrs:        []string{config.MemoryDBRedisURL},
		ReadTimeout:  time.Second * 5,
		WriteTimeout: time.Second * 5,
		PoolSize:     10,
	}

	if strings.Contains(config.MemoryDBRedisURL, "://") {
		parsed, err := redis.ParseURL(config.MemoryDBRedisURL)
		if err != nil {
			return nil, err
		}
		opts.Addrs = []string{parsed.Addr}
		opts.Username = parsed.Username
		opts.Password = parsed.Password
		opts.DB = parsed.DB
		opts.TLSConfig = parsed.TLSConfig
	}

	if config.MemoryDBRedisUsername != "" {
		opts.Username = config.MemoryDBRedisUsername
	}
	if config.MemoryDBRedisPassword != "" {
		opts.Password = config.MemoryDBRedisPassword
	}
	return opts, nil
}

func NewRedisClient(ctx context.Context, config *configs.Config) (*RedisClient, error) {
	opts, err := Options(config)
	if err != nil {
		return nil, err
	}

	// UniversalClient works with both standalone and cluster Redis
	client := redis.NewUniversalClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewFromUniversal(client, "ocr-translate:"), nil
}

// NewFromUniversal wraps an existing client.
func NewFromUniversal(client redis.UniversalClient, prefix string) *RedisClient {
	return &RedisClient{client: client, prefix: prefix}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Lookup reports a missing key as ok=false rather than an error.
func (r *RedisClient) Lookup(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key. A zero expiration keeps the key forever.
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, r.prefix+key, value, expiration).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
