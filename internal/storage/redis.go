package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures RedisKV.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Timeout  time.Duration
}

// RedisKV implements KV on Redis. Keys are namespaced as "<prefix>:<key>".
type RedisKV struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisKV connects to Redis and verifies the connection.
func NewRedisKV(opts RedisOptions) (*RedisKV, error) {
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	if opts.Prefix == "" {
		opts.Prefix = "finwatch"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisKV{client: client, prefix: opts.Prefix, timeout: opts.Timeout}, nil
}

// Close closes the Redis connection.
func (r *RedisKV) Close() error {
	return r.client.Close()
}

func (r *RedisKV) Get(key string) ([]byte, bool, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	b, err := r.client.Get(ctx, r.wrapKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisKV) Set(key string, value []byte) error {
	ctx, cancel := r.ctx()
	defer cancel()

	return r.client.Set(ctx, r.wrapKey(key), value, 0).Err()
}

func (r *RedisKV) Delete(key string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	return r.client.Unlink(ctx, r.wrapKey(key)).Err()
}

func (r *RedisKV) Keys() ([]string, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var keys []string
	iter := r.client.Scan(ctx, 0, r.wrapKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, r.unwrapKey(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	slices.Sort(keys)
	return slices.Compact(keys), nil
}

func (r *RedisKV) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *RedisKV) wrapKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisKV) unwrapKey(key string) string {
	return strings.TrimPrefix(key, r.prefix+":")
}
