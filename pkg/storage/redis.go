package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lborres/rolegate/core"
)

const defaultRedisTimeout = 3 * time.Second

type RedisConfig struct {
	// Prefix is prepended to every key, e.g. "rolegate:".
	Prefix string
	// Timeout bounds each round trip. Zero selects 3s.
	Timeout time.Duration
	// TTL, when set, expires keys server-side as a backstop for records
	// nobody reads again. Lazy expiry on read still applies.
	TTL time.Duration
}

// Redis is a KeyValueStorage shared by every process pointing at the same
// server, so HTTP replicas see the same client sessions.
type Redis struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
	ttl     time.Duration
}

var _ core.KeyValueStorage = (*Redis)(nil)

func NewRedis(client redis.UniversalClient, c RedisConfig) *Redis {
	if c.Timeout == 0 {
		c.Timeout = defaultRedisTimeout
	}
	return &Redis{
		client:  client,
		prefix:  c.Prefix,
		timeout: c.Timeout,
		ttl:     c.TTL,
	}
}

// DialRedis parses a redis:// URL and pings the server.
func DialRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), defaultRedisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

func (r *Redis) GetItem(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Redis) SetItem(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	return r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

func (r *Redis) RemoveItem(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	return r.client.Del(ctx, r.prefix+key).Err()
}
