package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/pizzaorder/pkg/config"
)

// ErrRedisDisabled is returned by NewRedisClient when no REDIS_URL is set.
// The web shell then keeps drafts in memory and sessions in cookies.
var ErrRedisDisabled = errors.New("redis disabled: REDIS_URL is empty")

const defaultNamespace = "pizzaorder"

// Draft writes run inside the order observer's 2s budget, so socket timeouts
// stay well below it.
const (
	poolSize     = 10
	minIdleConns = 2
	maxRetries   = 2
	dialTimeout  = 2 * time.Second
	ioTimeout    = 500 * time.Millisecond
	poolTimeout  = time.Second
	pingTimeout  = 2 * time.Second
)

// RedisClient is the shared Redis connection of the order service. Every key
// it hands out is namespaced by the service name, e.g. "pizzaorder:draft:{id}".
type RedisClient struct {
	client    *redis.Client
	namespace string
}

// NewRedisClient connects to cfg.RedisURL and verifies the connection.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	if !cfg.RedisEnabled() {
		return nil, ErrRedisDisabled
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = poolSize
	opts.MinIdleConns = minIdleConns
	opts.MaxRetries = maxRetries
	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = ioTimeout
	opts.WriteTimeout = ioTimeout
	opts.PoolTimeout = poolTimeout

	rc := &RedisClient{
		client:    redis.NewClient(opts),
		namespace: namespaceFor(cfg.ServiceName),
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		_ = rc.client.Close()
		return nil, err
	}
	return rc, nil
}

func namespaceFor(service string) string {
	service = strings.TrimSpace(service)
	if service == "" {
		return defaultNamespace
	}
	return service
}

// Key joins parts under the client's namespace.
func (r *RedisClient) Key(parts ...string) string {
	return r.namespace + ":" + strings.Join(parts, ":")
}

// Ping checks the Redis connection health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client, used by the session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
