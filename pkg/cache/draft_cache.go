package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultDraftTTL applies when NewDraftCache is given a non-positive TTL.
	DefaultDraftTTL = 30 * time.Minute

	draftCacheKeyPrefix = "draft"
)

// CachedDraft is the in-progress form state stored in Redis so a visitor's
// draft survives a process restart.
type CachedDraft struct {
	FormID    uuid.UUID `json:"form_id"`
	FullName  string    `json:"full_name"`
	Size      string    `json:"size"`
	Toppings  []string  `json:"toppings"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DraftCache stores drafts as Redis hashes.
// Key format: "{namespace}:draft:{formID}"
type DraftCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewDraftCache creates a DraftCache backed by the given RedisClient.
func NewDraftCache(r *RedisClient, ttl time.Duration) *DraftCache {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftCache{client: r, ttl: ttl}
}

// Get retrieves the draft for formID.
// Returns redis.Nil when the key does not exist or has expired.
func (c *DraftCache) Get(ctx context.Context, formID uuid.UUID) (*CachedDraft, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(formID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	return &CachedDraft{
		FormID:    formID,
		FullName:  vals["full_name"],
		Size:      vals["size"],
		Toppings:  splitToppings(vals["toppings"]),
		UpdatedAt: updatedAt,
	}, nil
}

// Set writes the draft and refreshes its TTL in one pipeline.
func (c *DraftCache) Set(ctx context.Context, d *CachedDraft) error {
	key := c.key(d.FormID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"full_name", d.FullName,
		"size", d.Size,
		"toppings", strings.Join(d.Toppings, ","),
		"updated_at", d.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes the draft for formID.
func (c *DraftCache) Delete(ctx context.Context, formID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(formID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// TTL returns how long an untouched draft is kept.
func (c *DraftCache) TTL() time.Duration {
	return c.ttl
}

func (c *DraftCache) key(formID uuid.UUID) string {
	return c.client.Key(draftCacheKeyPrefix, formID.String())
}

func splitToppings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}
