// Package cache holds redis-backed read-side caches. Only the subscription
// projection is cached; quota usage counts never are.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fakturio-inc/fakturio/internal/shared/logger"
)

// CachedSubscription is the cached projection of an account's subscription.
// SyncedAt travels with it so staleness stays observable after a cache hit.
type CachedSubscription struct {
	ID                   string     `json:"id"`
	AccountID            string     `json:"account_id"`
	Plan                 string     `json:"plan"`
	BillingInterval      string     `json:"billing_interval"`
	Status               string     `json:"status"`
	StripeCustomerID     string     `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string     `json:"stripe_subscription_id,omitempty"`
	CurrentPeriodStart   *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd    bool       `json:"cancel_at_period_end"`
	ScheduledPlan        *string    `json:"scheduled_plan,omitempty"`
	ScheduledInterval    *string    `json:"scheduled_interval,omitempty"`
	ScheduledEffectiveAt *time.Time `json:"scheduled_effective_at,omitempty"`
	ScheduleRef          *string    `json:"schedule_ref,omitempty"`
	SyncedAt             *time.Time `json:"synced_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	Version              int64      `json:"version"`
	// NotFound marks an account confirmed to have no subscription,
	// preventing repeated DB lookups.
	NotFound bool `json:"not_found,omitempty"`
}

// SubscriptionProjectionCache caches the per-account subscription projection.
type SubscriptionProjectionCache interface {
	Get(ctx context.Context, accountID string) (*CachedSubscription, error)
	Set(ctx context.Context, accountID string, projection *CachedSubscription) error
	SetNotFound(ctx context.Context, accountID string) error
	Invalidate(ctx context.Context, accountID string) error
}

const (
	projectionKeyPrefix = "subscription:projection:"
	baseProjectionTTL   = 10 * time.Minute
	projectionTTLJitter = 5 * time.Minute // TTL range: 10-15 min (anti-stampede)
	notFoundTTL         = 2 * time.Minute // Short TTL for not-found markers
)

// RedisSubscriptionProjectionCache implements the projection cache on redis.
type RedisSubscriptionProjectionCache struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisSubscriptionProjectionCache(client *redis.Client, logger logger.Interface) *RedisSubscriptionProjectionCache {
	return &RedisSubscriptionProjectionCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisSubscriptionProjectionCache) key(accountID string) string {
	return projectionKeyPrefix + accountID
}

func (c *RedisSubscriptionProjectionCache) Get(ctx context.Context, accountID string) (*CachedSubscription, error) {
	raw, err := c.client.Get(ctx, c.key(accountID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get subscription projection from cache: %w", err)
	}

	var projection CachedSubscription
	if err := json.Unmarshal([]byte(raw), &projection); err != nil {
		return nil, fmt.Errorf("failed to decode subscription projection: %w", err)
	}
	return &projection, nil
}

func (c *RedisSubscriptionProjectionCache) Set(ctx context.Context, accountID string, projection *CachedSubscription) error {
	encoded, err := json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("failed to encode subscription projection: %w", err)
	}

	if err := c.client.Set(ctx, c.key(accountID), encoded, projectionTTLWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set subscription projection in cache: %w", err)
	}

	c.logger.Debugw("subscription projection cached",
		"account_id", accountID,
		"status", projection.Status,
	)
	return nil
}

func (c *RedisSubscriptionProjectionCache) SetNotFound(ctx context.Context, accountID string) error {
	encoded, err := json.Marshal(&CachedSubscription{NotFound: true})
	if err != nil {
		return fmt.Errorf("failed to encode not-found marker: %w", err)
	}

	if err := c.client.Set(ctx, c.key(accountID), encoded, notFoundTTL).Err(); err != nil {
		return fmt.Errorf("failed to set not-found marker in cache: %w", err)
	}
	return nil
}

func (c *RedisSubscriptionProjectionCache) Invalidate(ctx context.Context, accountID string) error {
	if err := c.client.Del(ctx, c.key(accountID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate subscription projection: %w", err)
	}

	c.logger.Debugw("subscription projection cache invalidated", "account_id", accountID)
	return nil
}

// projectionTTLWithJitter spreads expirations to avoid a thundering herd on
// popular accounts.
func projectionTTLWithJitter() time.Duration {
	return baseProjectionTTL + rand.N(projectionTTLJitter)
}
