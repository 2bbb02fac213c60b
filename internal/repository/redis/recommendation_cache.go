package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pricedeck/domain"
)

const recommendationKeyPrefix = "pricing:recommendations:"

// RecommendationCache stores recommendation batches under a TTL. Entries
// disappear on their own after the TTL; Invalidate drops them immediately
// after imports change the underlying data.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RecommendationCache) Get(ctx context.Context, key string) ([]domain.Recommendation, bool, error) {
	val, err := c.client.Get(ctx, recommendationKeyPrefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return recs, true, nil
}

func (c *RecommendationCache) Set(ctx context.Context, key string, recs []domain.Recommendation) error {
	jsonData, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, recommendationKeyPrefix+key, jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}

	return nil
}

// Invalidate removes every cached batch.
func (c *RecommendationCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, recommendationKeyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan recommendation keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate recommendations: %w", err)
	}

	return nil
}
