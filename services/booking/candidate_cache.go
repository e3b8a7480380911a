package booking

import (
	"context"
	"encoding/json"
	"time"

	"zela/models"

	"github.com/go-redis/redis/v8"
)

const (
	candidateCacheTTL    = 30 * time.Second
	candidateCachePrefix = "booking:cands:"
)

// RedisCandidateCache keeps candidate lists in the general-purpose
// cache for a short TTL. Cache failures degrade to a fresh lookup.
type RedisCandidateCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCandidateCache(client *redis.Client) *RedisCandidateCache {
	return &RedisCandidateCache{client: client, ttl: candidateCacheTTL}
}

func (c *RedisCandidateCache) GetCandidates(ctx context.Context, key string) ([]models.Worker, bool) {
	data, err := c.client.Get(ctx, candidateCachePrefix+key).Result()
	if err != nil {
		return nil, false
	}
	var workers []models.Worker
	if err := json.Unmarshal([]byte(data), &workers); err != nil {
		return nil, false
	}
	return workers, true
}

func (c *RedisCandidateCache) PutCandidates(ctx context.Context, key string, workers []models.Worker) {
	data, err := json.Marshal(workers)
	if err != nil {
		return
	}
	c.client.Set(ctx, candidateCachePrefix+key, data, c.ttl)
}
