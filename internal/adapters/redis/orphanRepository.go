package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OrphanKey is the Redis set holding URLs of objects no row refers to.
const OrphanKey = "orphans:uploads"

type OrphanQueueRedis struct {
	Client *redis.Client
	key    string
	logger *zap.Logger
}

func NewOrphanQueueRedis(client *redis.Client, logger *zap.Logger) *OrphanQueueRedis {
	return &OrphanQueueRedis{
		Client: client,
		key:    OrphanKey,
		logger: logger,
	}
}

// Record adds urls to the orphan set. Recording the same URL twice keeps one entry.
func (r *OrphanQueueRedis) Record(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(urls))
	for _, u := range urls {
		members = append(members, u)
	}
	if err := r.Client.SAdd(ctx, r.key, members...).Err(); err != nil {
		return err
	}
	r.logger.Info("orphaned uploads recorded", zap.String("key", r.key), zap.Int("count", len(urls)))
	return nil
}

// Pop removes and returns up to limit URLs.
func (r *OrphanQueueRedis) Pop(ctx context.Context, limit int64) ([]string, error) {
	urls, err := r.Client.SPopN(ctx, r.key, limit).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return urls, err
}
