// Package cache holds the redis read-through cache for title records.
// Cache failures are logged and treated as misses; the database stays the
// source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"reviewhub/internal/api/models"
	"reviewhub/internal/config"
)

// NewRedisClient builds the shared redis client from config.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	return redis.NewClient(opts), nil
}

// TitleCache caches title reads keyed by id.
type TitleCache interface {
	Get(ctx context.Context, id int64) (*models.Title, bool)
	Set(ctx context.Context, title *models.Title)
	Invalidate(ctx context.Context, id int64)
}

type redisTitleCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewTitleCache(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) TitleCache {
	return &redisTitleCache{rdb: rdb, ttl: ttl, logger: logger}
}

func titleKey(id int64) string {
	return fmt.Sprintf("title:%d", id)
}

func (c *redisTitleCache) Get(ctx context.Context, id int64) (*models.Title, bool) {
	data, err := c.rdb.Get(ctx, titleKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Int64("title_id", id).Msg("title cache read failed")
		}
		return nil, false
	}

	var title models.Title
	if err := json.Unmarshal(data, &title); err != nil {
		c.logger.Warn().Err(err).Int64("title_id", id).Msg("title cache entry corrupt")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &title, true
}

func (c *redisTitleCache) Set(ctx context.Context, title *models.Title) {
	data, err := json.Marshal(title)
	if err != nil {
		c.logger.Warn().Err(err).Int64("title_id", title.ID).Msg("title cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, titleKey(title.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("title_id", title.ID).Msg("title cache write failed")
	}
}

func (c *redisTitleCache) Invalidate(ctx context.Context, id int64) {
	if err := c.rdb.Del(ctx, titleKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("title_id", id).Msg("title cache invalidation failed")
	}
}
