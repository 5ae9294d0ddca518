// Package cache provides a Redis read-through cache for workspace
// lookups. Cache failures are never fatal: a Redis error degrades to a
// miss and the caller falls back to Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arjun-dev21/teamforge/internal/models"
)

const workspaceKeyPrefix = "workspace:"

type WorkspaceCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewWorkspaceCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *WorkspaceCache {
	return &WorkspaceCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the cached workspace and whether it was present.
func (c *WorkspaceCache) Get(ctx context.Context, id uuid.UUID) (*models.Workspace, bool) {
	data, err := c.rdb.Get(ctx, workspaceKeyPrefix+id.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("workspace cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var ws models.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		c.logger.Warn("workspace cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &ws, true
}

// Set stores the workspace aggregate under its ID with the cache TTL.
func (c *WorkspaceCache) Set(ctx context.Context, ws *models.Workspace) {
	data, err := json.Marshal(ws)
	if err != nil {
		c.logger.Warn("workspace cache encode failed", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, workspaceKeyPrefix+ws.ID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("workspace cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached entry. Called after membership changes and
// deletion so a stale aggregate can't outlive the row.
func (c *WorkspaceCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, workspaceKeyPrefix+id.String()).Err(); err != nil {
		c.logger.Warn("workspace cache invalidation failed", zap.Error(err))
	}
}
