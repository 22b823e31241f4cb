package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kitchen-inventory-service/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	reportsVersionKey = "reports:version"
	dashboardCacheTTL = 5 * time.Minute
)

// ReportCache caches the dashboard view in Redis. Keys carry a version
// number that is bumped on every write to the report log, so a cached
// dashboard can never serve data older than the last recorded event.
// All methods degrade to a no-op when Redis is unavailable.
type ReportCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewReportCache creates a ReportCache. client may be nil, in which case
// every lookup is a miss.
func NewReportCache(client *redis.Client, logger *zap.Logger) *ReportCache {
	return &ReportCache{client: client, logger: logger}
}

func (c *ReportCache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *ReportCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, reportsVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (c *ReportCache) dashboardKey(version int64) string {
	return fmt.Sprintf("reports:dashboard:v%d", version)
}

// GetDashboard returns the cached dashboard for the current report-log
// version, or (nil, false) on a miss.
func (c *ReportCache) GetDashboard(ctx context.Context) (*models.DashboardData, bool) {
	if !c.enabled() {
		return nil, false
	}
	version, err := c.version(ctx)
	if err != nil {
		c.logger.Warn("Failed to read reports cache version", zap.Error(err))
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.dashboardKey(version)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to read cached dashboard", zap.Error(err))
		return nil, false
	}
	var data models.DashboardData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.logger.Warn("Failed to decode cached dashboard", zap.Error(err))
		return nil, false
	}
	return &data, true
}

// SetDashboard stores the dashboard under the current version key.
func (c *ReportCache) SetDashboard(ctx context.Context, data *models.DashboardData) {
	if !c.enabled() {
		return
	}
	version, err := c.version(ctx)
	if err != nil {
		c.logger.Warn("Failed to read reports cache version", zap.Error(err))
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		c.logger.Warn("Failed to encode dashboard for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.dashboardKey(version), raw, dashboardCacheTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache dashboard", zap.Error(err))
	}
}

// Invalidate bumps the version so every previously cached view becomes
// unreachable. Old keys expire on their own TTL.
func (c *ReportCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.client.Incr(ctx, reportsVersionKey).Err(); err != nil {
		c.logger.Warn("Failed to bump reports cache version", zap.Error(err))
	}
}
