// internal/cache/report_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/princevibe/books-backend/internal/config"
	"github.com/princevibe/books-backend/internal/ledger"
)

const (
	reportKeyPrefix = "report:profit-loss"
	scanBatchSize   = 100
)

// ReportCache holds assembled profit-and-loss reports keyed by period. The
// gateway invalidates it after a migration, since the backing data moved.
type ReportCache interface {
	GetReport(ctx context.Context, period ledger.Period, custom ledger.DateRange) (*ledger.Report, bool, error)
	SetReport(ctx context.Context, period ledger.Period, custom ledger.DateRange, report *ledger.Report) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache returns the redis-backed cache when caching is enabled,
// otherwise a no-op that always misses.
func NewReportCache(cfg config.Cache) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetReport(ctx context.Context, period ledger.Period, custom ledger.DateRange) (*ledger.Report, bool, error) {
	key := buildReportKey(period, custom)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report ledger.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode report cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisReportCache) SetReport(ctx context.Context, period ledger.Period, custom ledger.DateRange, report *ledger.Report) error {
	key := buildReportKey(period, custom)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix, scanBatchSize)
}

func (n *noopReportCache) GetReport(ctx context.Context, period ledger.Period, custom ledger.DateRange) (*ledger.Report, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetReport(ctx context.Context, period ledger.Period, custom ledger.DateRange, report *ledger.Report) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(period ledger.Period, custom ledger.DateRange) string {
	parts := []string{"period=" + string(period)}
	if period == ledger.PeriodCustom {
		parts = append(parts,
			"start="+custom.Start.UTC().Format(time.RFC3339),
			"end="+custom.End.UTC().Format(time.RFC3339),
		)
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", reportKeyPrefix, hex.EncodeToString(hash[:]))
}
