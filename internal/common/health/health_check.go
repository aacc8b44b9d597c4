package health

import (
	"context"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Status is the overall health of the server.
type Status struct {
	Status    string                 `json:"status"` // "healthy" or "degraded"
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]interface{} `json:"checks"`
	Duration  int64                  `json:"duration_ms"`
}

// Checker probes the storage and cache backends. Either backend may be nil:
// the memory store has no database handle and the leaderboard cache is
// optional.
type Checker struct {
	db        *gorm.DB
	rdb       *redis.Client
	startTime time.Time
}

func NewChecker(db *gorm.DB, rdb *redis.Client) *Checker {
	return &Checker{
		db:        db,
		rdb:       rdb,
		startTime: time.Now(),
	}
}

// Check probes every backend and reports per-component results.
func (c *Checker) Check(ctx context.Context) Status {
	start := time.Now()
	status := Status{
		Timestamp: start,
		Checks:    make(map[string]interface{}),
	}

	healthy := true

	storeCheck := c.checkStore()
	status.Checks["store"] = storeCheck
	if ok, found := storeCheck["healthy"].(bool); found && !ok {
		healthy = false
	}

	cacheCheck := c.checkCache(ctx)
	status.Checks["cache"] = cacheCheck
	if ok, found := cacheCheck["healthy"].(bool); found && !ok {
		healthy = false
	}

	status.Checks["runtime"] = map[string]interface{}{
		"goroutines":     runtime.NumGoroutine(),
		"uptime_seconds": int64(time.Since(c.startTime).Seconds()),
	}

	if healthy {
		status.Status = "healthy"
	} else {
		status.Status = "degraded"
	}
	status.Duration = time.Since(start).Milliseconds()

	return status
}

func (c *Checker) checkStore() map[string]interface{} {
	if c.db == nil {
		return map[string]interface{}{
			"healthy": true,
			"backend": "memory",
		}
	}

	start := time.Now()
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return map[string]interface{}{
			"healthy": false,
			"backend": "database",
			"error":   err.Error(),
		}
	}

	return map[string]interface{}{
		"healthy":    true,
		"backend":    "database",
		"latency_ms": time.Since(start).Milliseconds(),
	}
}

func (c *Checker) checkCache(ctx context.Context) map[string]interface{} {
	if c.rdb == nil {
		return map[string]interface{}{
			"healthy": true,
			"backend": "disabled",
		}
	}

	start := time.Now()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return map[string]interface{}{
			"healthy": false,
			"backend": "redis",
			"error":   err.Error(),
		}
	}

	return map[string]interface{}{
		"healthy":    true,
		"backend":    "redis",
		"latency_ms": time.Since(start).Milliseconds(),
	}
}

// IsReady reports whether the server can serve traffic. A memory store is
// always ready.
func (c *Checker) IsReady(ctx context.Context) bool {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return false
		}
	}
	if c.rdb != nil && c.rdb.Ping(ctx).Err() != nil {
		return false
	}
	return true
}

// IsAlive reports whether the process is running.
func (c *Checker) IsAlive() bool {
	return true
}
