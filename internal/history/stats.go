package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/studiowebux/foodboard/internal/types"
)

const statsCacheTTL = 30 * time.Second

// Stats aggregates the recorded outcomes of one operation
type Stats struct {
	Op            types.Operation `json:"op" yaml:"op"`
	TotalCalls    int             `json:"totalCalls" yaml:"totalCalls"`
	SuccessCount  int             `json:"successCount" yaml:"successCount"`
	ErrorCount    int             `json:"errorCount" yaml:"errorCount"`
	AvgDurationMs float64         `json:"avgDurationMs" yaml:"avgDurationMs"`
	MinDurationMs int64           `json:"minDurationMs" yaml:"minDurationMs"`
	MaxDurationMs int64           `json:"maxDurationMs" yaml:"maxDurationMs"`
	LastCalled    time.Time       `json:"lastCalled" yaml:"lastCalled"`
}

// SuccessRate returns the share of successful calls, 0 when there are none
func (s Stats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessCount) / float64(s.TotalCalls)
}

// StatsPerOp returns one Stats per operation for the manager's backend,
// most recently used first. Results are cached until the next write.
func (m *Manager) StatsPerOp() ([]Stats, error) {
	if cached, ok := m.stats.get(); ok {
		return cached, nil
	}
	gen := m.stats.generation()

	query := `
		SELECT
			op,
			COUNT(*) as total_calls,
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as error_count,
			AVG(duration_ms) as avg_duration,
			MIN(duration_ms) as min_duration,
			MAX(duration_ms) as max_duration,
			MAX(timestamp) as last_called
		FROM activity
		WHERE ? = '' OR base_url = ?
		GROUP BY op
		ORDER BY last_called DESC
	`

	rows, err := m.db.Query(query, m.baseURL, m.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity stats: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var op string
		var lastCalled sql.NullString

		if err := rows.Scan(
			&op,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.ErrorCount,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&lastCalled,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity stats: %w", err)
		}

		s.Op = types.Operation(op)
		if lastCalled.Valid {
			s.LastCalled = parseTimestamp(lastCalled.String)
		}
		statsList = append(statsList, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m.stats.set(statsList, gen)
	return statsList, nil
}

// statsCache holds the last StatsPerOp result for a short time
type statsCache struct {
	mu          sync.RWMutex
	stats       []Stats
	lastRefresh time.Time
	ttl         time.Duration
	// gen advances on every invalidate; set drops results computed before it
	gen uint64
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{ttl: ttl}
}

func (c *statsCache) get() ([]Stats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stats == nil || time.Since(c.lastRefresh) > c.ttl {
		return nil, false
	}
	return c.stats, true
}

func (c *statsCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *statsCache) set(stats []Stats, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	if stats == nil {
		stats = []Stats{}
	}
	c.stats = stats
	c.lastRefresh = time.Now()
}

func (c *statsCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats = nil
	c.gen++
}
