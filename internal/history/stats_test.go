package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/foodboard/internal/types"
)

func TestManager_StatsPerOp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "foodboard.db")
	m := newTestManager(t, dbPath, "http://api.local")
	other := newTestManager(t, dbPath, "http://other.local")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, m.Save(types.ActivityEntry{Timestamp: base, Op: types.OpCreate, Success: true, DurationMS: 10}))
	require.NoError(t, m.Save(types.ActivityEntry{Timestamp: base.Add(time.Minute), Op: types.OpCreate, Success: false, DurationMS: 30}))
	require.NoError(t, m.Save(types.ActivityEntry{Timestamp: base.Add(2 * time.Minute), Op: types.OpLoad, Success: true, DurationMS: 5}))
	require.NoError(t, other.Save(types.ActivityEntry{Timestamp: base, Op: types.OpDelete, Success: true}))

	stats, err := m.StatsPerOp()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Most recently used first
	assert.Equal(t, types.OpLoad, stats[0].Op)
	assert.Equal(t, 1, stats[0].TotalCalls)

	create := stats[1]
	assert.Equal(t, types.OpCreate, create.Op)
	assert.Equal(t, 2, create.TotalCalls)
	assert.Equal(t, 1, create.SuccessCount)
	assert.Equal(t, 1, create.ErrorCount)
	assert.InDelta(t, 20.0, create.AvgDurationMs, 0.001)
	assert.Equal(t, int64(10), create.MinDurationMs)
	assert.Equal(t, int64(30), create.MaxDurationMs)
	assert.InDelta(t, 0.5, create.SuccessRate(), 0.001)
	assert.WithinDuration(t, base.Add(time.Minute), create.LastCalled, time.Second)
}

func TestManager_StatsCacheInvalidatedOnWrite(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "foodboard.db"), "")

	stats, err := m.StatsPerOp()
	require.NoError(t, err)
	assert.Empty(t, stats)

	require.NoError(t, m.Save(types.ActivityEntry{Op: types.OpLoad, Success: true}))

	stats, err = m.StatsPerOp()
	require.NoError(t, err)
	require.Len(t, stats, 1)

	require.NoError(t, m.Clear())

	stats, err = m.StatsPerOp()
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestStats_SuccessRateEmpty(t *testing.T) {
	assert.Zero(t, Stats{}.SuccessRate())
}

func TestStatsCache_DropsResultComputedBeforeInvalidate(t *testing.T) {
	c := newStatsCache(time.Minute)

	gen := c.generation()
	c.invalidate()
	c.set([]Stats{{Op: types.OpLoad, TotalCalls: 1}}, gen)

	_, ok := c.get()
	assert.False(t, ok, "stale result must not be cached")

	c.set([]Stats{{Op: types.OpLoad, TotalCalls: 2}}, c.generation())
	got, ok := c.get()
	require.True(t, ok)
	assert.Equal(t, 2, got[0].TotalCalls)
}
