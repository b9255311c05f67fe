package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/studiowebux/foodboard/internal/config"
	"github.com/studiowebux/foodboard/internal/migrations"
	"github.com/studiowebux/foodboard/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05.000"

// Manager persists the activity log in SQLite
type Manager struct {
	db      *sql.DB
	baseURL string
	logger  zerolog.Logger
	stats   *statsCache
}

// NewManager opens (or creates) the activity database at dbPath.
// Entries recorded through the manager are tagged with baseURL and Recent
// only returns entries for that backend; an empty baseURL means every backend.
func NewManager(dbPath, baseURL string, logger zerolog.Logger) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	// Run database migrations
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{
		db:      db,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "history").Logger(),
		stats:   newStatsCache(statsCacheTTL),
	}, nil
}

// Record stores one completed operation. Failures are logged, never returned,
// so a broken database cannot block the dashboard.
func (m *Manager) Record(entry types.ActivityEntry) {
	if err := m.Save(entry); err != nil {
		m.logger.Warn().Err(err).Str("op", string(entry.Op)).Msg("failed to record activity")
	}
}

// Save inserts an entry and returns the error, if any
func (m *Manager) Save(entry types.ActivityEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.BaseURL == "" {
		entry.BaseURL = m.baseURL
	}

	query := `
		INSERT INTO activity (
			timestamp, op, food_id, food_name, success, error, duration_ms, base_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		entry.Timestamp.UTC().Format(timestampLayout),
		string(entry.Op),
		entry.FoodID,
		entry.FoodName,
		entry.Success,
		entry.Error,
		entry.DurationMS,
		entry.BaseURL,
	)
	if err != nil {
		return fmt.Errorf("failed to save activity entry: %w", err)
	}
	m.stats.invalidate()

	return nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (m *Manager) Recent(limit int) ([]types.ActivityEntry, error) {
	query := `
		SELECT id, timestamp, op, COALESCE(food_id, ''), COALESCE(food_name, ''),
		       success, COALESCE(error, ''), duration_ms, base_url
		FROM activity
		WHERE ? = '' OR base_url = ?
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{m.baseURL, m.baseURL}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.ActivityEntry, error) {
	var entries []types.ActivityEntry

	for rows.Next() {
		var entry types.ActivityEntry
		var timestamp string
		var op string

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&op,
			&entry.FoodID,
			&entry.FoodName,
			&entry.Success,
			&entry.Error,
			&entry.DurationMS,
			&entry.BaseURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}

		entry.Op = types.Operation(op)
		entry.Timestamp = parseTimestamp(timestamp)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// parseTimestamp reads the UTC layout written by Save. The driver converts
// DATETIME columns itself, so RFC3339 is accepted too.
func parseTimestamp(value string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, value, time.UTC); err == nil {
		return t.Local()
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.Local()
	}
	return time.Time{}
}

// Clear removes the entries of the manager's backend (every entry when the
// manager is not scoped)
func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM activity WHERE ? = '' OR base_url = ?", m.baseURL, m.baseURL)
	if err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	m.stats.invalidate()
	return nil
}

// GetCount returns the number of entries visible to the manager
func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM activity WHERE ? = '' OR base_url = ?", m.baseURL, m.baseURL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get activity count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
