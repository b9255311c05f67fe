package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add activity lookup indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_activity_op ON activity(op);
			CREATE INDEX IF NOT EXISTS idx_activity_food_id ON activity(food_id);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_activity_op;
			DROP INDEX IF EXISTS idx_activity_food_id;
		`,
	},
	{
		Version: 2,
		Name:    "Add base_url column to activity",
		Up: `
			ALTER TABLE activity ADD COLUMN base_url TEXT NOT NULL DEFAULT '';
			CREATE INDEX IF NOT EXISTS idx_activity_base_url_timestamp ON activity(base_url, timestamp DESC);
		`,
		Down: `
			-- SQLite does not support DROP COLUMN easily
			DROP INDEX IF EXISTS idx_activity_base_url_timestamp;
		`,
	},
}

// InitSchema creates the tables every migration builds on.
// This must be called before running migrations to ensure all tables exist
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		op TEXT NOT NULL,
		food_id TEXT,
		food_name TEXT,
		success INTEGER NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp DESC);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Create migrations tracking table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	// Apply pending migrations, each in its own transaction
	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}
		if err := apply(db, migration); err != nil {
			return err
		}
	}

	return nil
}

func apply(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.Up); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
	}

	_, err = tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		migration.Version,
		migration.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	return tx.Commit()
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
