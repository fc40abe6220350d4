package history

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			artist TEXT NOT NULL,
			album TEXT NOT NULL,
			year INTEGER,
			queried_at INTEGER NOT NULL,
			query_count INTEGER NOT NULL,
			candidate_count INTEGER NOT NULL,
			best_username TEXT,
			best_directory TEXT,
			best_score INTEGER,
			downloaded INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_searches_queried_at ON searches(queried_at DESC);
		CREATE INDEX IF NOT EXISTS idx_searches_artist_album ON searches(artist, album);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
