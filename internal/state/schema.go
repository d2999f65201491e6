package state

import (
	"context"
	"database/sql"

	"github.com/llehouerou/reel/internal/db"
)

const currentSchemaVersion = 1

func initSchema(ctx context.Context, conn *sql.DB) error {
	return db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS session_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				open_list_id TEXT NOT NULL,
				sort_key TEXT,
				sort_desc INTEGER NOT NULL DEFAULT 0
			);
		`)
		if err != nil {
			return err
		}

		// Set initial version if not exists
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO schema_version (version) VALUES (?)
		`, currentSchemaVersion)
		return err
	})
}
