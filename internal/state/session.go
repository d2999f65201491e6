package state

import (
	"context"
	"database/sql"
	"errors"

	"github.com/llehouerou/reel/internal/db"
)

// Session is the view state restored at startup.
type Session struct {
	OpenListID string
	SortKey    string
	SortDesc   bool
}

func getSession(ctx context.Context, conn *sql.DB) (*Session, error) {
	row := conn.QueryRowContext(ctx, `
		SELECT open_list_id, sort_key, sort_desc FROM session_state WHERE id = 1
	`)

	var s Session
	var sortKey sql.NullString
	err := row.Scan(&s.OpenListID, &sortKey, &s.SortDesc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}
	s.SortKey = db.NullStringValue(sortKey)
	return &s, nil
}

func saveSession(ctx context.Context, conn *sql.DB, s Session) error {
	_, err := conn.ExecContext(ctx, `
		INSERT INTO session_state (id, open_list_id, sort_key, sort_desc)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			open_list_id = excluded.open_list_id,
			sort_key = excluded.sort_key,
			sort_desc = excluded.sort_desc
	`, s.OpenListID, db.NullString(s.SortKey), s.SortDesc)
	return err
}
