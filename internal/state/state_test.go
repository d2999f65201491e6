package state

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/db"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, initSchema(t.Context(), conn))
	return conn
}

func TestGetSession_Empty(t *testing.T) {
	conn := setupTestDB(t)

	s, err := getSession(t.Context(), conn)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSaveAndGetSession(t *testing.T) {
	conn := setupTestDB(t)

	tests := []struct {
		name string
		in   Session
	}{
		{"initial", Session{OpenListID: "root", SortKey: "dateAdded", SortDesc: true}},
		{"update", Session{OpenListID: "pl1", SortKey: "index", SortDesc: true}},
		{"ascending", Session{OpenListID: "pl1", SortKey: "name", SortDesc: false}},
		{"no sort key", Session{OpenListID: "pl2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, saveSession(t.Context(), conn, tt.in))

			got, err := getSession(t.Context(), conn)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.in, *got)
		})
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, saveSession(t.Context(), conn, Session{OpenListID: "pl1"}))

	require.NoError(t, initSchema(t.Context(), conn))

	var version int
	require.NoError(t, conn.QueryRow(`SELECT version FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)

	got, err := getSession(t.Context(), conn)
	require.NoError(t, err)
	assert.Equal(t, "pl1", got.OpenListID)
}

func TestManager_CloseFlushesLastPendingSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.db")

	m, err := Open(path, nil)
	require.NoError(t, err)
	m.SaveSession(Session{OpenListID: "a", SortKey: "name"})
	m.SaveSession(Session{OpenListID: "b", SortKey: "index", SortDesc: true})
	require.NoError(t, m.Close())

	m, err = Open(path, nil)
	require.NoError(t, err)
	defer m.Close()

	got, err := m.GetSession(t.Context())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, Session{OpenListID: "b", SortKey: "index", SortDesc: true}, *got)
}

func TestManager_SaveSessionIsDebounced(t *testing.T) {
	m, err := Open(filepath.Join(t.TempDir(), "session.db"), nil)
	require.NoError(t, err)
	defer m.Close()

	m.SaveSession(Session{OpenListID: "pl1"})

	got, err := m.GetSession(t.Context())
	require.NoError(t, err)
	assert.Nil(t, got, "nothing is written before the debounce delay")

	assert.Eventually(t, func() bool {
		s, err := m.GetSession(t.Context())
		return err == nil && s != nil && s.OpenListID == "pl1"
	}, 10*saveDebounce, saveDebounce/10)
}

func TestManager_CloseWaitsForRunningFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	for i := range 20 {
		m, err := Open(path, nil)
		require.NoError(t, err)
		m.debounce = 0

		want := Session{OpenListID: fmt.Sprintf("pl%d", i), SortKey: "name"}
		m.SaveSession(want)
		require.NoError(t, m.Close())

		m, err = Open(path, nil)
		require.NoError(t, err)
		got, err := m.GetSession(t.Context())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
		require.NoError(t, m.Close())
	}
}
