// Package state persists the session (open list and sort) in SQLite so the
// host can restore it at startup.
package state

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/reel/internal/db"
)

const saveDebounce = 500 * time.Millisecond

// Interface defines the session store contract for dependency injection and testing.
type Interface interface {
	GetSession(ctx context.Context) (*Session, error)
	SaveSession(s Session)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)

type Manager struct {
	db        *sql.DB
	logger    *log.Logger
	debounce  time.Duration
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Session
	flushing  sync.WaitGroup // timer flushes that took a pending session
}

// Open opens (or creates) the session database at path.
func Open(path string, logger *log.Logger) (*Manager, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(context.Background(), conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &Manager{db: conn, logger: logger, debounce: saveDebounce}, nil
}

// Close flushes a pending save, waits for a timer flush already running
// and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		m.flush(*pending)
	}
	m.flushing.Wait()
	return m.db.Close()
}

// GetSession returns the saved session, or nil when none was saved yet.
func (m *Manager) GetSession(ctx context.Context) (*Session, error) {
	return getSession(ctx, m.db)
}

// SaveSession schedules s to be written. Calls within the debounce window
// coalesce; only the last session is written.
func (m *Manager) SaveSession(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.debounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		if pending == nil {
			m.saveMu.Unlock()
			return
		}
		m.flushing.Add(1)
		m.saveMu.Unlock()

		defer m.flushing.Done()
		m.flush(*pending)
	})
}

func (m *Manager) flush(s Session) {
	if err := saveSession(context.Background(), m.db, s); err != nil {
		m.logger.Warn("saving session failed", "err", err)
	}
}
