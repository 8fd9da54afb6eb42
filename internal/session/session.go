// Package session wraps scs for the one piece of per-visitor state the
// catalog keeps: the flash-style status message shown after deleting a book.
package session

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/KonradTesch/Book-Alchemy/internal/config"
)

const flashKey = "flash"

// Manager wraps scs.SessionManager with application-specific methods.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a sqlite-backed session manager. The sqlDB parameter
// should be the underlying *sql.DB from GORM.
func NewManager(sqlDB *sql.DB, cfg config.Session) (*Manager, error) {
	// Create the sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.Lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // Lax so the post-delete redirect keeps the flash
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// NewMemoryManager creates a session manager backed by the in-memory store.
// Used in tests.
func NewMemoryManager() *Manager {
	return &Manager{SessionManager: scs.New()}
}

// Flash stores a one-shot status message for the next page render.
func (m *Manager) Flash(ctx context.Context, message string) {
	m.Put(ctx, flashKey, message)
}

// PopFlash returns the pending status message and clears it, or "" when
// there is none.
func (m *Manager) PopFlash(ctx context.Context) string {
	return m.PopString(ctx, flashKey)
}
