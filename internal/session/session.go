// Package session configures the server-side session manager. Session ids
// are high-entropy opaque tokens held in a cookie; the associated state
// lives server-side in SQLite or, when configured, Redis.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/featreq-go/internal/cache"
)

// Lifetime is the fixed session lifetime. Sessions do not slide.
const Lifetime = 24 * time.Hour

// New creates a session manager backed by the sessions table in db.
// Expired rows are pruned by the scheduler, not by the store itself.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := newManager(isDev)
	sm.Store = sqlite3store.NewWithCleanupInterval(db, 0)
	return sm
}

// NewWithCache creates a session manager backed by a cache (memory or Redis).
func NewWithCache(c cache.Cache, isDev bool) *scs.SessionManager {
	sm := newManager(isDev)
	sm.Store = NewCacheStore(c)
	return sm
}

func newManager(isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
