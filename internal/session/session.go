// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager and its storage
// backends: the SQL database (SQLite or PostgreSQL), Redis, or process memory.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/rennsz/landing/internal/store"
)

// Lifetime is how long a session stays valid after login.
const Lifetime = 7 * 24 * time.Hour

// New creates a session manager over st.
func New(st scs.Store, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = st

	// Configure session
	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}

// NewDatabaseStore returns the session store for a migrated database of
// the given dialect. Both stores remove expired sessions every 5 minutes.
func NewDatabaseStore(db *sql.DB, dialect store.Dialect) scs.Store {
	if dialect == store.DialectPostgres {
		return postgresstore.New(db)
	}
	return sqlite3store.New(db)
}

// NewMemoryStore returns a session store held in process memory.
func NewMemoryStore() scs.Store {
	return memstore.New()
}
