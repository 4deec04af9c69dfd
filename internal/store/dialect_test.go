// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite unchanged", DialectSQLite, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = ? AND b = ?"},
		{"postgres positional", DialectPostgres, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = $1 AND b = $2"},
		{"postgres no placeholders", DialectPostgres, "SELECT 1", "SELECT 1"},
		{"postgres ten args", DialectPostgres, "?,?,?,?,?,?,?,?,?,?", "$1,$2,$3,$4,$5,$6,$7,$8,$9,$10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dialect.Rebind(tt.query))
		})
	}
}

func TestBindTypeMatchesDriver(t *testing.T) {
	for _, d := range []Dialect{DialectSQLite, DialectPostgres} {
		db := sqlx.NewDb(nil, d.driverName())
		assert.Equal(t, d.bindType(), db.BindType(), string(d))
		assert.Equal(t, db.Rebind("a = ? AND b = ?"), d.Rebind("a = ? AND b = ?"), string(d))
	}
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("SQLite")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, d)

	d, err = ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestDialectDrivers(t *testing.T) {
	assert.Equal(t, "sqlite", DialectSQLite.driverName())
	assert.Equal(t, "pgx", DialectPostgres.driverName())
	assert.Equal(t, "sqlite3", DialectSQLite.gooseDialect())
	assert.Equal(t, "postgres", DialectPostgres.gooseDialect())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)")))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("disk I/O error")))
}
