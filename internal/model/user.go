// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain models shared by the store, handler
// and middleware packages: users, site settings, social links, stream
// channels, announcements and page content sections.
package model

import "time"

// DefaultAdminUsername is the account bootstrapped at startup.
const DefaultAdminUsername = "admin"

// User is an account able to sign in to the admin API.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // salted scrypt hash, never exposed
	IsAdmin   bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Identity is the public view of a user returned by login and whoami.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Identity returns the fields of u that may be sent to clients.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}
