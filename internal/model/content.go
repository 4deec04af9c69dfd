// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/goccy/go-json"
)

// Announcement is a banner message shown on the landing page.
type Announcement struct {
	ID        int64      `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	Active    bool       `json:"active" db:"active"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	ExpiresAt *time.Time `json:"expiresAt" db:"expires_at"`
}

// IsActive reports whether a is published at now: the active flag is set
// and it has no expiry or expires after now.
func (a *Announcement) IsActive(now time.Time) bool {
	if !a.Active {
		return false
	}
	return a.ExpiresAt == nil || a.ExpiresAt.After(now)
}

// NewAnnouncement holds the fields required to create an Announcement.
type NewAnnouncement struct {
	Title     string     `json:"title" validate:"required,max=255"`
	Content   string     `json:"content" validate:"required,max=10000"`
	Active    *bool      `json:"active"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Build returns the Announcement described by n. Active defaults to true.
func (n NewAnnouncement) Build(createdAt time.Time) Announcement {
	a := Announcement{
		Title:     n.Title,
		Content:   n.Content,
		Active:    true,
		CreatedAt: createdAt,
		ExpiresAt: n.ExpiresAt,
	}
	if n.Active != nil {
		a.Active = *n.Active
	}
	return a
}

// AnnouncementPatch is a partial update of an Announcement.
// ClearExpiresAt removes the expiry; it is set when a client sends an
// explicit null, which a nil ExpiresAt alone cannot express.
type AnnouncementPatch struct {
	Title          *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Content        *string    `json:"content" validate:"omitempty,min=1,max=10000"`
	Active         *bool      `json:"active"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	ClearExpiresAt bool       `json:"-"`
}

// Apply copies the set fields of p onto a.
func (p AnnouncementPatch) Apply(a *Announcement) {
	setString(&a.Title, p.Title)
	setString(&a.Content, p.Content)
	if p.Active != nil {
		a.Active = *p.Active
	}
	switch {
	case p.ClearExpiresAt:
		a.ExpiresAt = nil
	case p.ExpiresAt != nil:
		t := *p.ExpiresAt
		a.ExpiresAt = &t
	}
}

// PageContent is the free-form JSON content of one landing page section.
type PageContent struct {
	ID        int64           `json:"id"`
	Section   string          `json:"section"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
