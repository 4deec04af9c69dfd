// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store persists users and landing page content. Repository is
// implemented by an in-memory store for development and by a SQL store
// backed by SQLite or PostgreSQL.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"

	"github.com/rennsz/landing/internal/model"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// Repository is the storage contract used by the HTTP handlers.
// Lookups and updates of unknown records return ErrNotFound; updates never
// create records.
type Repository interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u model.User) (*model.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error

	// GetSiteSettings returns ErrNotFound until settings are first saved.
	GetSiteSettings(ctx context.Context) (*model.SiteSettings, error)
	// UpdateSiteSettings merges p over the stored settings, or over the
	// defaults when none are stored yet.
	UpdateSiteSettings(ctx context.Context, p model.SiteSettingsPatch) (*model.SiteSettings, error)

	// ListSocialLinks returns links ordered by Order, then by creation.
	ListSocialLinks(ctx context.Context) ([]model.SocialLink, error)
	GetSocialLink(ctx context.Context, id int64) (*model.SocialLink, error)
	CreateSocialLink(ctx context.Context, l model.SocialLink) (*model.SocialLink, error)
	UpdateSocialLink(ctx context.Context, id int64, p model.SocialLinkPatch) (*model.SocialLink, error)
	DeleteSocialLink(ctx context.Context, id int64) error

	// ListStreamChannels returns channels ordered by Order, then by creation.
	ListStreamChannels(ctx context.Context) ([]model.StreamChannel, error)
	GetStreamChannel(ctx context.Context, id int64) (*model.StreamChannel, error)
	CreateStreamChannel(ctx context.Context, c model.StreamChannel) (*model.StreamChannel, error)
	UpdateStreamChannel(ctx context.Context, id int64, p model.StreamChannelPatch) (*model.StreamChannel, error)
	DeleteStreamChannel(ctx context.Context, id int64) error

	// ListActiveAnnouncements returns announcements active at now, newest first.
	ListActiveAnnouncements(ctx context.Context, now time.Time) ([]model.Announcement, error)
	// ListAnnouncements returns all announcements, newest first.
	ListAnnouncements(ctx context.Context) ([]model.Announcement, error)
	GetAnnouncement(ctx context.Context, id int64) (*model.Announcement, error)
	CreateAnnouncement(ctx context.Context, a model.Announcement) (*model.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, p model.AnnouncementPatch) (*model.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error

	GetPageContent(ctx context.Context, section string) (*model.PageContent, error)
	// UpsertPageContent creates or replaces the content of section.
	UpsertPageContent(ctx context.Context, section string, content json.RawMessage) (*model.PageContent, error)
	// ListPageContent returns every stored section ordered by name.
	ListPageContent(ctx context.Context) ([]model.PageContent, error)

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
