// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"

	"github.com/rennsz/landing/internal/model"
)

// SQL is a Repository backed by a SQLite or PostgreSQL database.
type SQL struct {
	db      *sqlx.DB
	dialect Dialect
	now     func() time.Time
}

var _ Repository = (*SQL)(nil)

// New returns a SQL repository using db, whose schema must already be migrated.
func New(db *sql.DB, dialect Dialect) *SQL {
	return &SQL{
		db:      sqlx.NewDb(db, dialect.driverName()),
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Ping implements Repository.
func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// get scans a single row into dest. q is the pool or a transaction.
func (s *SQL) get(ctx context.Context, q sqlx.QueryerContext, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, q, dest, s.dialect.Rebind(query), args...)
}

func (s *SQL) list(ctx context.Context, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, s.db, dest, s.dialect.Rebind(query), args...)
}

func (s *SQL) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

// inTx runs fn in a transaction, committing when fn returns nil.
func (s *SQL) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// notFound maps sql.ErrNoRows to ErrNotFound and wraps other errors.
func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// deleted returns ErrNotFound when a DELETE affected no rows.
func deleted(res sql.Result, err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// Users

const userColumns = `id, username, password, is_admin, created_at`

// GetUser implements Repository.
func (s *SQL) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := s.get(ctx, s.db, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "user %d", id)
	}
	return &u, nil
}

// GetUserByUsername implements Repository.
func (s *SQL) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := s.get(ctx, s.db, &u, `SELECT `+userColumns+` FROM users WHERE username = ?`, username); err != nil {
		return nil, notFound(err, "user %q", username)
	}
	return &u, nil
}

// CreateUser implements Repository.
func (s *SQL) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	var created model.User
	err := s.get(ctx, s.db, &created,
		`INSERT INTO users (username, password, is_admin, created_at) VALUES (?, ?, ?, ?)
		 RETURNING `+userColumns,
		u.Username, u.Password, u.IsAdmin, s.now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", u.Username, ErrConflict)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &created, nil
}

// UpdateUserPassword implements Repository.
func (s *SQL) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := s.exec(ctx, `UPDATE users SET password = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// Site settings

const settingsColumns = `id, primary_color, secondary_color, border_radius, font_family, updated_at`

func (s *SQL) currentSettings(ctx context.Context, q sqlx.QueryerContext) (*model.SiteSettings, error) {
	var st model.SiteSettings
	if err := s.get(ctx, q, &st, `SELECT `+settingsColumns+` FROM site_settings ORDER BY id LIMIT 1`); err != nil {
		return nil, notFound(err, "site settings")
	}
	return &st, nil
}

// GetSiteSettings implements Repository.
func (s *SQL) GetSiteSettings(ctx context.Context) (*model.SiteSettings, error) {
	return s.currentSettings(ctx, s.db)
}

// UpdateSiteSettings implements Repository.
func (s *SQL) UpdateSiteSettings(ctx context.Context, p model.SiteSettingsPatch) (*model.SiteSettings, error) {
	var out model.SiteSettings
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		cur, err := s.currentSettings(ctx, tx)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}

		if cur == nil {
			next := model.DefaultSiteSettings()
			p.Apply(&next)
			err = s.get(ctx, tx, &out,
				`INSERT INTO site_settings (primary_color, secondary_color, border_radius, font_family, updated_at)
				 VALUES (?, ?, ?, ?, ?) RETURNING `+settingsColumns,
				next.PrimaryColor, next.SecondaryColor, next.BorderRadius, next.FontFamily, s.now())
			if err != nil {
				return fmt.Errorf("inserting site settings: %w", err)
			}
			return nil
		}

		p.Apply(cur)
		err = s.get(ctx, tx, &out,
			`UPDATE site_settings SET primary_color = ?, secondary_color = ?, border_radius = ?, font_family = ?, updated_at = ?
			 WHERE id = ? RETURNING `+settingsColumns,
			cur.PrimaryColor, cur.SecondaryColor, cur.BorderRadius, cur.FontFamily, s.now(), cur.ID)
		if err != nil {
			return fmt.Errorf("updating site settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Social links

const socialLinkColumns = `id, platform, name, url, icon, color, username, description, "order"`

// ListSocialLinks implements Repository.
func (s *SQL) ListSocialLinks(ctx context.Context) ([]model.SocialLink, error) {
	links := []model.SocialLink{}
	if err := s.list(ctx, &links, `SELECT `+socialLinkColumns+` FROM social_links ORDER BY "order" ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("listing social links: %w", err)
	}
	return links, nil
}

// GetSocialLink implements Repository.
func (s *SQL) GetSocialLink(ctx context.Context, id int64) (*model.SocialLink, error) {
	return s.getSocialLink(ctx, s.db, id)
}

func (s *SQL) getSocialLink(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.SocialLink, error) {
	var l model.SocialLink
	if err := s.get(ctx, q, &l, `SELECT `+socialLinkColumns+` FROM social_links WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "social link %d", id)
	}
	return &l, nil
}

// CreateSocialLink implements Repository.
func (s *SQL) CreateSocialLink(ctx context.Context, l model.SocialLink) (*model.SocialLink, error) {
	var created model.SocialLink
	err := s.get(ctx, s.db, &created,
		`INSERT INTO social_links (platform, name, url, icon, color, username, description, "order")
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+socialLinkColumns,
		l.Platform, l.Name, l.URL, l.Icon, l.Color, l.Username, l.Description, l.Order)
	if err != nil {
		return nil, fmt.Errorf("creating social link: %w", err)
	}
	return &created, nil
}

// UpdateSocialLink implements Repository.
func (s *SQL) UpdateSocialLink(ctx context.Context, id int64, p model.SocialLinkPatch) (*model.SocialLink, error) {
	var out model.SocialLink
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		l, err := s.getSocialLink(ctx, tx, id)
		if err != nil {
			return err
		}
		p.Apply(l)
		err = s.get(ctx, tx, &out,
			`UPDATE social_links SET platform = ?, name = ?, url = ?, icon = ?, color = ?, username = ?, description = ?, "order" = ?
			 WHERE id = ? RETURNING `+socialLinkColumns,
			l.Platform, l.Name, l.URL, l.Icon, l.Color, l.Username, l.Description, l.Order, id)
		if err != nil {
			return notFound(err, "updating social link %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSocialLink implements Repository.
func (s *SQL) DeleteSocialLink(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM social_links WHERE id = ?`, id)
	return deleted(res, err, "social link %d", id)
}

// Stream channels

const streamChannelColumns = `id, name, type, description, platform, url, color, "order"`

// ListStreamChannels implements Repository.
func (s *SQL) ListStreamChannels(ctx context.Context) ([]model.StreamChannel, error) {
	channels := []model.StreamChannel{}
	if err := s.list(ctx, &channels, `SELECT `+streamChannelColumns+` FROM stream_channels ORDER BY "order" ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("listing stream channels: %w", err)
	}
	return channels, nil
}

// GetStreamChannel implements Repository.
func (s *SQL) GetStreamChannel(ctx context.Context, id int64) (*model.StreamChannel, error) {
	return s.getStreamChannel(ctx, s.db, id)
}

func (s *SQL) getStreamChannel(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.StreamChannel, error) {
	var c model.StreamChannel
	if err := s.get(ctx, q, &c, `SELECT `+streamChannelColumns+` FROM stream_channels WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "stream channel %d", id)
	}
	return &c, nil
}

// CreateStreamChannel implements Repository.
func (s *SQL) CreateStreamChannel(ctx context.Context, c model.StreamChannel) (*model.StreamChannel, error) {
	var created model.StreamChannel
	err := s.get(ctx, s.db, &created,
		`INSERT INTO stream_channels (name, type, description, platform, url, color, "order")
		 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING `+streamChannelColumns,
		c.Name, c.Type, c.Description, c.Platform, c.URL, c.Color, c.Order)
	if err != nil {
		return nil, fmt.Errorf("creating stream channel: %w", err)
	}
	return &created, nil
}

// UpdateStreamChannel implements Repository.
func (s *SQL) UpdateStreamChannel(ctx context.Context, id int64, p model.StreamChannelPatch) (*model.StreamChannel, error) {
	var out model.StreamChannel
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		c, err := s.getStreamChannel(ctx, tx, id)
		if err != nil {
			return err
		}
		p.Apply(c)
		err = s.get(ctx, tx, &out,
			`UPDATE stream_channels SET name = ?, type = ?, description = ?, platform = ?, url = ?, color = ?, "order" = ?
			 WHERE id = ? RETURNING `+streamChannelColumns,
			c.Name, c.Type, c.Description, c.Platform, c.URL, c.Color, c.Order, id)
		if err != nil {
			return notFound(err, "updating stream channel %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStreamChannel implements Repository.
func (s *SQL) DeleteStreamChannel(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM stream_channels WHERE id = ?`, id)
	return deleted(res, err, "stream channel %d", id)
}

// Announcements

const announcementColumns = `id, title, content, active, created_at, expires_at`

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// ListActiveAnnouncements implements Repository. Expiry is compared in Go
// so that both dialects apply the same clock and time representation.
func (s *SQL) ListActiveAnnouncements(ctx context.Context, now time.Time) ([]model.Announcement, error) {
	all, err := s.listAnnouncements(ctx, `SELECT `+announcementColumns+` FROM announcements WHERE active = ? ORDER BY created_at DESC, id DESC`, true)
	if err != nil {
		return nil, err
	}

	active := all[:0]
	for _, a := range all {
		if a.IsActive(now) {
			active = append(active, a)
		}
	}
	return active, nil
}

// ListAnnouncements implements Repository.
func (s *SQL) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return s.listAnnouncements(ctx, `SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC, id DESC`)
}

func (s *SQL) listAnnouncements(ctx context.Context, query string, args ...any) ([]model.Announcement, error) {
	out := []model.Announcement{}
	if err := s.list(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("listing announcements: %w", err)
	}
	return out, nil
}

// GetAnnouncement implements Repository.
func (s *SQL) GetAnnouncement(ctx context.Context, id int64) (*model.Announcement, error) {
	return s.getAnnouncement(ctx, s.db, id)
}

func (s *SQL) getAnnouncement(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Announcement, error) {
	var a model.Announcement
	if err := s.get(ctx, q, &a, `SELECT `+announcementColumns+` FROM announcements WHERE id = ?`, id); err != nil {
		return nil, notFound(err, "announcement %d", id)
	}
	return &a, nil
}

// CreateAnnouncement implements Repository.
func (s *SQL) CreateAnnouncement(ctx context.Context, a model.Announcement) (*model.Announcement, error) {
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	var created model.Announcement
	err := s.get(ctx, s.db, &created,
		`INSERT INTO announcements (title, content, active, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING `+announcementColumns,
		a.Title, a.Content, a.Active, createdAt.UTC(), nullTime(a.ExpiresAt))
	if err != nil {
		return nil, fmt.Errorf("creating announcement: %w", err)
	}
	return &created, nil
}

// UpdateAnnouncement implements Repository.
func (s *SQL) UpdateAnnouncement(ctx context.Context, id int64, p model.AnnouncementPatch) (*model.Announcement, error) {
	var out model.Announcement
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		a, err := s.getAnnouncement(ctx, tx, id)
		if err != nil {
			return err
		}
		p.Apply(a)
		err = s.get(ctx, tx, &out,
			`UPDATE announcements SET title = ?, content = ?, active = ?, expires_at = ?
			 WHERE id = ? RETURNING `+announcementColumns,
			a.Title, a.Content, a.Active, nullTime(a.ExpiresAt), id)
		if err != nil {
			return notFound(err, "updating announcement %d", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAnnouncement implements Repository.
func (s *SQL) DeleteAnnouncement(ctx context.Context, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM announcements WHERE id = ?`, id)
	return deleted(res, err, "announcement %d", id)
}

// Page content

const pageContentColumns = `id, section, content, updated_at`

// pageContentRow holds content as text; drivers return it as a string
// for both TEXT and JSONB columns.
type pageContentRow struct {
	ID        int64     `db:"id"`
	Section   string    `db:"section"`
	Content   string    `db:"content"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r pageContentRow) toModel() *model.PageContent {
	return &model.PageContent{
		ID:        r.ID,
		Section:   r.Section,
		Content:   json.RawMessage(r.Content),
		UpdatedAt: r.UpdatedAt,
	}
}

// GetPageContent implements Repository.
func (s *SQL) GetPageContent(ctx context.Context, section string) (*model.PageContent, error) {
	var row pageContentRow
	if err := s.get(ctx, s.db, &row, `SELECT `+pageContentColumns+` FROM page_content WHERE section = ?`, section); err != nil {
		return nil, notFound(err, "page content %q", section)
	}
	return row.toModel(), nil
}

// UpsertPageContent implements Repository.
func (s *SQL) UpsertPageContent(ctx context.Context, section string, content json.RawMessage) (*model.PageContent, error) {
	var row pageContentRow
	err := s.get(ctx, s.db, &row,
		`INSERT INTO page_content (section, content, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (section) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
		 RETURNING `+pageContentColumns,
		section, string(content), s.now())
	if err != nil {
		return nil, fmt.Errorf("upserting page content %q: %w", section, err)
	}
	return row.toModel(), nil
}

// ListPageContent implements Repository.
func (s *SQL) ListPageContent(ctx context.Context) ([]model.PageContent, error) {
	var rows []pageContentRow
	if err := s.list(ctx, &rows, `SELECT `+pageContentColumns+` FROM page_content ORDER BY section ASC`); err != nil {
		return nil, fmt.Errorf("listing page content: %w", err)
	}
	out := make([]model.PageContent, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r.toModel())
	}
	return out, nil
}
