// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/rennsz/landing/internal/model"
)

// Memory is a Repository that keeps all records in process memory.
// Records are lost on restart.
type Memory struct {
	mu sync.RWMutex

	nextID int64
	now    func() time.Time

	users         []model.User
	settings      *model.SiteSettings
	socialLinks   []model.SocialLink
	channels      []model.StreamChannel
	announcements []model.Announcement
	pages         map[string]model.PageContent
}

var _ Repository = (*Memory)(nil)

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		now:   time.Now,
		pages: make(map[string]model.PageContent),
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

// Ping implements Repository.
func (m *Memory) Ping(context.Context) error { return nil }

// GetUser implements Repository.
func (m *Memory) GetUser(_ context.Context, id int64) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
}

// GetUserByUsername implements Repository.
func (m *Memory) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.users {
		if m.users[i].Username == username {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// CreateUser implements Repository.
func (m *Memory) CreateUser(_ context.Context, u model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].Username == u.Username {
			return nil, fmt.Errorf("user %q: %w", u.Username, ErrConflict)
		}
	}

	u.ID = m.id()
	u.CreatedAt = m.now()
	m.users = append(m.users, u)
	return &u, nil
}

// UpdateUserPassword implements Repository.
func (m *Memory) UpdateUserPassword(_ context.Context, id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Password = passwordHash
			return nil
		}
	}
	return fmt.Errorf("user %d: %w", id, ErrNotFound)
}

// GetSiteSettings implements Repository.
func (m *Memory) GetSiteSettings(context.Context) (*model.SiteSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return nil, fmt.Errorf("site settings: %w", ErrNotFound)
	}
	s := *m.settings
	return &s, nil
}

// UpdateSiteSettings implements Repository.
func (m *Memory) UpdateSiteSettings(_ context.Context, p model.SiteSettingsPatch) (*model.SiteSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings == nil {
		s := model.DefaultSiteSettings()
		s.ID = m.id()
		m.settings = &s
	}
	p.Apply(m.settings)
	m.settings.UpdatedAt = m.now()

	s := *m.settings
	return &s, nil
}

// ListSocialLinks implements Repository.
func (m *Memory) ListSocialLinks(context.Context) ([]model.SocialLink, error) {
	m.mu.RLock()
	links := slices.Clone(m.socialLinks)
	m.mu.RUnlock()

	sort.SliceStable(links, func(i, j int) bool { return links[i].Order < links[j].Order })
	return links, nil
}

// GetSocialLink implements Repository.
func (m *Memory) GetSocialLink(_ context.Context, id int64) (*model.SocialLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.socialLinks, func(l model.SocialLink) bool { return l.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("social link %d: %w", id, ErrNotFound)
	}
	l := m.socialLinks[i]
	return &l, nil
}

// CreateSocialLink implements Repository.
func (m *Memory) CreateSocialLink(_ context.Context, l model.SocialLink) (*model.SocialLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.ID = m.id()
	m.socialLinks = append(m.socialLinks, l)
	return &l, nil
}

// UpdateSocialLink implements Repository.
func (m *Memory) UpdateSocialLink(_ context.Context, id int64, p model.SocialLinkPatch) (*model.SocialLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.socialLinks, func(l model.SocialLink) bool { return l.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("social link %d: %w", id, ErrNotFound)
	}
	p.Apply(&m.socialLinks[i])
	l := m.socialLinks[i]
	return &l, nil
}

// DeleteSocialLink implements Repository.
func (m *Memory) DeleteSocialLink(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.socialLinks, func(l model.SocialLink) bool { return l.ID == id })
	if i < 0 {
		return fmt.Errorf("social link %d: %w", id, ErrNotFound)
	}
	m.socialLinks = slices.Delete(m.socialLinks, i, i+1)
	return nil
}

// ListStreamChannels implements Repository.
func (m *Memory) ListStreamChannels(context.Context) ([]model.StreamChannel, error) {
	m.mu.RLock()
	channels := slices.Clone(m.channels)
	m.mu.RUnlock()

	sort.SliceStable(channels, func(i, j int) bool { return channels[i].Order < channels[j].Order })
	return channels, nil
}

// GetStreamChannel implements Repository.
func (m *Memory) GetStreamChannel(_ context.Context, id int64) (*model.StreamChannel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.channels, func(c model.StreamChannel) bool { return c.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("stream channel %d: %w", id, ErrNotFound)
	}
	c := m.channels[i]
	return &c, nil
}

// CreateStreamChannel implements Repository.
func (m *Memory) CreateStreamChannel(_ context.Context, c model.StreamChannel) (*model.StreamChannel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = m.id()
	m.channels = append(m.channels, c)
	return &c, nil
}

// UpdateStreamChannel implements Repository.
func (m *Memory) UpdateStreamChannel(_ context.Context, id int64, p model.StreamChannelPatch) (*model.StreamChannel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.channels, func(c model.StreamChannel) bool { return c.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("stream channel %d: %w", id, ErrNotFound)
	}
	p.Apply(&m.channels[i])
	c := m.channels[i]
	return &c, nil
}

// DeleteStreamChannel implements Repository.
func (m *Memory) DeleteStreamChannel(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.channels, func(c model.StreamChannel) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("stream channel %d: %w", id, ErrNotFound)
	}
	m.channels = slices.Delete(m.channels, i, i+1)
	return nil
}

// ListActiveAnnouncements implements Repository.
func (m *Memory) ListActiveAnnouncements(ctx context.Context, now time.Time) ([]model.Announcement, error) {
	all, err := m.ListAnnouncements(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(a model.Announcement) bool { return !a.IsActive(now) }), nil
}

// ListAnnouncements implements Repository.
func (m *Memory) ListAnnouncements(context.Context) ([]model.Announcement, error) {
	m.mu.RLock()
	out := make([]model.Announcement, 0, len(m.announcements))
	for i := len(m.announcements) - 1; i >= 0; i-- {
		out = append(out, m.announcements[i])
	}
	m.mu.RUnlock()

	// Insertion order already breaks ties on equal CreatedAt, newest first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetAnnouncement implements Repository.
func (m *Memory) GetAnnouncement(_ context.Context, id int64) (*model.Announcement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.announcements, func(a model.Announcement) bool { return a.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("announcement %d: %w", id, ErrNotFound)
	}
	a := m.announcements[i]
	return &a, nil
}

// CreateAnnouncement implements Repository.
func (m *Memory) CreateAnnouncement(_ context.Context, a model.Announcement) (*model.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = m.id()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = m.now()
	}
	m.announcements = append(m.announcements, a)
	return &a, nil
}

// UpdateAnnouncement implements Repository.
func (m *Memory) UpdateAnnouncement(_ context.Context, id int64, p model.AnnouncementPatch) (*model.Announcement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.announcements, func(a model.Announcement) bool { return a.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("announcement %d: %w", id, ErrNotFound)
	}
	p.Apply(&m.announcements[i])
	a := m.announcements[i]
	return &a, nil
}

// DeleteAnnouncement implements Repository.
func (m *Memory) DeleteAnnouncement(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.announcements, func(a model.Announcement) bool { return a.ID == id })
	if i < 0 {
		return fmt.Errorf("announcement %d: %w", id, ErrNotFound)
	}
	m.announcements = slices.Delete(m.announcements, i, i+1)
	return nil
}

// GetPageContent implements Repository.
func (m *Memory) GetPageContent(_ context.Context, section string) (*model.PageContent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pc, ok := m.pages[section]
	if !ok {
		return nil, fmt.Errorf("page content %q: %w", section, ErrNotFound)
	}
	return &pc, nil
}

// UpsertPageContent implements Repository.
func (m *Memory) UpsertPageContent(_ context.Context, section string, content json.RawMessage) (*model.PageContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pc, ok := m.pages[section]
	if !ok {
		pc = model.PageContent{ID: m.id(), Section: section}
	}
	pc.Content = json.RawMessage(bytes.Clone(content))
	pc.UpdatedAt = m.now()
	m.pages[section] = pc
	return &pc, nil
}

// ListPageContent implements Repository.
func (m *Memory) ListPageContent(context.Context) ([]model.PageContent, error) {
	m.mu.RLock()
	out := make([]model.PageContent, 0, len(m.pages))
	for _, pc := range m.pages {
		out = append(out, pc)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}
