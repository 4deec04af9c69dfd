// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rennsz/landing/internal/model"
)

// testSQL returns a SQL repository over a migrated SQLite database in a temp directory.
func testSQL(t *testing.T) *SQL {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "landing-test.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	require.NoError(t, Migrate(db, DialectSQLite))
	return New(db, DialectSQLite)
}

// forEachRepo runs fn against every Repository implementation.
func forEachRepo(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, testSQL(t)) })
}

func intPtr(v int) *int { return &v }

func newLink(platform string, order int) model.SocialLink {
	return model.SocialLink{
		Platform:    platform,
		Name:        platform,
		URL:         "https://example.com/" + platform,
		Icon:        platform,
		Color:       "#000000",
		Username:    "@" + platform,
		Description: platform + " profile",
		Order:       order,
	}
}

func TestUsers(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		created, err := repo.CreateUser(ctx, model.User{Username: "admin", Password: "hash", IsAdmin: true})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		byName, err := repo.GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byName.ID)
		assert.True(t, byName.IsAdmin)

		_, err = repo.GetUserByUsername(ctx, "Admin")
		assert.ErrorIs(t, err, ErrNotFound, "username lookup is case-sensitive")

		_, err = repo.CreateUser(ctx, model.User{Username: "admin", Password: "other"})
		assert.ErrorIs(t, err, ErrConflict)

		require.NoError(t, repo.UpdateUserPassword(ctx, created.ID, "new-hash"))
		byID, err := repo.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", byID.Password)

		assert.ErrorIs(t, repo.UpdateUserPassword(ctx, 9999, "x"), ErrNotFound)
		_, err = repo.GetUser(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSiteSettings(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		_, err := repo.GetSiteSettings(ctx)
		assert.ErrorIs(t, err, ErrNotFound)

		color := "#123456"
		s, err := repo.UpdateSiteSettings(ctx, model.SiteSettingsPatch{PrimaryColor: &color})
		require.NoError(t, err)
		assert.Equal(t, "#123456", s.PrimaryColor)
		assert.Equal(t, model.DefaultSecondaryColor, s.SecondaryColor)
		assert.Equal(t, model.DefaultBorderRadius, s.BorderRadius)
		assert.Equal(t, model.DefaultFontFamily, s.FontFamily)

		radius := "1rem"
		s2, err := repo.UpdateSiteSettings(ctx, model.SiteSettingsPatch{BorderRadius: &radius})
		require.NoError(t, err)
		assert.Equal(t, s.ID, s2.ID, "settings stay a singleton")
		assert.Equal(t, "#123456", s2.PrimaryColor)
		assert.Equal(t, "1rem", s2.BorderRadius)

		got, err := repo.GetSiteSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1rem", got.BorderRadius)
	})
}

func TestSocialLinks_Ordering(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		for i, order := range []int{3, 1, 2} {
			_, err := repo.CreateSocialLink(ctx, newLink(string(rune('a'+i)), order))
			require.NoError(t, err)
		}

		links, err := repo.ListSocialLinks(ctx)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{links[0].Order, links[1].Order, links[2].Order})
	})
}

func TestSocialLinks_TiesKeepInsertionOrder(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		for _, p := range []string{"first", "second", "third"} {
			_, err := repo.CreateSocialLink(ctx, newLink(p, 1))
			require.NoError(t, err)
		}

		links, err := repo.ListSocialLinks(ctx)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "first", links[0].Platform)
		assert.Equal(t, "second", links[1].Platform)
		assert.Equal(t, "third", links[2].Platform)
	})
}

func TestSocialLinks_CRUD(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		created, err := repo.CreateSocialLink(ctx, newLink("twitch", 1))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		name := "Twitch TV"
		updated, err := repo.UpdateSocialLink(ctx, created.ID, model.SocialLinkPatch{Name: &name, Order: intPtr(5)})
		require.NoError(t, err)
		assert.Equal(t, "Twitch TV", updated.Name)
		assert.Equal(t, 5, updated.Order)
		assert.Equal(t, created.URL, updated.URL)

		got, err := repo.GetSocialLink(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, *updated, *got)

		require.NoError(t, repo.DeleteSocialLink(ctx, created.ID))
		_, err = repo.GetSocialLink(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSocialLinks_MissingIDLeavesStorageUnchanged(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		_, err := repo.CreateSocialLink(ctx, newLink("discord", 1))
		require.NoError(t, err)
		before, err := repo.ListSocialLinks(ctx)
		require.NoError(t, err)

		name := "ghost"
		_, err = repo.UpdateSocialLink(ctx, 4242, model.SocialLinkPatch{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.DeleteSocialLink(ctx, 4242), ErrNotFound)

		after, err := repo.ListSocialLinks(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestStreamChannels_CRUD(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		second, err := repo.CreateStreamChannel(ctx, model.StreamChannel{
			Name: "Gaming", Type: model.ChannelTypeSecondary, Description: "d",
			Platform: "twitch", URL: "https://twitch.tv/g", Color: "#9146FF", Order: 2,
		})
		require.NoError(t, err)
		_, err = repo.CreateStreamChannel(ctx, model.StreamChannel{
			Name: "IRL", Type: model.ChannelTypePrimary, Description: "d",
			Platform: "twitch", URL: "https://twitch.tv/i", Color: "#9146FF", Order: 1,
		})
		require.NoError(t, err)

		channels, err := repo.ListStreamChannels(ctx)
		require.NoError(t, err)
		require.Len(t, channels, 2)
		assert.Equal(t, "IRL", channels[0].Name)
		assert.Equal(t, "Gaming", channels[1].Name)

		typ := model.ChannelTypePrimary
		updated, err := repo.UpdateStreamChannel(ctx, second.ID, model.StreamChannelPatch{Type: &typ})
		require.NoError(t, err)
		assert.Equal(t, model.ChannelTypePrimary, updated.Type)

		_, err = repo.UpdateStreamChannel(ctx, 999, model.StreamChannelPatch{Type: &typ})
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, repo.DeleteStreamChannel(ctx, second.ID))
		assert.ErrorIs(t, repo.DeleteStreamChannel(ctx, second.ID), ErrNotFound)
	})
}

func TestAnnouncements_Active(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		now := time.Now().UTC()
		hourAgo := now.Add(-time.Hour)
		tomorrow := now.Add(24 * time.Hour)

		expired, err := repo.CreateAnnouncement(ctx, model.Announcement{
			Title: "Expired", Content: "c", Active: true, ExpiresAt: &hourAgo,
		})
		require.NoError(t, err)
		_, err = repo.CreateAnnouncement(ctx, model.Announcement{Title: "Open", Content: "c", Active: true})
		require.NoError(t, err)
		_, err = repo.CreateAnnouncement(ctx, model.Announcement{
			Title: "Later", Content: "c", Active: true, ExpiresAt: &tomorrow,
		})
		require.NoError(t, err)
		_, err = repo.CreateAnnouncement(ctx, model.Announcement{Title: "Off", Content: "c", Active: false})
		require.NoError(t, err)

		active, err := repo.ListActiveAnnouncements(ctx, now)
		require.NoError(t, err)
		titles := make([]string, 0, len(active))
		for _, a := range active {
			titles = append(titles, a.Title)
		}
		assert.ElementsMatch(t, []string{"Open", "Later"}, titles)

		all, err := repo.ListAnnouncements(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		// Clearing the expiry makes the expired announcement active again.
		updated, err := repo.UpdateAnnouncement(ctx, expired.ID, model.AnnouncementPatch{ClearExpiresAt: true})
		require.NoError(t, err)
		assert.Nil(t, updated.ExpiresAt)

		active, err = repo.ListActiveAnnouncements(ctx, now)
		require.NoError(t, err)
		assert.Len(t, active, 3)
	})
}

func TestAnnouncements_CRUD(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		created, err := repo.CreateAnnouncement(ctx, model.Announcement{Title: "Hello", Content: "World", Active: true})
		require.NoError(t, err)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := repo.GetAnnouncement(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", got.Title)
		assert.Nil(t, got.ExpiresAt)

		expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
		updated, err := repo.UpdateAnnouncement(ctx, created.ID, model.AnnouncementPatch{ExpiresAt: &expiry})
		require.NoError(t, err)
		require.NotNil(t, updated.ExpiresAt)
		assert.True(t, expiry.Equal(*updated.ExpiresAt))
		assert.Equal(t, "World", updated.Content)

		require.NoError(t, repo.DeleteAnnouncement(ctx, created.ID))
		_, err = repo.GetAnnouncement(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.DeleteAnnouncement(ctx, created.ID), ErrNotFound)
	})
}

func TestPageContent(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		_, err := repo.GetPageContent(ctx, "hero")
		assert.ErrorIs(t, err, ErrNotFound)

		hero, err := repo.UpsertPageContent(ctx, "hero", json.RawMessage(`{"title":"X"}`))
		require.NoError(t, err)
		assert.Equal(t, "hero", hero.Section)

		_, err = repo.UpsertPageContent(ctx, "cta", json.RawMessage(`{"button":"Follow"}`))
		require.NoError(t, err)

		got, err := repo.GetPageContent(ctx, "hero")
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"X"}`, string(got.Content))

		replaced, err := repo.UpsertPageContent(ctx, "hero", json.RawMessage(`{"title":"Y","subtitle":"Z"}`))
		require.NoError(t, err)
		assert.Equal(t, hero.ID, replaced.ID, "upsert keeps one row per section")
		assert.False(t, replaced.UpdatedAt.Before(hero.UpdatedAt))

		all, err := repo.ListPageContent(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "cta", all[0].Section)
		assert.Equal(t, "hero", all[1].Section)
		assert.JSONEq(t, `{"title":"Y","subtitle":"Z"}`, string(all[1].Content))
	})
}

func TestPing(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo Repository) {
		assert.NoError(t, repo.Ping(context.Background()))
	})
}

func TestNotFoundWrapping(t *testing.T) {
	repo := testSQL(t)
	_, err := repo.GetSocialLink(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "social link 1")
}
