// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rennsz/landing/internal/auth"
	"github.com/rennsz/landing/internal/model"
)

// DefaultAdminPassword is used for the bootstrap admin when no password is configured.
const DefaultAdminPassword = "admin"

// EnsureAdmin creates the bootstrap admin account if it does not exist.
// An empty password falls back to DefaultAdminPassword. A warning is logged
// on every start while the account still accepts the default password.
func EnsureAdmin(ctx context.Context, repo Repository, password string) error {
	usingDefault := password == ""
	if usingDefault {
		password = DefaultAdminPassword
	}

	existing, err := repo.GetUserByUsername(ctx, model.DefaultAdminUsername)
	switch {
	case err == nil:
		if ok, _ := auth.CheckPassword(DefaultAdminPassword, existing.Password); ok {
			slog.Warn("admin account still uses the default password; change it from the admin panel",
				"username", existing.Username)
		} else {
			slog.Info("admin user already exists, skipping bootstrap")
		}
		return nil
	case !errors.Is(err, ErrNotFound):
		return fmt.Errorf("checking for admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := repo.CreateUser(ctx, model.User{
		Username: model.DefaultAdminUsername,
		Password: hash,
		IsAdmin:  true,
	})
	if errors.Is(err, ErrConflict) {
		// Another instance created it first.
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if usingDefault {
		slog.Warn("created admin user with the default password; set LANDING_ADMIN_PASSWORD or change it after first login",
			"id", user.ID, "username", user.Username)
	} else {
		slog.Info("created admin user", "id", user.ID, "username", user.Username)
	}

	return nil
}

// DefaultSocialLinks are the links shown by the first version of the site.
var DefaultSocialLinks = []model.SocialLink{
	{
		Platform: "twitch", Name: "Twitch", URL: "https://twitch.tv/remak_official",
		Icon: "twitch", Color: "#9146FF", Username: "@remak_official",
		Description: "Live streams & past broadcasts", Order: 1,
	},
	{
		Platform: "discord", Name: "Discord", URL: "https://discord.gg/remak",
		Icon: "discord", Color: "#5865F2", Username: "REMAK Community",
		Description: "Join our growing community", Order: 2,
	},
	{
		Platform: "twitter", Name: "Twitter", URL: "https://twitter.com/remak_official",
		Icon: "twitter", Color: "#1DA1F2", Username: "@remak_official",
		Description: "Updates & announcements", Order: 3,
	},
	{
		Platform: "instagram", Name: "Instagram", URL: "https://instagram.com/remak_official",
		Icon: "instagram", Color: "#E1306C", Username: "@remak_official",
		Description: "Photos & behind the scenes", Order: 4,
	},
}

// DefaultStreamChannels are the channels shown by the first version of the site.
var DefaultStreamChannels = []model.StreamChannel{
	{
		Name: "IRL Adventures", Type: model.ChannelTypePrimary,
		Description: "Join me as I explore real-world adventures, travel to new destinations, and share unique experiences. " +
			"From urban exploration to outdoor activities.",
		Platform: "twitch", URL: "https://twitch.tv/remak_official", Color: "#9146FF", Order: 1,
	},
	{
		Name: "Gaming & Chill", Type: model.ChannelTypeSecondary,
		Description: "Relaxed gaming sessions featuring a variety of titles from competitive to casual. " +
			"Come hang out, chat, and enjoy some gameplay in a more laid-back environment.",
		Platform: "twitch", URL: "https://twitch.tv/remak_gaming", Color: "#9146FF", Order: 2,
	},
}

// SeedDefaults inserts DefaultSocialLinks and DefaultStreamChannels into
// empty collections. Collections that already hold records are left alone.
func SeedDefaults(ctx context.Context, repo Repository) error {
	links, err := repo.ListSocialLinks(ctx)
	if err != nil {
		return fmt.Errorf("checking social links: %w", err)
	}
	if len(links) == 0 {
		for _, l := range DefaultSocialLinks {
			if _, err := repo.CreateSocialLink(ctx, l); err != nil {
				return fmt.Errorf("seeding social link %q: %w", l.Platform, err)
			}
		}
		slog.Info("seeded social links", "count", len(DefaultSocialLinks))
	}

	channels, err := repo.ListStreamChannels(ctx)
	if err != nil {
		return fmt.Errorf("checking stream channels: %w", err)
	}
	if len(channels) == 0 {
		for _, c := range DefaultStreamChannels {
			if _, err := repo.CreateStreamChannel(ctx, c); err != nil {
				return fmt.Errorf("seeding stream channel %q: %w", c.Name, err)
			}
		}
		slog.Info("seeded stream channels", "count", len(DefaultStreamChannels))
	}

	return nil
}
