// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/rennsz/landing/internal/middleware"
	"github.com/rennsz/landing/internal/model"
)

// ListSocialLinks handles GET /api/admin/social-links.
func (h *Handler) ListSocialLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.repo.ListSocialLinks(r.Context())
	if err != nil {
		logAndInternalError(w, r, "list_social_links", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(links))
}

// GetSocialLink handles GET /api/admin/social-links/{id}.
func (h *Handler) GetSocialLink(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	link, err := h.repo.GetSocialLink(r.Context(), id)
	respondStoreResult(w, r, "Social link", "get_social_link", http.StatusOK, link, err)
}

// CreateSocialLink handles POST /api/admin/social-links.
func (h *Handler) CreateSocialLink(w http.ResponseWriter, r *http.Request) {
	var req model.NewSocialLink
	if !decodeAndValidate(w, r, &req) {
		return
	}

	link, err := h.repo.CreateSocialLink(r.Context(), req.Build())
	if err != nil {
		logAndInternalError(w, r, "create_social_link", err)
		return
	}

	slog.InfoContext(r.Context(), "social link created", "id", link.ID, "platform", link.Platform, "created_by", middleware.GetUserID(r))
	writeJSON(w, http.StatusCreated, link)
}

// UpdateSocialLink handles PUT /api/admin/social-links/{id}.
func (h *Handler) UpdateSocialLink(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var patch model.SocialLinkPatch
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	link, err := h.repo.UpdateSocialLink(r.Context(), id, patch)
	if err == nil {
		slog.InfoContext(r.Context(), "social link updated", "id", id)
	}
	respondStoreResult(w, r, "Social link", "update_social_link", http.StatusOK, link, err)
}

// DeleteSocialLink handles DELETE /api/admin/social-links/{id}.
func (h *Handler) DeleteSocialLink(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := h.repo.DeleteSocialLink(r.Context(), id)
	if err == nil {
		slog.InfoContext(r.Context(), "social link deleted", "id", id)
	}
	respondDeleted(w, r, "Social link", "delete_social_link", err)
}

// ListStreamChannels handles GET /api/admin/stream-channels.
func (h *Handler) ListStreamChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.repo.ListStreamChannels(r.Context())
	if err != nil {
		logAndInternalError(w, r, "list_stream_channels", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(channels))
}

// GetStreamChannel handles GET /api/admin/stream-channels/{id}.
func (h *Handler) GetStreamChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	channel, err := h.repo.GetStreamChannel(r.Context(), id)
	respondStoreResult(w, r, "Stream channel", "get_stream_channel", http.StatusOK, channel, err)
}

// CreateStreamChannel handles POST /api/admin/stream-channels.
func (h *Handler) CreateStreamChannel(w http.ResponseWriter, r *http.Request) {
	var req model.NewStreamChannel
	if !decodeAndValidate(w, r, &req) {
		return
	}

	channel, err := h.repo.CreateStreamChannel(r.Context(), req.Build())
	if err != nil {
		logAndInternalError(w, r, "create_stream_channel", err)
		return
	}

	slog.InfoContext(r.Context(), "stream channel created", "id", channel.ID, "type", channel.Type, "created_by", middleware.GetUserID(r))
	writeJSON(w, http.StatusCreated, channel)
}

// UpdateStreamChannel handles PUT /api/admin/stream-channels/{id}.
func (h *Handler) UpdateStreamChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var patch model.StreamChannelPatch
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	channel, err := h.repo.UpdateStreamChannel(r.Context(), id, patch)
	if err == nil {
		slog.InfoContext(r.Context(), "stream channel updated", "id", id)
	}
	respondStoreResult(w, r, "Stream channel", "update_stream_channel", http.StatusOK, channel, err)
}

// DeleteStreamChannel handles DELETE /api/admin/stream-channels/{id}.
func (h *Handler) DeleteStreamChannel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := h.repo.DeleteStreamChannel(r.Context(), id)
	if err == nil {
		slog.InfoContext(r.Context(), "stream channel deleted", "id", id)
	}
	respondDeleted(w, r, "Stream channel", "delete_stream_channel", err)
}

// GetSiteSettings handles GET /api/admin/site-settings.
func (h *Handler) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, ok := h.siteSettings(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSiteSettings handles PUT and POST /api/admin/site-settings.
// Omitted fields keep their stored (or default) values.
func (h *Handler) UpdateSiteSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.SiteSettingsPatch
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	settings, err := h.repo.UpdateSiteSettings(r.Context(), patch)
	if err != nil {
		logAndInternalError(w, r, "update_site_settings", err)
		return
	}

	slog.InfoContext(r.Context(), "site settings updated")
	writeJSON(w, http.StatusOK, settings)
}
