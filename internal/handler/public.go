// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rennsz/landing/internal/model"
	"github.com/rennsz/landing/internal/store"
)

// Notices returned when no records are stored and the frontend falls back
// to its bundled data.
const (
	msgSocialLinksFallback    = "Social links served from the frontend"
	msgStreamChannelsFallback = "Stream channels served from the frontend"
)

// PublicSocialLinks handles GET /api/social-links.
func (h *Handler) PublicSocialLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.repo.ListSocialLinks(r.Context())
	if err != nil {
		logAndInternalError(w, r, "list_social_links", err)
		return
	}
	if len(links) == 0 {
		writeJSONSuccess(w, map[string]any{"message": msgSocialLinksFallback})
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// PublicStreamChannels handles GET /api/stream-channels.
func (h *Handler) PublicStreamChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.repo.ListStreamChannels(r.Context())
	if err != nil {
		logAndInternalError(w, r, "list_stream_channels", err)
		return
	}
	if len(channels) == 0 {
		writeJSONSuccess(w, map[string]any{"message": msgStreamChannelsFallback})
		return
	}
	writeJSON(w, http.StatusOK, channels)
}

// PublicSiteSettings handles GET /api/site-settings.
func (h *Handler) PublicSiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, ok := h.siteSettings(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// siteSettings loads the stored settings, falling back to the defaults.
func (h *Handler) siteSettings(w http.ResponseWriter, r *http.Request) (*model.SiteSettings, bool) {
	settings, err := h.repo.GetSiteSettings(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		defaults := model.DefaultSiteSettings()
		return &defaults, true
	}
	if err != nil {
		logAndInternalError(w, r, "get_site_settings", err)
		return nil, false
	}
	return settings, true
}

// PublicAnnouncements handles GET /api/announcements.
func (h *Handler) PublicAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.repo.ListActiveAnnouncements(r.Context(), h.now())
	if err != nil {
		logAndInternalError(w, r, "list_active_announcements", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(announcements))
}

// PublicPageContent handles GET /api/page-content/{section}.
// It returns the stored content object, or null for unknown sections.
func (h *Handler) PublicPageContent(w http.ResponseWriter, r *http.Request) {
	page, err := h.repo.GetPageContent(r.Context(), chi.URLParam(r, "section"))
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		logAndInternalError(w, r, "get_page_content", err)
		return
	}
	writeJSON(w, http.StatusOK, page.Content)
}
