// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/rennsz/landing/internal/model"
)

// PageContentRequest is the body of PUT /api/admin/page-content/{section}.
type PageContentRequest struct {
	Content json.RawMessage `json:"content"`
}

// ListAnnouncements handles GET /api/admin/announcements.
func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.repo.ListAnnouncements(r.Context())
	if err != nil {
		logAndInternalError(w, r, "list_announcements", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(announcements))
}

// GetAnnouncement handles GET /api/admin/announcements/{id}.
func (h *Handler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	a, err := h.repo.GetAnnouncement(r.Context(), id)
	respondStoreResult(w, r, "Announcement", "get_announcement", http.StatusOK, a, err)
}

// CreateAnnouncement handles POST /api/admin/announcements.
func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req model.NewAnnouncement
	if !decodeAndValidate(w, r, &req) {
		return
	}

	a, err := h.repo.CreateAnnouncement(r.Context(), req.Build(h.now()))
	if err != nil {
		logAndInternalError(w, r, "create_announcement", err)
		return
	}

	slog.InfoContext(r.Context(), "announcement created", "id", a.ID, "active", a.Active)
	writeJSON(w, http.StatusCreated, a)
}

// UpdateAnnouncement handles PUT /api/admin/announcements/{id}.
// An explicit "expiresAt": null removes the expiry; an omitted field keeps it.
func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var patch model.AnnouncementPatch
	var fields map[string]json.RawMessage
	if json.Unmarshal(body, &patch) != nil || json.Unmarshal(body, &fields) != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if raw, present := fields["expiresAt"]; present && isJSONNull(raw) {
		patch.ClearExpiresAt = true
	}
	if !validate(w, &patch) {
		return
	}

	a, err := h.repo.UpdateAnnouncement(r.Context(), id, patch)
	if err == nil {
		slog.InfoContext(r.Context(), "announcement updated", "id", id)
	}
	respondStoreResult(w, r, "Announcement", "update_announcement", http.StatusOK, a, err)
}

// DeleteAnnouncement handles DELETE /api/admin/announcements/{id}.
func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	err := h.repo.DeleteAnnouncement(r.Context(), id)
	if err == nil {
		slog.InfoContext(r.Context(), "announcement deleted", "id", id)
	}
	respondDeleted(w, r, "Announcement", "delete_announcement", err)
}

// ListPageContent handles GET /api/admin/page-content.
func (h *Handler) ListPageContent(w http.ResponseWriter, r *http.Request) {
	pages, err := h.repo.ListPageContent(r.Context())
	if err != nil {
		logAndInternalError(w, r, "list_page_content", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(pages))
}

// GetPageContent handles GET /api/admin/page-content/{section}.
func (h *Handler) GetPageContent(w http.ResponseWriter, r *http.Request) {
	page, err := h.repo.GetPageContent(r.Context(), chi.URLParam(r, "section"))
	respondStoreResult(w, r, "Page content", "get_page_content", http.StatusOK, page, err)
}

// UpdatePageContent handles PUT /api/admin/page-content/{section}.
// The body is {"content": {...}}; the object replaces the stored content.
func (h *Handler) UpdatePageContent(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if section == "" || len(section) > 64 {
		writeJSONError(w, http.StatusBadRequest, "Invalid section")
		return
	}

	var req PageContentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !isJSONObject(req.Content) {
		writeJSONError(w, http.StatusBadRequest, "content must be a JSON object")
		return
	}

	page, err := h.repo.UpsertPageContent(r.Context(), section, req.Content)
	if err != nil {
		logAndInternalError(w, r, "upsert_page_content", err)
		return
	}

	slog.InfoContext(r.Context(), "page content updated", "section", section)
	writeJSON(w, http.StatusOK, page)
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
