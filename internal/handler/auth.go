// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rennsz/landing/internal/auth"
	"github.com/rennsz/landing/internal/metrics"
	"github.com/rennsz/landing/internal/middleware"
	"github.com/rennsz/landing/internal/store"
)

// Auth messages.
const (
	msgInvalidCredentials   = "Invalid username or password"
	msgCredentialsRequired  = "Username and password are required"
	msgPasswordsRequired    = "Current password and new password are required"
	msgCurrentPasswordWrong = "Current password is incorrect"
	msgPasswordUpdated      = "Password updated successfully"
)

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of POST /api/admin/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login handles POST /api/admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, msgCredentialsRequired)
		return
	}

	user, err := h.repo.GetUserByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logAndInternalError(w, r, "get_user_by_username", err)
		return
	}
	if user == nil {
		slog.InfoContext(r.Context(), "failed login attempt", "reason", "user not found", "username", req.Username)
		metrics.RecordLogin(metrics.LoginInvalid)
		writeJSONError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	match, err := auth.CheckPassword(req.Password, user.Password)
	if err != nil {
		logAndInternalError(w, r, "check_password", err)
		return
	}
	if !match {
		slog.InfoContext(r.Context(), "failed login attempt", "reason", "invalid password", "user_id", user.ID)
		metrics.RecordLogin(metrics.LoginInvalid)
		writeJSONError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if !user.IsAdmin {
		if err := h.sm.Destroy(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "failed to destroy session", "error", err)
		}
		slog.WarnContext(r.Context(), "non-admin login rejected", "user_id", user.ID)
		metrics.RecordLogin(metrics.LoginForbidden)
		writeJSONError(w, http.StatusForbidden, middleware.MsgNotAuthorized)
		return
	}

	// Renew session token to prevent session fixation
	if err := h.sm.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, r, "renew_session", err)
		return
	}
	h.sm.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.InfoContext(r.Context(), "user logged in", "user_id", user.ID, "username", user.Username)
	metrics.RecordLogin(metrics.LoginSuccess)
	writeJSON(w, http.StatusOK, user.Identity())
}

// Logout handles POST /api/admin/logout. It succeeds without a session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sm.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if err := h.sm.Destroy(r.Context()); err != nil {
		logAndInternalError(w, r, "destroy_session", err)
		return
	}

	if userID != 0 {
		slog.InfoContext(r.Context(), "user logged out", "user_id", userID)
	}
	writeJSONSuccess(w, nil)
}

// Me handles GET /api/admin/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, middleware.MsgNotAuthenticated)
		return
	}
	writeJSON(w, http.StatusOK, user.Identity())
}

// ChangePassword handles POST /api/admin/change-password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, middleware.MsgNotAuthenticated)
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeJSONError(w, http.StatusBadRequest, msgPasswordsRequired)
		return
	}

	match, err := auth.CheckPassword(req.CurrentPassword, user.Password)
	if err != nil {
		logAndInternalError(w, r, "check_password", err)
		return
	}
	if !match {
		writeJSONError(w, http.StatusBadRequest, msgCurrentPasswordWrong)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logAndInternalError(w, r, "hash_password", err)
		return
	}
	if err := h.repo.UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
		logAndInternalError(w, r, "update_user_password", err)
		return
	}

	if err := h.sm.RenewToken(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "failed to renew session after password change", "error", err)
	}

	slog.InfoContext(r.Context(), "password changed", "user_id", user.ID)
	writeJSONSuccess(w, map[string]any{"message": msgPasswordUpdated})
}
