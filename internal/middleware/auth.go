// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/rennsz/landing/internal/model"
	"github.com/rennsz/landing/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyUser ContextKey = "user"
)

// SessionKeyUserID is the session key holding the signed-in user's ID.
const SessionKeyUserID = "user_id"

// Error messages returned by the admin gate.
const (
	MsgNotAuthenticated = "Not authenticated"
	MsgNotAuthorized    = "Not authorized"
)

// UserFinder loads users by ID.
type UserFinder interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// SessionUser resolves the user bound to the request's session.
// It returns (nil, nil) when the session carries no user, and destroys
// sessions that point to a user that no longer exists.
func SessionUser(sm *scs.SessionManager, users UserFinder, r *http.Request) (*model.User, error) {
	userID := sm.GetInt64(r.Context(), SessionKeyUserID)
	if userID == 0 {
		return nil, nil
	}

	user, err := users.GetUser(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		if err := sm.Destroy(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "failed to destroy stale session", "user_id", userID, "error", err)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RequireAdmin creates middleware that only lets requests from an admin
// session through. Anonymous requests get 401, non-admin users get 403,
// and in both cases the wrapped handler is not called. The admin user is
// stored in the request context for GetUser.
func RequireAdmin(sm *scs.SessionManager, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := SessionUser(sm, users, r)
			if err != nil {
				slog.ErrorContext(r.Context(), "loading session user", "error", err)
				WriteJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}
			if user == nil {
				WriteJSONError(w, http.StatusUnauthorized, MsgNotAuthenticated)
				return
			}
			if !user.IsAdmin {
				slog.WarnContext(r.Context(), "access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"user_id", user.ID,
					"remote_addr", r.RemoteAddr,
				)
				WriteJSONError(w, http.StatusForbidden, MsgNotAuthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}
