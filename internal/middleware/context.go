// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/rennsz/landing/internal/model"
)

// ContextKeyRequestPath holds the request path for log enrichment.
const ContextKeyRequestPath ContextKey = "request_path"

// RequestPath creates middleware that stores the request path in the context.
// This is used by the logging handler to include the URL in log records.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, _ := ctx.Value(ContextKeyRequestPath).(string)
	return path
}

// UserIDFromContext returns the ID of the admin stored by RequireAdmin, or 0.
func UserIDFromContext(ctx context.Context) int64 {
	if u, ok := ctx.Value(ContextKeyUser).(*model.User); ok && u != nil {
		return u.ID
	}
	return 0
}
