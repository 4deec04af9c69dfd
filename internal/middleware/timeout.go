// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MsgRequestTimeout is the error returned when a handler runs past the deadline.
const MsgRequestTimeout = "Request timeout"

// Timeout sets a deadline on the request context. Handlers run on the
// calling goroutine and are expected to stop once the context is done; a
// handler that returns after the deadline without writing anything gets a
// 503 JSON error.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			ww, ok := w.(chimw.WrapResponseWriter)
			if !ok {
				ww = chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			}

			next.ServeHTTP(ww, r.WithContext(ctx))

			if errors.Is(ctx.Err(), context.DeadlineExceeded) && ww.Status() == 0 {
				WriteJSONError(ww, http.StatusServiceUnavailable, MsgRequestTimeout)
			}
		})
	}
}

// IsTimeout reports whether err came from the request deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
