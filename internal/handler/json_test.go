// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogAndInternalError(t *testing.T) {
	t.Run("store failure is a generic 500", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/admin/social-links", nil)

		logAndInternalError(rr, r, "list_social_links", errors.New("disk I/O error"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
	})

	t.Run("failure after the request deadline is a 503", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()

		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/admin/social-links", nil).WithContext(ctx)

		logAndInternalError(rr, r, "list_social_links", ctx.Err())

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"error":"Request timeout"}`, rr.Body.String())
	})
}
