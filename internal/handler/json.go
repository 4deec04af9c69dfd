// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/rennsz/landing/internal/metrics"
	"github.com/rennsz/landing/internal/middleware"
	"github.com/rennsz/landing/internal/store"
	"github.com/rennsz/landing/internal/validation"
)

// maxBodyBytes bounds request bodies. Page content is the largest payload.
const maxBodyBytes = 1 << 20

// Error messages shared by several handlers.
const (
	msgInvalidJSON   = "Invalid JSON body"
	msgInvalidID     = "Invalid id"
	msgInternalError = "Internal Server Error"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	middleware.WriteJSONError(w, statusCode, message)
}

// writeJSONSuccess writes {"success":true} merged with data.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	writeJSON(w, http.StatusOK, data)
}

// logAndInternalError logs err, counts it against operation and writes a
// generic 500 response, or a 503 once the request deadline has passed.
// Internal details never reach the client.
func logAndInternalError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	if middleware.IsTimeout(r.Context().Err()) {
		slog.WarnContext(r.Context(), "request timed out", "operation", operation, "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, middleware.MsgRequestTimeout)
		return
	}
	slog.ErrorContext(r.Context(), "request failed", "operation", operation, "error", err)
	metrics.RecordStoreError(operation)
	writeJSONError(w, http.StatusInternalServerError, msgInternalError)
}

// readBody reads the request body up to maxBodyBytes.
// On failure it writes a 400 response and returns false.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		writeJSONError(w, http.StatusBadRequest, msgInvalidJSON)
		return nil, false
	}
	return body, true
}

// decodeJSON decodes the request body into dst.
// On failure it writes a 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, ok := readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// validate runs struct validation on v and writes a 400 response listing
// the failed fields.
func validate(w http.ResponseWriter, v any) bool {
	if err := validation.Struct(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// decodeAndValidate decodes the request body into dst and validates it.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeJSON(w, r, dst) && validate(w, dst)
}

// parseID reads the positive {id} URL parameter.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return id, true
}

// respondStoreResult writes v on success, 404 for store.ErrNotFound and a
// 500 for anything else.
func respondStoreResult(w http.ResponseWriter, r *http.Request, entityName, operation string, statusCode int, v any, err error) {
	switch {
	case err == nil:
		writeJSON(w, statusCode, v)
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, entityName+" not found")
	default:
		logAndInternalError(w, r, operation, err)
	}
}

// respondDeleted writes {"success":true} after a delete.
func respondDeleted(w http.ResponseWriter, r *http.Request, entityName, operation string, err error) {
	switch {
	case err == nil:
		writeJSONSuccess(w, nil)
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, entityName+" not found")
	default:
		logAndInternalError(w, r, operation, err)
	}
}

// nonNil returns an empty slice for nil so lists encode as [].
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
