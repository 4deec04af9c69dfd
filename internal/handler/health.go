// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rennsz/landing/internal/store"
)

// storagePingTimeout bounds each repository ping.
const storagePingTimeout = 2 * time.Second

// Health states.
const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	repo    store.Repository
	version string
	started time.Time
	now     func() time.Time
}

// NewHealthHandler returns health endpoints reporting on repo.
func NewHealthHandler(repo store.Repository, version string) *HealthHandler {
	return &HealthHandler{
		repo:    repo,
		version: version,
		started: time.Now(),
		now:     time.Now,
	}
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check is the outcome of probing one dependency.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

func (c Check) ok() bool { return c.Status == statusHealthy }

// SystemInfo is included with ?verbose=true.
type SystemInfo struct {
	GoVersion  string `json:"goVersion"`
	Goroutines int    `json:"goroutines"`
	NumCPU     int    `json:"numCpu"`
	HeapAlloc  string `json:"heapAlloc"`
	SysMemory  string `json:"sysMemory"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storage := h.pingStorage(r.Context())
	now := h.now()

	body := HealthStatus{
		Status:    statusHealthy,
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.started).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"storage": storage},
	}
	if r.URL.Query().Get("verbose") == "true" {
		body.System = readSystemInfo()
	}

	if !storage.ok() {
		body.Status = statusDegraded
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// Liveness handles GET /health/live. It never touches storage.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if !h.pingStorage(r.Context()).ok() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// pingStorage reports repository reachability. Driver errors stay out of
// the response body.
func (h *HealthHandler) pingStorage(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()

	start := time.Now()
	err := h.repo.Ping(ctx)
	check := Check{Status: statusHealthy, Message: "Connected", Latency: time.Since(start).String()}
	if err != nil {
		slog.WarnContext(ctx, "storage ping failed", "error", err)
		check.Status = statusUnhealthy
		check.Message = "Storage unreachable"
	}
	return check
}

func readSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		NumCPU:     runtime.NumCPU(),
		HeapAlloc:  humanize.IBytes(m.HeapAlloc),
		SysMemory:  humanize.IBytes(m.Sys),
	}
}
