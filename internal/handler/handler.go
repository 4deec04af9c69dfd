// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the landing page's HTTP API: public read
// endpoints, admin authentication, and admin CRUD over the page content.
package handler

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/rennsz/landing/internal/middleware"
	"github.com/rennsz/landing/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	repo store.Repository
	sm   *scs.SessionManager
	now  func() time.Time
}

// New creates a new API handler.
func New(repo store.Repository, sm *scs.SessionManager) *Handler {
	return &Handler{
		repo: repo,
		sm:   sm,
		now:  time.Now,
	}
}

// Routes registers the public and admin API on r. Admin routes other than
// login and logout require an admin session. csrf guards every admin route
// and may be nil.
func (h *Handler) Routes(r chi.Router, csrf func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/social-links", h.PublicSocialLinks)
		r.Get("/stream-channels", h.PublicStreamChannels)
		r.Get("/site-settings", h.PublicSiteSettings)
		r.Get("/announcements", h.PublicAnnouncements)
		r.Get("/page-content/{section}", h.PublicPageContent)

		r.Route("/admin", func(r chi.Router) {
			if csrf != nil {
				r.Use(csrf)
			}

			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(h.sm, h.repo))

				r.Get("/me", h.Me)
				r.Post("/change-password", h.ChangePassword)

				r.Route("/social-links", func(r chi.Router) {
					r.Get("/", h.ListSocialLinks)
					r.Post("/", h.CreateSocialLink)
					r.Get("/{id}", h.GetSocialLink)
					r.Put("/{id}", h.UpdateSocialLink)
					r.Delete("/{id}", h.DeleteSocialLink)
				})

				r.Route("/stream-channels", func(r chi.Router) {
					r.Get("/", h.ListStreamChannels)
					r.Post("/", h.CreateStreamChannel)
					r.Get("/{id}", h.GetStreamChannel)
					r.Put("/{id}", h.UpdateStreamChannel)
					r.Delete("/{id}", h.DeleteStreamChannel)
				})

				r.Get("/site-settings", h.GetSiteSettings)
				r.Put("/site-settings", h.UpdateSiteSettings)
				r.Post("/site-settings", h.UpdateSiteSettings)

				r.Route("/announcements", func(r chi.Router) {
					r.Get("/", h.ListAnnouncements)
					r.Post("/", h.CreateAnnouncement)
					r.Get("/{id}", h.GetAnnouncement)
					r.Put("/{id}", h.UpdateAnnouncement)
					r.Delete("/{id}", h.DeleteAnnouncement)
				})

				r.Get("/page-content", h.ListPageContent)
				r.Get("/page-content/{section}", h.GetPageContent)
				r.Put("/page-content/{section}", h.UpdatePageContent)
			})
		})
	})
}
