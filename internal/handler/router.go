// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/featreq-go/internal/middleware"
)

// RequestTimeout bounds handler time so no request blocks indefinitely.
const RequestTimeout = 10 * time.Second

// Routes assembles the full API router.
func Routes(db *sql.DB, sm *scs.SessionManager, lp *middleware.LoginProtection) chi.Router {
	authHandler := NewAuthHandler(db, sm)
	frHandler := NewFeatureRequestHandler(db)
	adminHandler := NewAdminHandler(db)
	healthHandler := NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	// Bounds every store operation through the request context deadline.
	r.Use(chimw.Timeout(RequestTimeout))
	r.Use(sm.LoadAndSave)
	r.Use(middleware.LoadUser(sm, db))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Post("/register", authHandler.Register)
		r.With(lp.Middleware()).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/user", authHandler.CurrentUser)

		r.Route("/feature-requests", func(r chi.Router) {
			r.Use(middleware.RequireAuth())
			r.Get("/", frHandler.List)
			r.Post("/", frHandler.Create)
			r.With(middleware.RequireAdmin()).Patch("/{id}", frHandler.Update)
		})

		// Blanket admin gate for the whole namespace.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin())
			r.Get("/users", adminHandler.ListUsers)
		})
	})

	return r
}
