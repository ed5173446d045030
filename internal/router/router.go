// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// API server. Reads are public; every mutation sits behind Bearer-token
// authentication.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/auth"
	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *auth.Manager, authH *handlers.AuthHandler, categories *handlers.CategoryHandler, posts *handlers.PostHandler, images *handlers.ImageHandler) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Brute-force protection on credential endpoints only.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints, rate-limited per IP.
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/auth/register", authH.Register)
			r.Post("/auth/login", authH.Login)
		})

		// Public reads.
		r.Get("/categories", categories.List)
		r.Get("/categories/slug/{slug}", categories.GetBySlug)
		r.Get("/categories/{id}", categories.Get)
		r.Get("/posts", posts.List)
		r.Get("/posts/slug/{slug}", posts.GetBySlug)
		r.Get("/posts/{id}", posts.Get)
		r.Get("/images", images.List)
		r.Get("/images/{id}", images.Get)

		// Authenticated mutations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))

			r.Get("/me", authH.Me)
			r.Patch("/me", authH.UpdateMe)

			r.Post("/categories", categories.Create)
			r.Patch("/categories/{id}", categories.Update)
			r.Delete("/categories/{id}", categories.Delete)

			r.Post("/posts", posts.Create)
			r.Patch("/posts/{id}", posts.Update)
			r.Delete("/posts/{id}", posts.Delete)
			r.Post("/posts/{id}/images", posts.AttachImage)
			r.Delete("/posts/{id}/images/{imageID}", posts.DetachImage)

			r.Post("/images", images.Upload)
			r.Delete("/images/{id}", images.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
