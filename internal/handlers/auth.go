// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"inkpress/internal/auth"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/service"
)

// AuthHandler serves registration, login, and the authenticated profile.
type AuthHandler struct {
	users  *service.UserService
	tokens *auth.Manager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users *service.UserService, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the login response: a signed token plus the account.
type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateRegisterInput(in.Email, in.Password, in.Username); msg != "" {
		respondValidation(w, msg)
		return
	}

	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, u)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if !decodeJSON(w, r, &in) {
		return
	}

	u, err := h.users.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(u.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: expiresAt, User: u})
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	u, err := h.users.Profile(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, u)
}

// UpdateMe handles PATCH /api/v1/me.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.Principal(r.Context())

	var in service.UpdateProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if msg := validateProfileInput(in.Username, in.Bio); msg != "" {
		respondValidation(w, msg)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), principal, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, u)
}
