// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers behind every console screen:
// courses, categories, users, templates, billing views, settings and the
// admin account. Handlers call the backend through the typed API client,
// render embedded templates and communicate outcomes as flash messages with
// 303 redirects.
package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/middleware"
	"github.com/learnsphere/admin-console/internal/render"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	api            *api.Client
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	protection     *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *api.Client, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		api:            client,
		renderer:       renderer,
		sessionManager: sm,
		protection:     lp,
	}
}

// LoginFormData holds data for the login template.
type LoginFormData struct {
	Email string
	Error string
}

// LoginForm handles GET /login - displays the login form.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetString(r.Context(), middleware.SessionKeyAccessToken) != "" {
		http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
		Data:  LoginFormData{},
	}); err != nil {
		logAndInternalError(w, "failed to render login form", "error", err)
	}
}

// Login handles POST /login - authenticates against the backend and stores
// the issued access token in the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.renderLoginError(w, r, email, "Email and password are required")
		return
	}

	if h.protection != nil {
		if locked, wait := h.protection.IsAccountLocked(email); locked {
			slog.Warn("login attempt on locked account", "category", "auth", "ip", clientIP(r))
			h.renderLoginError(w, r, email, "Account temporarily locked. Try again in "+wait.Round(time.Second).String())
			return
		}
	}

	result, err := h.api.Login(r.Context(), email, password)
	if err != nil {
		if h.protection != nil {
			h.protection.RecordFailedAttempt(email)
		}
		slog.Warn("login failed", "category", "auth", "email", email, "error", err)
		h.renderLoginError(w, r, email, api.UserMessage(err))
		return
	}

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(email)
	}

	// Rotate the session token on privilege change
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "failed to renew session token", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyAccessToken, result.AccessToken)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyEmail, email)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUsername, usernameFromEmail(email))

	slog.Info("admin signed in", "category", "auth", "email", email)
	http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
}

// Logout handles POST /logout - clears the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	email := h.sessionManager.GetString(r.Context(), middleware.SessionKeyEmail)
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	slog.Info("admin signed out", "category", "auth", "email", email)
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, email, msg string) {
	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
		Data:  LoginFormData{Email: email, Error: msg},
	}); err != nil {
		logAndInternalError(w, "failed to render login form", "error", err)
	}
}

// usernameFromEmail derives the display name shown in the navbar until the
// profile is fetched.
func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
