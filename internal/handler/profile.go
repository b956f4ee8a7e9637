// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/middleware"
	"github.com/learnsphere/admin-console/internal/render"
)

// ProfileHandler handles the admin account screens.
type ProfileHandler struct {
	api            *api.Client
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(client *api.Client, renderer *render.Renderer, sm *scs.SessionManager) *ProfileHandler {
	return &ProfileHandler{api: client, renderer: renderer, sessionManager: sm}
}

// ProfileFormData holds data for the profile template.
type ProfileFormData struct {
	Profile api.Profile
	Errors  map[string]string
}

// EditForm handles GET /profile.
func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	profile, err := h.api.GetProfile(r.Context())
	if err != nil {
		slog.Error("failed to get profile", "category", "auth", "error", err)
		flashError(w, r, h.renderer, redirectDashboard, api.UserMessage(err))
		return
	}

	h.renderForm(w, r, ProfileFormData{Profile: profile, Errors: make(map[string]string)})
}

// Update handles POST /profile. When the email changed the backend rotates
// the credential; the fresh access token replaces the stored one so the
// session stays valid.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectProfile) {
		return
	}

	profile := api.Profile{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
	}

	errs := make(map[string]string)
	if profile.Username == "" {
		errs["username"] = "Username is required"
	}
	if profile.Email == "" || !strings.Contains(profile.Email, "@") {
		errs["email"] = "Enter a valid email address"
	}
	if len(errs) > 0 {
		h.renderForm(w, r, ProfileFormData{Profile: profile, Errors: errs})
		return
	}

	result, err := h.api.UpdateProfile(r.Context(), profile)
	if err != nil {
		slog.Error("failed to update profile", "category", "auth", "error", err)
		h.renderForm(w, r, ProfileFormData{Profile: profile,
			Errors: map[string]string{"form": api.UserMessage(err)}})
		return
	}

	if result.AccessToken != "" {
		h.sessionManager.Put(r.Context(), middleware.SessionKeyAccessToken, result.AccessToken)
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUsername, profile.Username)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyEmail, profile.Email)

	slog.Info("profile updated", "category", "auth", "username", profile.Username)
	flashSuccess(w, r, h.renderer, redirectProfile, "Profile updated successfully")
}

// PasswordFormData holds data for the change-password template.
type PasswordFormData struct {
	Errors map[string]string
}

// PasswordForm handles GET /profile/password.
func (h *ProfileHandler) PasswordForm(w http.ResponseWriter, r *http.Request) {
	h.renderPasswordForm(w, r, PasswordFormData{Errors: make(map[string]string)})
}

// ChangePassword handles POST /profile/password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectPassword) {
		return
	}

	current := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	errs := make(map[string]string)
	if current == "" {
		errs["current_password"] = "Current password is required"
	}
	if len(newPassword) < 8 {
		errs["new_password"] = "New password must be at least 8 characters"
	}
	if newPassword != confirm {
		errs["confirm_password"] = "Passwords do not match"
	}
	if len(errs) > 0 {
		h.renderPasswordForm(w, r, PasswordFormData{Errors: errs})
		return
	}

	if err := h.api.ChangePassword(r.Context(), current, newPassword); err != nil {
		slog.Warn("password change rejected", "category", "auth", "error", err)
		h.renderPasswordForm(w, r, PasswordFormData{
			Errors: map[string]string{"form": api.UserMessage(err)}})
		return
	}

	slog.Info("password changed", "category", "auth")
	flashSuccess(w, r, h.renderer, redirectProfile, "Password changed successfully")
}

func (h *ProfileHandler) renderForm(w http.ResponseWriter, r *http.Request, data ProfileFormData) {
	if data.Errors == nil {
		data.Errors = make(map[string]string)
	}
	if err := h.renderer.Render(w, r, "admin/profile_form", pageData(r, "Profile", "profile", data)); err != nil {
		logAndInternalError(w, "failed to render profile form", "error", err)
	}
}

func (h *ProfileHandler) renderPasswordForm(w http.ResponseWriter, r *http.Request, data PasswordFormData) {
	if data.Errors == nil {
		data.Errors = make(map[string]string)
	}
	if err := h.renderer.Render(w, r, "admin/password_form", pageData(r, "Change Password", "profile", data)); err != nil {
		logAndInternalError(w, "failed to render password form", "error", err)
	}
}
