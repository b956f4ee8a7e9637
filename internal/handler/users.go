// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/listing"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/uikit"
)

// UserHandler handles the learner account screens.
type UserHandler struct {
	api      *api.Client
	renderer *render.Renderer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(client *api.Client, renderer *render.Renderer) *UserHandler {
	return &UserHandler{api: client, renderer: renderer}
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users      []api.User
	Search     string
	TotalCount int
	Pagination uikit.Pagination
}

// List handles GET /users - searchable on username and email.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.ListUsers(r.Context())
	if err != nil {
		slog.Error("failed to list users", "category", "user", "error", err)
		flashError(w, r, h.renderer, redirectDashboard, api.UserMessage(err))
		return
	}

	ctl := listing.NewController(users, UsersPerPage, func(u api.User) []string {
		return []string{u.Username, u.Email}
	})
	ctl.SetSearchTerm(uikit.ParseSearchParam(r))
	ctl.SetPage(uikit.ParsePageParam(r))

	data := UsersListData{
		Users:      ctl.PageItems(),
		Search:     ctl.SearchTerm(),
		TotalCount: ctl.FilteredCount(),
		Pagination: uikit.BuildPagination(ctl.CurrentPage(), ctl.FilteredCount(), UsersPerPage, RouteUsers, r.URL.Query()),
	}

	if err := h.renderer.Render(w, r, "admin/users_list", pageData(r, "Users", "users", data)); err != nil {
		logAndInternalError(w, "failed to render users list", "error", err)
	}
}

// UserDeleteData holds data for the user delete-confirmation template.
type UserDeleteData struct {
	UID       string
	Enrolled  bool
	Courses   int
	ActionURL string
	CancelURL string
}

// DeleteForm handles GET /users/{uid}/delete - asks for confirmation, noting
// active enrollments so the admin knows what the delete takes with it.
func (h *UserHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		flashError(w, r, h.renderer, redirectUsers, "User not found")
		return
	}

	status, err := h.api.CheckEnrollment(r.Context(), uid)
	if err != nil {
		slog.Error("failed to check enrollment", "category", "user", "error", err, "uid", uid)
		flashError(w, r, h.renderer, redirectUsers, api.UserMessage(err))
		return
	}

	data := UserDeleteData{
		UID:       uid,
		Enrolled:  status.Enrolled,
		Courses:   status.Courses,
		ActionURL: RouteUsers + "/" + uid + RouteSuffixDelete,
		CancelURL: redirectUsers,
	}
	if err := h.renderer.Render(w, r, "admin/users_delete", pageData(r, "Delete User", "users", data)); err != nil {
		logAndInternalError(w, "failed to render confirmation", "error", err)
	}
}

// Delete handles POST /users/{uid}/delete.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	if uid == "" {
		flashError(w, r, h.renderer, redirectUsers, "User not found")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectUsers) {
		return
	}
	if !confirmed(r) {
		http.Redirect(w, r, redirectUsers, http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteUser(r.Context(), uid); err != nil {
		slog.Error("failed to delete user", "category", "user", "error", err, "uid", uid)
		flashError(w, r, h.renderer, redirectUsers, api.UserMessage(err))
		return
	}

	slog.Info("user deleted", "category", "user", "uid", uid)
	flashSuccess(w, r, h.renderer, redirectUsers, "User deleted successfully")
}
