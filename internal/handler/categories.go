// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/cache"
	"github.com/learnsphere/admin-console/internal/listing"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/uikit"
)

// CategoryHandler handles the category and sub-category screens. Both feed
// the course authoring dropdowns, so every successful delete invalidates the
// picker cache.
type CategoryHandler struct {
	api      *api.Client
	renderer *render.Renderer
	pickers  *cache.Pickers
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(client *api.Client, renderer *render.Renderer, pickers *cache.Pickers) *CategoryHandler {
	return &CategoryHandler{api: client, renderer: renderer, pickers: pickers}
}

// CategoriesListData holds data for the categories list template.
type CategoriesListData struct {
	Categories []api.Category
	Search     string
	TotalCount int
	Pagination uikit.Pagination
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.api.ListCategories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "category", "course", "error", err)
		flashError(w, r, h.renderer, redirectDashboard, api.UserMessage(err))
		return
	}

	ctl := listing.NewController(categories, CategoriesPerPage, func(c api.Category) []string {
		return []string{c.Name}
	})
	ctl.SetSearchTerm(uikit.ParseSearchParam(r))
	ctl.SetPage(uikit.ParsePageParam(r))

	data := CategoriesListData{
		Categories: ctl.PageItems(),
		Search:     ctl.SearchTerm(),
		TotalCount: ctl.FilteredCount(),
		Pagination: uikit.BuildPagination(ctl.CurrentPage(), ctl.FilteredCount(), CategoriesPerPage, RouteCategories, r.URL.Query()),
	}

	if err := h.renderer.Render(w, r, "admin/categories_list", pageData(r, "Categories", "categories", data)); err != nil {
		logAndInternalError(w, "failed to render categories list", "error", err)
	}
}

// DeleteForm handles GET /categories/{id}/delete - asks for confirmation.
func (h *CategoryHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCategories, "Category not found")
		return
	}

	name := h.categoryName(r, id)
	data := DeleteConfirmData{
		EntityType: "category",
		Name:       name,
		ActionURL:  fmt.Sprintf("%s/%d%s", RouteCategories, id, RouteSuffixDelete),
		CancelURL:  redirectCategories,
	}
	if err := h.renderer.Render(w, r, "admin/confirm_delete", pageData(r, "Delete Category", "categories", data)); err != nil {
		logAndInternalError(w, "failed to render confirmation", "error", err)
	}
}

// Delete handles POST /categories/{id}/delete.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCategories, "Category not found")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectCategories) {
		return
	}
	if !confirmed(r) {
		http.Redirect(w, r, redirectCategories, http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteCategory(r.Context(), id); err != nil {
		slog.Error("failed to delete category", "category", "course", "error", err, "cid", id)
		flashError(w, r, h.renderer, redirectCategories, api.UserMessage(err))
		return
	}

	if h.pickers != nil {
		h.pickers.Invalidate(r.Context())
	}
	slog.Info("category deleted", "category", "course", "cid", id)
	flashSuccess(w, r, h.renderer, redirectCategories, "Category deleted successfully")
}

// SubCategoriesListData holds data for the sub-categories list template.
type SubCategoriesListData struct {
	SubCategories []api.SubCategory
	Search        string
	TotalCount    int
	Pagination    uikit.Pagination
}

// ListSub handles GET /sub-categories.
func (h *CategoryHandler) ListSub(w http.ResponseWriter, r *http.Request) {
	subs, err := h.api.ListSubCategories(r.Context())
	if err != nil {
		slog.Error("failed to list sub-categories", "category", "course", "error", err)
		flashError(w, r, h.renderer, redirectDashboard, api.UserMessage(err))
		return
	}

	ctl := listing.NewController(subs, SubCategoriesPerPage, func(s api.SubCategory) []string {
		return []string{s.Name}
	})
	ctl.SetSearchTerm(uikit.ParseSearchParam(r))
	ctl.SetPage(uikit.ParsePageParam(r))

	data := SubCategoriesListData{
		SubCategories: ctl.PageItems(),
		Search:        ctl.SearchTerm(),
		TotalCount:    ctl.FilteredCount(),
		Pagination:    uikit.BuildPagination(ctl.CurrentPage(), ctl.FilteredCount(), SubCategoriesPerPage, RouteSubCategories, r.URL.Query()),
	}

	if err := h.renderer.Render(w, r, "admin/subcategories_list", pageData(r, "Sub-Categories", "sub-categories", data)); err != nil {
		logAndInternalError(w, "failed to render sub-categories list", "error", err)
	}
}

// DeleteSubForm handles GET /sub-categories/{id}/delete.
func (h *CategoryHandler) DeleteSubForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectSubCategories, "Sub-category not found")
		return
	}

	name := h.subCategoryName(r, id)
	data := DeleteConfirmData{
		EntityType: "sub-category",
		Name:       name,
		ActionURL:  fmt.Sprintf("%s/%d%s", RouteSubCategories, id, RouteSuffixDelete),
		CancelURL:  redirectSubCategories,
	}
	if err := h.renderer.Render(w, r, "admin/confirm_delete", pageData(r, "Delete Sub-Category", "sub-categories", data)); err != nil {
		logAndInternalError(w, "failed to render confirmation", "error", err)
	}
}

// DeleteSub handles POST /sub-categories/{id}/delete.
func (h *CategoryHandler) DeleteSub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectSubCategories, "Sub-category not found")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectSubCategories) {
		return
	}
	if !confirmed(r) {
		http.Redirect(w, r, redirectSubCategories, http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteSubCategory(r.Context(), id); err != nil {
		slog.Error("failed to delete sub-category", "category", "course", "error", err, "id", id)
		flashError(w, r, h.renderer, redirectSubCategories, api.UserMessage(err))
		return
	}

	if h.pickers != nil {
		h.pickers.Invalidate(r.Context())
	}
	slog.Info("sub-category deleted", "category", "course", "id", id)
	flashSuccess(w, r, h.renderer, redirectSubCategories, "Sub-category deleted successfully")
}

func (h *CategoryHandler) categoryName(r *http.Request, id int64) string {
	categories, err := h.api.ListCategories(r.Context())
	if err != nil {
		return ""
	}
	for _, c := range categories {
		if c.CID == id {
			return c.Name
		}
	}
	return ""
}

func (h *CategoryHandler) subCategoryName(r *http.Request, id int64) string {
	subs, err := h.api.ListSubCategories(r.Context())
	if err != nil {
		return ""
	}
	for _, s := range subs {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}
