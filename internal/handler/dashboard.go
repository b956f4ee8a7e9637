// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/model"
	"github.com/learnsphere/admin-console/internal/render"
)

// DashboardHandler renders the landing page with collection counts.
type DashboardHandler struct {
	api      *api.Client
	renderer *render.Renderer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(client *api.Client, renderer *render.Renderer) *DashboardHandler {
	return &DashboardHandler{api: client, renderer: renderer}
}

// DashboardData holds the count summaries shown on the landing page.
type DashboardData struct {
	Courses    int
	Categories int
	Users      int
	Templates  int
	Payments   int
	Orders     int
}

// Dashboard handles GET / - count summaries from the fetched collections.
// Individual backend failures leave that count at zero rather than failing
// the page.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := DashboardData{
		Payments: len(model.SamplePayments()),
		Orders:   len(model.SampleOrders()),
	}

	var wg sync.WaitGroup
	count := func(dst *int, name string, fetch func(ctx context.Context) (int, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := fetch(r.Context())
			if err != nil {
				slog.Warn("dashboard count unavailable", "collection", name, "error", err)
				return
			}
			*dst = n
		}()
	}

	count(&data.Courses, "courses", func(ctx context.Context) (int, error) {
		items, err := h.api.ListCourses(ctx)
		return len(items), err
	})
	count(&data.Categories, "categories", func(ctx context.Context) (int, error) {
		items, err := h.api.ListCategories(ctx)
		return len(items), err
	})
	count(&data.Users, "users", func(ctx context.Context) (int, error) {
		items, err := h.api.ListUsers(ctx)
		return len(items), err
	})
	count(&data.Templates, "templates", func(ctx context.Context) (int, error) {
		items, err := h.api.ListTemplates(ctx)
		return len(items), err
	})
	wg.Wait()

	if err := h.renderer.Render(w, r, "admin/dashboard", pageData(r, "Dashboard", "dashboard", data)); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
