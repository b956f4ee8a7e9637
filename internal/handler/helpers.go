// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/learnsphere/admin-console/internal/middleware"
	"github.com/learnsphere/admin-console/internal/render"
)

// pageData builds the common TemplateData for an admin page, stamping the
// signed-in username and the active sidebar item.
func pageData(r *http.Request, title, active string, data any) render.TemplateData {
	return render.TemplateData{
		Title:    title,
		Active:   active,
		Username: middleware.GetUsername(r),
		Data:     data,
	}
}

// pathID parses the {id} route parameter as a positive int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// confirmed reports whether the submitted form carries the delete
// confirmation. Destructive handlers refuse to call the backend without it.
func confirmed(r *http.Request) bool {
	return r.FormValue("confirm") == "yes"
}
