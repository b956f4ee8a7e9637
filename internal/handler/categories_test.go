// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/learnsphere/admin-console/internal/api"
)

func TestCategoryList(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/category/all", map[string]any{"data": []api.Category{
		{CID: 1, Name: "Programming"},
		{CID: 2, Name: "Art"},
		{CID: 3, Name: "Business"},
	}})

	h := NewCategoryHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

	body := bodyOf(t, w)
	if !strings.Contains(body, "items=3") || !strings.Contains(body, "total=3") {
		t.Errorf("body = %q, want all three categories", body)
	}
}

func TestCategoryListSearch(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/category/all", map[string]any{"data": []api.Category{
		{CID: 1, Name: "Programming"},
		{CID: 2, Name: "Art"},
	}})

	h := NewCategoryHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/categories?search=art", nil))

	body := bodyOf(t, w)
	if !strings.Contains(body, "items=1") || !strings.Contains(body, "total=1") {
		t.Errorf("body = %q, want only the Art category", body)
	}
}

func TestCategoryDeleteFormShowsName(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/category/all", map[string]any{"data": []api.Category{
		{CID: 2, Name: "Art"},
	}})

	h := NewCategoryHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := withID(httptest.NewRequest(http.MethodGet, "/categories/2/delete", nil), "id", "2")
	h.DeleteForm(w, r)

	body := bodyOf(t, w)
	if !strings.Contains(body, "confirm_delete category") || !strings.Contains(body, "name=Art") {
		t.Errorf("body = %q, want the category confirmation page", body)
	}
	if !strings.Contains(body, "action=/categories/2/delete") {
		t.Errorf("body = %q, want the delete action URL", body)
	}
}

func TestCategoryDeleteDeclined(t *testing.T) {
	backend := newFakeBackend(t)
	h := NewCategoryHandler(backend.client(), newTestRenderer(t), nil)

	w := httptest.NewRecorder()
	r := withID(postForm("/categories/2/delete", url.Values{}), "id", "2")
	h.Delete(w, r)

	assertRedirect(t, w, redirectCategories)
	if len(backend.requests()) != 0 {
		t.Errorf("backend called %v, want no calls without confirmation", backend.requests())
	}
}

func TestCategoryDeleteConfirmedInvalidatesPickers(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/category/all", map[string]any{"data": []api.Category{
		{CID: 2, Name: "Art"},
	}})
	backend.handle("/api/category/delete/2", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.Write([]byte("{}"))
	})

	client := backend.client()
	pickers := newTestPickers(client)
	// Warm the picker cache, then delete: the next read must refetch.
	pickers.Categories(httptest.NewRequest(http.MethodGet, "/", nil).Context())

	h := NewCategoryHandler(client, newTestRenderer(t), pickers)
	w := httptest.NewRecorder()
	r := withID(postForm("/categories/2/delete", url.Values{"confirm": {"yes"}}), "id", "2")
	h.Delete(w, r)

	assertRedirect(t, w, redirectCategories)
	if !backend.calledWith(http.MethodDelete, "/api/category/delete/2") {
		t.Fatalf("backend calls = %v, want DELETE /api/category/delete/2", backend.requests())
	}

	before := len(backend.requests())
	pickers.Categories(r.Context())
	if len(backend.requests()) != before+1 {
		t.Errorf("picker cache not invalidated: backend calls = %v", backend.requests())
	}
}

func TestSubCategoryList(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/sub_category/all", []api.SubCategory{
		{ID: 1, Name: "Go"},
		{ID: 2, Name: "Rust"},
	})

	h := NewCategoryHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	h.ListSub(w, httptest.NewRequest(http.MethodGet, "/sub-categories", nil))

	body := bodyOf(t, w)
	if !strings.Contains(body, "items=2") || !strings.Contains(body, "total=2") {
		t.Errorf("body = %q, want both sub-categories", body)
	}
}

func TestSubCategoryDeleteConfirmed(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle("/api/sub_category/delete/3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	})

	h := NewCategoryHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := withID(postForm("/sub-categories/3/delete", url.Values{"confirm": {"yes"}}), "id", "3")
	h.DeleteSub(w, r)

	assertRedirect(t, w, redirectSubCategories)
	if !backend.calledWith(http.MethodDelete, "/api/sub_category/delete/3") {
		t.Fatalf("backend calls = %v, want DELETE /api/sub_category/delete/3", backend.requests())
	}
}
