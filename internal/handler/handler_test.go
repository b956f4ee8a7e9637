// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/cache"
	"github.com/learnsphere/admin-console/internal/render"
)

// stubTemplatesFS returns minimal page templates that echo the handler data
// they receive, so tests can assert on what was rendered without depending
// on the real markup.
func stubTemplatesFS() fstest.MapFS {
	pages := map[string]string{
		"admin/dashboard.html":          `dashboard courses={{.Data.Courses}} categories={{.Data.Categories}} users={{.Data.Users}} templates={{.Data.Templates}} payments={{.Data.Payments}} orders={{.Data.Orders}}`,
		"admin/courses_list.html":       `courses_list items={{len .Data.Courses}} search={{.Data.Search}} total={{.Data.TotalCount}} page={{.Data.Pagination.CurrentPage}}`,
		"admin/courses_view.html":       `courses_view title={{.Data.Course.Title}} lessons={{len .Data.Course.Lessons}}`,
		"admin/courses_form.html":       `courses_form edit={{.Data.IsEdit}} lessons={{range .Data.Lessons}}[{{.Kind}} q={{len .Questions}}]{{end}} errors={{len .Data.Errors}} cats={{len .Data.Categories}}`,
		"admin/confirm_delete.html":     `confirm_delete {{.Data.EntityType}} name={{.Data.Name}} action={{.Data.ActionURL}}`,
		"admin/categories_list.html":    `categories_list items={{len .Data.Categories}} search={{.Data.Search}} total={{.Data.TotalCount}}`,
		"admin/subcategories_list.html": `subcategories_list items={{len .Data.SubCategories}} total={{.Data.TotalCount}}`,
		"admin/users_list.html":         `users_list items={{len .Data.Users}} search={{.Data.Search}} total={{.Data.TotalCount}}`,
		"admin/users_delete.html":       `users_delete uid={{.Data.UID}} enrolled={{.Data.Enrolled}} courses={{.Data.Courses}}`,
		"admin/templates_list.html":     `templates_list items={{len .Data.Templates}} total={{.Data.TotalCount}}`,
		"admin/templates_form.html":     `templates_form edit={{.Data.IsEdit}} slots={{range .Data.Slots}}[{{.ID}}]{{end}} errors={{len .Data.Errors}}`,
		"admin/payments_list.html":      `payments_list items={{len .Data.Payments}} total={{.Data.TotalCount}} page={{.Data.Pagination.CurrentPage}}`,
		"admin/orders_list.html":        `orders_list items={{len .Data.Orders}} total={{.Data.TotalCount}} page={{.Data.Pagination.CurrentPage}}`,
		"admin/settings_form.html":      `settings_form new={{.Data.IsNew}} name={{.Data.Settings.SiteName}} errors={{len .Data.Errors}}`,
		"admin/logo_form.html":          `logo_form current={{.Data.CurrentLogo}}`,
		"admin/profile_form.html":       `profile_form username={{.Data.Profile.Username}} errors={{len .Data.Errors}}`,
		"admin/password_form.html":      `password_form errors={{len .Data.Errors}}`,
		"auth/login.html":               `login email={{.Data.Email}} error={{.Data.Error}}`,
	}

	fsys := fstest.MapFS{
		"layouts/base.html":  {Data: []byte(`{{define "base"}}{{block "content" .}}{{end}}{{end}}`)},
		"layouts/admin.html": {Data: []byte(`{{define "admin"}}{{end}}`)},
	}
	for path, body := range pages {
		fsys[path] = &fstest.MapFile{Data: []byte(`{{define "content"}}` + body + `{{end}}`)}
	}
	return fsys
}

func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(render.Config{TemplatesFS: stubTemplatesFS()})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

// fakeBackend is an httptest server standing in for the platform REST
// backend. It records every request so tests can assert which endpoints
// were (and were not) called.
type fakeBackend struct {
	srv *httptest.Server
	mux *http.ServeMux

	mu    sync.Mutex
	calls []string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{mux: http.NewServeMux()}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) client() *api.Client {
	return api.New(b.srv.URL, api.StaticToken("test-token"))
}

func (b *fakeBackend) handle(pattern string, fn http.HandlerFunc) {
	b.mux.HandleFunc(pattern, fn)
}

// respondJSON registers a handler that always answers with the given value.
func (b *fakeBackend) respondJSON(pattern string, v any) {
	b.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	})
}

func (b *fakeBackend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

func (b *fakeBackend) calledWith(method, path string) bool {
	for _, c := range b.requests() {
		if c == method+" "+path {
			return true
		}
	}
	return false
}

func newTestPickers(client *api.Client) *cache.Pickers {
	return cache.NewPickers(cache.NewSimpleMemoryCache(time.Minute), client, time.Minute, nil)
}

// withID stamps a chi route parameter onto the request so pathID resolves
// without running a full router.
func withID(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// postForm builds an application/x-www-form-urlencoded POST.
func postForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// multipartFile is one file part for postMultipart.
type multipartFile struct {
	field, name, contentType string
	data                     []byte
}

// postMultipart builds a multipart/form-data POST with the given fields and
// files, the way the browser submits the editor forms.
func postMultipart(t *testing.T, target string, fields url.Values, files ...multipartFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(field, v); err != nil {
				t.Fatalf("writing field %s: %v", field, err)
			}
		}
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		contentType := f.contentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("creating file part %s: %v", f.field, err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("writing file part %s: %v", f.field, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func bodyOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	data, err := io.ReadAll(w.Result().Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return string(data)
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}
