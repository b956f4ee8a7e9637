// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/learnsphere/admin-console/internal/api"
)

func sampleCourses() []api.Course {
	return []api.Course{
		{ID: 1, Title: "Go Basics", ParentCategory: "Programming", Price: "49"},
		{ID: 2, Title: "Advanced Go", ParentCategory: "Programming", Price: "99"},
		{ID: 3, Title: "Watercolor Painting", ParentCategory: "Art", Price: "29"},
	}
}

func TestCourseList(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/course/all", map[string]any{"courses": sampleCourses()})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/courses", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := bodyOf(t, w)
	if !strings.Contains(body, "items=3") || !strings.Contains(body, "total=3") {
		t.Errorf("body = %q, want all three courses", body)
	}
}

func TestCourseListSearchFiltersByTitle(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/course/all", map[string]any{"courses": sampleCourses()})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/courses?search=go", nil))

	body := bodyOf(t, w)
	if !strings.Contains(body, "items=2") || !strings.Contains(body, "total=2") {
		t.Errorf("body = %q, want the two Go courses", body)
	}
	if !strings.Contains(body, "search=go") {
		t.Errorf("body = %q, want the search term echoed", body)
	}
}

func TestCourseListBackendFailure(t *testing.T) {
	backend := newFakeBackend(t)
	// No route registered: every call fails.

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/courses", nil))

	assertRedirect(t, w, redirectDashboard)
}

func TestCourseView(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/course/7", map[string]any{"course": api.CourseDetail{
		Course: api.Course{ID: 7, Title: "Go Basics"},
		Lessons: []api.CourseLesson{
			{ID: 1, Title: "Introduction", ContentType: "Video"},
			{ID: 2, Title: "Checkpoint", ContentType: "Quiz"},
		},
	}})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := withID(httptest.NewRequest(http.MethodGet, "/courses/7", nil), "id", "7")
	h.View(w, r)

	body := bodyOf(t, w)
	if !strings.Contains(body, "title=Go Basics") || !strings.Contains(body, "lessons=2") {
		t.Errorf("body = %q, want course detail with two lessons", body)
	}
}

func TestCourseViewBadID(t *testing.T) {
	backend := newFakeBackend(t)
	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := withID(httptest.NewRequest(http.MethodGet, "/courses/abc", nil), "id", "abc")
	h.View(w, r)

	assertRedirect(t, w, redirectCourses)
	if len(backend.requests()) != 0 {
		t.Errorf("backend called %v, want no calls for a bad id", backend.requests())
	}
}

func TestCourseNewFormLoadsPickers(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/category/all", map[string]any{"data": []api.Category{
		{CID: 1, Name: "Programming"}, {CID: 2, Name: "Art"},
	}})
	backend.respondJSON("/api/sub_category/all", []api.SubCategory{{ID: 1, Name: "Go"}})

	client := backend.client()
	h := NewCourseHandler(client, newTestRenderer(t), newTestPickers(client))
	w := httptest.NewRecorder()
	h.NewForm(w, httptest.NewRequest(http.MethodGet, "/courses/new", nil))

	body := bodyOf(t, w)
	if !strings.Contains(body, "edit=false") || !strings.Contains(body, "cats=2") {
		t.Errorf("body = %q, want an empty form with two categories", body)
	}
}

func TestCourseCreateEditorActionNeverCallsBackend(t *testing.T) {
	backend := newFakeBackend(t)
	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)

	w := httptest.NewRecorder()
	r := postMultipart(t, "/courses", url.Values{
		"course_title": {"Go Basics"},
		"lesson_count": {"0"},
		"action":       {"add_video"},
	})
	h.Create(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", w.Code)
	}
	body := bodyOf(t, w)
	if !strings.Contains(body, "[Video q=0]") {
		t.Errorf("body = %q, want one new video lesson", body)
	}
	if len(backend.requests()) != 0 {
		t.Errorf("backend called %v, want no calls for an editor action", backend.requests())
	}
}

func TestCourseCreateValidationFailureAbortsLocally(t *testing.T) {
	backend := newFakeBackend(t)
	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)

	w := httptest.NewRecorder()
	r := postMultipart(t, "/courses", url.Values{
		"course_title": {""},
		"lesson_count": {"0"},
		"action":       {"submit"},
	})
	h.Create(w, r)

	body := bodyOf(t, w)
	if strings.Contains(body, "errors=0") {
		t.Errorf("body = %q, want validation errors", body)
	}
	if len(backend.requests()) != 0 {
		t.Errorf("backend called %v, want no calls on validation failure", backend.requests())
	}
}

func TestCourseCreateSubmitsMultipart(t *testing.T) {
	backend := newFakeBackend(t)
	var doc map[string]any
	backend.handle("/api/course", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parsing multipart: %v", err)
		}
		if err := json.Unmarshal([]byte(r.FormValue("data")), &doc); err != nil {
			t.Errorf("decoding data field: %v", err)
		}
		w.Write([]byte("{}"))
	})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := postMultipart(t, "/courses", url.Values{
		"course_title":       {"Go Basics"},
		"parent_category":    {"Programming"},
		"course_description": {"Learn the language from scratch."},
		"course_price":       {"49"},
		"lesson_count":       {"1"},
		"lesson_kind_0":      {"Video"},
		"lesson_title_0":     {"Introduction"},
		"lesson_duration_0":  {"10:00"},
		"action":             {"submit"},
	}, multipartFile{field: "course_image", name: "cover.jpg", contentType: "image/jpeg", data: []byte("jpeg-bytes")})
	h.Create(w, r)

	assertRedirect(t, w, redirectCourses)
	if !backend.calledWith(http.MethodPost, "/api/course") {
		t.Fatalf("backend calls = %v, want POST /api/course", backend.requests())
	}
	if doc["course_title"] != "Go Basics" {
		t.Errorf("submitted title = %v, want Go Basics", doc["course_title"])
	}
	lessons, _ := doc["lessons"].([]any)
	if len(lessons) != 1 {
		t.Errorf("submitted lessons = %v, want one", doc["lessons"])
	}
}

func TestCourseEditFormHydratesLessons(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/course/9", map[string]any{"course": api.CourseDetail{
		Course: api.Course{ID: 9, Title: "Go Basics", ParentCategory: "Programming"},
		Lessons: []api.CourseLesson{
			{ID: 1, Title: "Introduction", ContentType: "Video", Duration: "10:00"},
			{ID: 2, Title: "Checkpoint", ContentType: "Quiz", Quiz: &api.CourseQuiz{
				ID: 4,
				Questions: []api.CourseQuestion{
					{ID: 11, Question: "What does go build do?"},
					{ID: 12, Question: "What is a goroutine?"},
				},
			}},
		},
	}})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := withID(httptest.NewRequest(http.MethodGet, "/courses/9/edit", nil), "id", "9")
	h.EditForm(w, r)

	body := bodyOf(t, w)
	if !strings.Contains(body, "edit=true") {
		t.Errorf("body = %q, want edit mode", body)
	}
	if !strings.Contains(body, "[Video q=0][Quiz q=2]") {
		t.Errorf("body = %q, want hydrated video and quiz lessons", body)
	}
}

func TestCourseUpdateSubmitsToBackend(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle("/api/course/5", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		w.Write([]byte("{}"))
	})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := postMultipart(t, "/courses/5", url.Values{
		"course_title":       {"Go Basics"},
		"parent_category":    {"Programming"},
		"course_description": {"Updated description."},
		"lesson_count":       {"0"},
		"action":             {"submit"},
	})
	h.Update(w, withID(r, "id", "5"))

	assertRedirect(t, w, redirectCourses)
	if !backend.calledWith(http.MethodPut, "/api/course/5") {
		t.Fatalf("backend calls = %v, want PUT /api/course/5", backend.requests())
	}
}

func TestCourseDeleteForm(t *testing.T) {
	backend := newFakeBackend(t)
	backend.respondJSON("/api/course/4", map[string]any{"course": api.CourseDetail{
		Course: api.Course{ID: 4, Title: "Go Basics"},
	}})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := withID(httptest.NewRequest(http.MethodGet, "/courses/4/delete", nil), "id", "4")
	h.DeleteForm(w, r)

	body := bodyOf(t, w)
	if !strings.Contains(body, "confirm_delete course") || !strings.Contains(body, "name=Go Basics") {
		t.Errorf("body = %q, want the course confirmation page", body)
	}
	if !strings.Contains(body, "action=/courses/4/delete") {
		t.Errorf("body = %q, want the delete action URL", body)
	}
}

func TestCourseDeleteDeclined(t *testing.T) {
	backend := newFakeBackend(t)
	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)

	w := httptest.NewRecorder()
	r := withID(postForm("/courses/4/delete", url.Values{}), "id", "4")
	h.Delete(w, r)

	assertRedirect(t, w, redirectCourses)
	if len(backend.requests()) != 0 {
		t.Errorf("backend called %v, want no calls without confirmation", backend.requests())
	}
}

func TestCourseDeleteConfirmed(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle("/api/course/4", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.Write([]byte("{}"))
	})

	h := NewCourseHandler(backend.client(), newTestRenderer(t), nil)
	w := httptest.NewRecorder()
	r := withID(postForm("/courses/4/delete", url.Values{"confirm": {"yes"}}), "id", "4")
	h.Delete(w, r)

	assertRedirect(t, w, redirectCourses)
	if !backend.calledWith(http.MethodDelete, "/api/course/4") {
		t.Fatalf("backend calls = %v, want DELETE /api/course/4", backend.requests())
	}
}
