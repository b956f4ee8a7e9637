// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/learnsphere/admin-console/internal/api"
	"github.com/learnsphere/admin-console/internal/cache"
	"github.com/learnsphere/admin-console/internal/courseform"
	"github.com/learnsphere/admin-console/internal/listing"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/uikit"
)

// CourseLevels are the difficulty options offered on the authoring form.
var CourseLevels = []string{"Beginner", "Intermediate", "Advanced"}

// CourseHandler handles the course management screens.
type CourseHandler struct {
	api      *api.Client
	renderer *render.Renderer
	pickers  *cache.Pickers
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(client *api.Client, renderer *render.Renderer, pickers *cache.Pickers) *CourseHandler {
	return &CourseHandler{api: client, renderer: renderer, pickers: pickers}
}

// CoursesListData holds data for the courses list template.
type CoursesListData struct {
	Courses    []api.Course
	Search     string
	TotalCount int
	Pagination uikit.Pagination
	MediaBase  string
}

// List handles GET /courses - paginated, searchable course list.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.api.ListCourses(r.Context())
	if err != nil {
		slog.Error("failed to list courses", "category", "course", "error", err)
		flashError(w, r, h.renderer, redirectDashboard, api.UserMessage(err))
		return
	}

	ctl := listing.NewController(courses, CoursesPerPage, func(c api.Course) []string {
		return []string{c.Title}
	})
	ctl.SetSearchTerm(uikit.ParseSearchParam(r))
	ctl.SetPage(uikit.ParsePageParam(r))

	data := CoursesListData{
		Courses:    ctl.PageItems(),
		Search:     ctl.SearchTerm(),
		TotalCount: ctl.FilteredCount(),
		Pagination: uikit.BuildPagination(ctl.CurrentPage(), ctl.FilteredCount(), CoursesPerPage, RouteCourses, r.URL.Query()),
		MediaBase:  h.api.BaseURL(),
	}

	if err := h.renderer.Render(w, r, "admin/courses_list", pageData(r, "Courses", "courses", data)); err != nil {
		logAndInternalError(w, "failed to render courses list", "error", err)
	}
}

// CourseViewData holds data for the course detail template.
type CourseViewData struct {
	Course    api.CourseDetail
	MediaBase string
}

// View handles GET /courses/{id} - read-only course detail with lessons.
func (h *CourseHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCourses, "Course not found")
		return
	}

	course, err := h.api.GetCourse(r.Context(), id)
	if err != nil {
		slog.Error("failed to get course", "category", "course", "error", err, "course_id", id)
		flashError(w, r, h.renderer, redirectCourses, api.UserMessage(err))
		return
	}

	data := CourseViewData{Course: course, MediaBase: h.api.BaseURL()}
	if err := h.renderer.Render(w, r, "admin/courses_view", pageData(r, course.Title, "courses", data)); err != nil {
		logAndInternalError(w, "failed to render course", "error", err)
	}
}

// CourseFormData holds data for the course authoring template.
type CourseFormData struct {
	Course        courseform.Course
	Lessons       []courseform.Lesson
	Errors        map[string]string
	IsEdit        bool
	CourseID      int64
	Categories    []api.Category
	SubCategories []api.SubCategory
	Levels        []string
	MediaBase     string
}

// NewForm handles GET /courses/new - displays the empty authoring form.
func (h *CourseHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, CourseFormData{
		Errors: make(map[string]string),
	})
}

// Create handles POST /courses. Editor actions (add/remove lesson, add/remove
// question) re-render the form with the updated state and never touch the
// backend; only the final submit serializes and uploads.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	course, lessons, ok := parseCourseForm(w, r, h.renderer, redirectCourses)
	if !ok {
		return
	}

	if action := r.FormValue("action"); action != "" && action != "submit" {
		lessons = applyEditorAction(lessons, action)
		h.renderForm(w, r, CourseFormData{Course: course, Lessons: lessons, Errors: make(map[string]string)})
		return
	}

	if errs := courseform.Validate(course, lessons); len(errs) > 0 {
		h.renderForm(w, r, CourseFormData{Course: course, Lessons: lessons, Errors: errs})
		return
	}

	doc, parts, err := courseform.ToWireFormat(course, lessons)
	if err != nil {
		slog.Error("failed to serialize course", "category", "course", "error", err)
		h.renderForm(w, r, CourseFormData{Course: course, Lessons: lessons,
			Errors: map[string]string{"form": api.GenericFailureMessage}})
		return
	}

	if err := h.api.CreateCourse(r.Context(), doc, parts); err != nil {
		slog.Error("failed to create course", "category", "course", "error", err)
		h.renderForm(w, r, CourseFormData{Course: course, Lessons: lessons,
			Errors: map[string]string{"form": api.UserMessage(err)}})
		return
	}

	slog.Info("course created", "category", "course", "title", course.Title)
	flashSuccess(w, r, h.renderer, redirectCourses, "Course created successfully")
}

// EditForm handles GET /courses/{id}/edit - hydrates the authoring form from
// the stored course, preserving lesson/quiz/question ids for the round-trip.
func (h *CourseHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCourses, "Course not found")
		return
	}

	detail, err := h.api.GetCourse(r.Context(), id)
	if err != nil {
		slog.Error("failed to get course", "category", "course", "error", err, "course_id", id)
		flashError(w, r, h.renderer, redirectCourses, api.UserMessage(err))
		return
	}

	course, lessons := hydrateCourse(detail)
	h.renderForm(w, r, CourseFormData{
		Course:   course,
		Lessons:  lessons,
		Errors:   make(map[string]string),
		IsEdit:   true,
		CourseID: id,
	})
}

// Update handles POST /courses/{id}. Same editor-action protocol as Create.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCourses, "Course not found")
		return
	}

	course, lessons, parsed := parseCourseForm(w, r, h.renderer, redirectCourses)
	if !parsed {
		return
	}

	formData := CourseFormData{Course: course, Lessons: lessons, Errors: make(map[string]string), IsEdit: true, CourseID: id}

	if action := r.FormValue("action"); action != "" && action != "submit" {
		formData.Lessons = applyEditorAction(lessons, action)
		h.renderForm(w, r, formData)
		return
	}

	if errs := courseform.Validate(course, lessons); len(errs) > 0 {
		formData.Errors = errs
		h.renderForm(w, r, formData)
		return
	}

	doc, parts, err := courseform.ToWireFormat(course, lessons)
	if err != nil {
		slog.Error("failed to serialize course", "category", "course", "error", err, "course_id", id)
		formData.Errors = map[string]string{"form": api.GenericFailureMessage}
		h.renderForm(w, r, formData)
		return
	}

	if err := h.api.UpdateCourse(r.Context(), id, doc, parts); err != nil {
		slog.Error("failed to update course", "category", "course", "error", err, "course_id", id)
		formData.Errors = map[string]string{"form": api.UserMessage(err)}
		h.renderForm(w, r, formData)
		return
	}

	slog.Info("course updated", "category", "course", "course_id", id)
	flashSuccess(w, r, h.renderer, redirectCourses, "Course updated successfully")
}

// DeleteConfirmData holds data for the shared delete-confirmation template.
type DeleteConfirmData struct {
	EntityType string
	Name       string
	ActionURL  string
	CancelURL  string
}

// DeleteForm handles GET /courses/{id}/delete - asks for confirmation.
func (h *CourseHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCourses, "Course not found")
		return
	}

	course, err := h.api.GetCourse(r.Context(), id)
	if err != nil {
		slog.Error("failed to get course", "category", "course", "error", err, "course_id", id)
		flashError(w, r, h.renderer, redirectCourses, api.UserMessage(err))
		return
	}

	data := DeleteConfirmData{
		EntityType: "course",
		Name:       course.Title,
		ActionURL:  fmt.Sprintf(redirectCoursesID, id) + RouteSuffixDelete,
		CancelURL:  redirectCourses,
	}
	if err := h.renderer.Render(w, r, "admin/confirm_delete", pageData(r, "Delete Course", "courses", data)); err != nil {
		logAndInternalError(w, "failed to render confirmation", "error", err)
	}
}

// Delete handles POST /courses/{id}/delete. Without the confirmation field
// the backend is never called.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		flashError(w, r, h.renderer, redirectCourses, "Course not found")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectCourses) {
		return
	}
	if !confirmed(r) {
		http.Redirect(w, r, redirectCourses, http.StatusSeeOther)
		return
	}

	if err := h.api.DeleteCourse(r.Context(), id); err != nil {
		slog.Error("failed to delete course", "category", "course", "error", err, "course_id", id)
		flashError(w, r, h.renderer, redirectCourses, api.UserMessage(err))
		return
	}

	slog.Info("course deleted", "category", "course", "course_id", id)
	flashSuccess(w, r, h.renderer, redirectCourses, "Course deleted successfully")
}

// renderForm renders the authoring form with the shared picker feeds filled
// in. Picker failures leave the dropdowns empty; the page still renders.
func (h *CourseHandler) renderForm(w http.ResponseWriter, r *http.Request, data CourseFormData) {
	data.Levels = CourseLevels
	data.MediaBase = h.api.BaseURL()
	if h.pickers != nil {
		data.Categories = h.pickers.Categories(r.Context())
		data.SubCategories = h.pickers.SubCategories(r.Context())
	}
	if data.Errors == nil {
		data.Errors = make(map[string]string)
	}

	title := "Add Course"
	if data.IsEdit {
		title = "Edit Course"
	}
	if err := h.renderer.Render(w, r, "admin/courses_form", pageData(r, title, "courses", data)); err != nil {
		logAndInternalError(w, "failed to render course form", "error", err)
	}
}

// hydrateCourse maps a stored course onto editor state. Lesson, quiz and
// question ids ride along so the backend can match records on update.
func hydrateCourse(detail api.CourseDetail) (courseform.Course, []courseform.Lesson) {
	course := courseform.Course{
		Title:          detail.Title,
		ParentCategory: detail.ParentCategory,
		SubCategory:    detail.SubCategory,
		Description:    detail.Description,
		TimeSpend:      detail.TimeSpend,
		Requirements:   detail.Requirements,
		Level:          detail.Level,
		ValidityDays:   detail.ValidityDays,
		Price:          detail.Price,
	}

	lessons := make([]courseform.Lesson, 0, len(detail.Lessons))
	for _, l := range detail.Lessons {
		lesson := courseform.Lesson{
			Kind:             courseform.LessonKind(l.ContentType),
			ID:               formatID(l.ID),
			Title:            l.Title,
			Description:      l.Description,
			Order:            formatOrder(l.Order),
			Duration:         l.Duration,
			ExistingImage:    l.Image,
			ExistingVideo:    l.Video,
			ExistingDocument: l.DocumentURL,
		}
		if l.Quiz != nil {
			lesson.QuizID = formatID(l.Quiz.ID)
			lesson.Questions = make([]courseform.Question, 0, len(l.Quiz.Questions))
			for _, q := range l.Quiz.Questions {
				lesson.Questions = append(lesson.Questions, courseform.Question{
					ID:            formatID(q.ID),
					Question:      q.Question,
					Options:       [courseform.OptionCount]string{q.Option1, q.Option2, q.Option3, q.Option4},
					CorrectAnswer: q.CorrectAnswer,
				})
			}
		}
		if lesson.Kind == courseform.KindQuiz && len(lesson.Questions) == 0 {
			lesson.Questions = []courseform.Question{{}}
		}
		lessons = append(lessons, lesson)
	}

	return course, lessons
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("%d", id)
}

func formatOrder(order int) string {
	if order == 0 {
		return ""
	}
	return fmt.Sprintf("%d", order)
}
