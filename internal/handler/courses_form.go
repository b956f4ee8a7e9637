// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/learnsphere/admin-console/internal/courseform"
	"github.com/learnsphere/admin-console/internal/render"
	"github.com/learnsphere/admin-console/internal/upload"
)

// maxFormMemory is the in-memory threshold for multipart parsing; larger
// uploads spill to temporary files.
const maxFormMemory = 32 << 20

// parseCourseForm reconstructs the full editor state from a posted authoring
// form. The form re-posts everything on every editor action, so the state
// round-trips statelessly. File inputs are read fresh each submit; existing
// media references travel in hidden fields.
func parseCourseForm(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) (courseform.Course, []courseform.Lesson, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return courseform.Course{}, nil, false
	}

	course := courseform.Course{
		Title:          strings.TrimSpace(r.FormValue("course_title")),
		ParentCategory: r.FormValue("parent_category"),
		SubCategory:    r.FormValue("sub_category"),
		Description:    r.FormValue("course_description"),
		TimeSpend:      strings.TrimSpace(r.FormValue("time_spend")),
		Requirements:   r.FormValue("course_requirements"),
		Level:          r.FormValue("course_level"),
		ValidityDays:   strings.TrimSpace(r.FormValue("validity_days")),
		Price:          strings.TrimSpace(r.FormValue("course_price")),
	}

	var err error
	if course.Image, err = upload.FromRequest(r, "course_image"); err != nil {
		flashError(w, r, renderer, redirectURL, err.Error())
		return courseform.Course{}, nil, false
	}
	if course.PreviewVideo, err = upload.FromRequest(r, "preview_video"); err != nil {
		flashError(w, r, renderer, redirectURL, err.Error())
		return courseform.Course{}, nil, false
	}
	if course.CertificateTemplate, err = upload.FromRequest(r, "certificate_template"); err != nil {
		flashError(w, r, renderer, redirectURL, err.Error())
		return courseform.Course{}, nil, false
	}

	lessonCount, _ := strconv.Atoi(r.FormValue("lesson_count"))
	lessons := make([]courseform.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson, perr := parseLesson(r, i)
		if perr != nil {
			flashError(w, r, renderer, redirectURL, perr.Error())
			return courseform.Course{}, nil, false
		}
		lessons = append(lessons, lesson)
	}

	return course, lessons, true
}

func parseLesson(r *http.Request, i int) (courseform.Lesson, error) {
	field := func(name string) string {
		return r.FormValue(fmt.Sprintf("lesson_%s_%d", name, i))
	}

	lesson := courseform.Lesson{
		Kind:             courseform.LessonKind(field("kind")),
		ID:               field("id"),
		Title:            strings.TrimSpace(field("title")),
		Description:      field("description"),
		Order:            strings.TrimSpace(field("order")),
		Duration:         strings.TrimSpace(field("duration")),
		ExistingImage:    field("existing_image"),
		ExistingVideo:    field("existing_video"),
		ExistingDocument: field("existing_document"),
		QuizID:           field("quiz_id"),
	}

	var err error
	if lesson.Image, err = upload.FromRequest(r, fmt.Sprintf("lesson_image_%d", i)); err != nil {
		return lesson, err
	}
	if lesson.Video, err = upload.FromRequest(r, fmt.Sprintf("lesson_video_%d", i)); err != nil {
		return lesson, err
	}
	if lesson.Document, err = upload.FromRequest(r, fmt.Sprintf("lesson_document_%d", i)); err != nil {
		return lesson, err
	}

	if lesson.Kind == courseform.KindQuiz {
		questionCount, _ := strconv.Atoi(r.FormValue(fmt.Sprintf("question_count_%d", i)))
		if questionCount < 1 {
			questionCount = 1
		}
		lesson.Questions = make([]courseform.Question, 0, questionCount)
		for j := 0; j < questionCount; j++ {
			q := courseform.Question{
				ID:            r.FormValue(fmt.Sprintf("question_id_%d_%d", i, j)),
				Question:      strings.TrimSpace(r.FormValue(fmt.Sprintf("question_text_%d_%d", i, j))),
				CorrectAnswer: r.FormValue(fmt.Sprintf("correct_answer_%d_%d", i, j)),
			}
			for k := 0; k < courseform.OptionCount; k++ {
				q.Options[k] = r.FormValue(fmt.Sprintf("option_%d_%d_%d", i, j, k))
			}
			lesson.Questions = append(lesson.Questions, q)
		}
	}

	return lesson, nil
}

// applyEditorAction maps a form button press onto the corresponding editor
// operation. Unknown actions leave the state unchanged.
//
// Action grammar: add_video | add_quiz | remove_lesson:i |
// add_question:i | remove_question:i:j
func applyEditorAction(lessons []courseform.Lesson, action string) []courseform.Lesson {
	name, args, _ := strings.Cut(action, ":")
	switch name {
	case "add_video":
		return courseform.AddLesson(lessons, courseform.KindVideo)
	case "add_quiz":
		return courseform.AddLesson(lessons, courseform.KindQuiz)
	case "remove_lesson":
		if i, err := strconv.Atoi(args); err == nil {
			return courseform.RemoveLesson(lessons, i)
		}
	case "add_question":
		if i, err := strconv.Atoi(args); err == nil {
			return courseform.AddQuestion(lessons, i)
		}
	case "remove_question":
		li, qi, ok := strings.Cut(args, ":")
		if ok {
			i, ierr := strconv.Atoi(li)
			j, jerr := strconv.Atoi(qi)
			if ierr == nil && jerr == nil {
				return courseform.RemoveQuestion(lessons, i, j)
			}
		}
	}
	return lessons
}
