// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package courseform

import (
	"fmt"
	"strconv"

	"github.com/learnsphere/admin-console/internal/upload"
)

// Course holds the scalar course fields entered on the authoring form,
// together with the course-level file uploads.
type Course struct {
	Title          string
	ParentCategory string
	SubCategory    string
	Description    string
	TimeSpend      string
	Requirements   string
	Level          string
	ValidityDays   string
	Price          string

	Image               *upload.FileRef
	PreviewVideo        *upload.FileRef
	CertificateTemplate *upload.FileRef
}

// Multipart part names expected by the course endpoints. The lesson parts
// repeat once per lesson carrying a file, in lesson traversal order; the
// backend zips them back to lessons positionally.
const (
	PartData                = "data"
	PartCourseImage         = "course_image"
	PartPreviewVideo        = "preview_video"
	PartCertificateTemplate = "certificate_template"
	PartLessonImages        = "lesson_images"
	PartLessonVideos        = "lesson_videos"
	PartLessonDocuments     = "lesson_documents"
)

// CourseDocument is the JSON document sent in the multipart "data" field.
type CourseDocument struct {
	Title          string           `json:"course_title"`
	ParentCategory string           `json:"parent_category"`
	SubCategory    string           `json:"sub_category"`
	Description    string           `json:"course_description"`
	TimeSpend      string           `json:"time_spend"`
	Requirements   string           `json:"course_requirements"`
	Level          string           `json:"course_level"`
	ValidityDays   string           `json:"validity_days"`
	Price          string           `json:"course_price"`
	Lessons        []LessonDocument `json:"lessons"`
}

// LessonDocument is one lesson in the wire document.
type LessonDocument struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"lession_title"`
	ContentType string        `json:"content_type"`
	Order       int           `json:"lession_order"`
	Description string        `json:"description"`
	Duration    string        `json:"duration,omitempty"`
	Quiz        *QuizDocument `json:"quiz,omitempty"`
}

// QuizDocument is the quiz payload nested under a quiz lesson.
type QuizDocument struct {
	ID        string             `json:"id,omitempty"`
	Title     string             `json:"quiz_title"`
	Questions []QuestionDocument `json:"questions"`
}

// QuestionDocument is one quiz question in the wire document.
type QuestionDocument struct {
	ID            string `json:"id,omitempty"`
	Question      string `json:"question"`
	Option1       string `json:"option_1"`
	Option2       string `json:"option_2"`
	Option3       string `json:"option_3"`
	Option4       string `json:"option_4"`
	CorrectAnswer string `json:"correct_answer"`
}

// ToWireFormat flattens the form state into the backend's nested JSON shape
// plus the ordered multipart file parts. Blank lesson orders default from
// array position (index+1).
func ToWireFormat(course Course, lessons []Lesson) (CourseDocument, []upload.Part, error) {
	doc := CourseDocument{
		Title:          course.Title,
		ParentCategory: course.ParentCategory,
		SubCategory:    course.SubCategory,
		Description:    course.Description,
		TimeSpend:      course.TimeSpend,
		Requirements:   course.Requirements,
		Level:          course.Level,
		ValidityDays:   course.ValidityDays,
		Price:          course.Price,
		Lessons:        make([]LessonDocument, 0, len(lessons)),
	}

	var parts []upload.Part
	if course.Image != nil {
		parts = append(parts, upload.Part{Field: PartCourseImage, File: *course.Image})
	}
	if course.PreviewVideo != nil {
		parts = append(parts, upload.Part{Field: PartPreviewVideo, File: *course.PreviewVideo})
	}
	if course.CertificateTemplate != nil {
		parts = append(parts, upload.Part{Field: PartCertificateTemplate, File: *course.CertificateTemplate})
	}

	for i, lesson := range lessons {
		ld := LessonDocument{
			ID:          lesson.ID,
			Title:       lesson.Title,
			ContentType: string(lesson.Kind),
			Order:       lessonOrder(lesson, i),
			Description: lesson.Description,
		}

		switch lesson.Kind {
		case KindVideo:
			ld.Duration = lesson.Duration
			if lesson.Image != nil {
				parts = append(parts, upload.Part{Field: PartLessonImages, File: *lesson.Image})
			}
			if lesson.Video != nil {
				parts = append(parts, upload.Part{Field: PartLessonVideos, File: *lesson.Video})
			}
			if lesson.Document != nil {
				parts = append(parts, upload.Part{Field: PartLessonDocuments, File: *lesson.Document})
			}

		case KindQuiz:
			quiz := &QuizDocument{
				ID:        lesson.QuizID,
				Title:     lesson.Title,
				Questions: make([]QuestionDocument, 0, len(lesson.Questions)),
			}
			for _, q := range lesson.Questions {
				quiz.Questions = append(quiz.Questions, QuestionDocument{
					ID:            q.ID,
					Question:      q.Question,
					Option1:       q.Options[0],
					Option2:       q.Options[1],
					Option3:       q.Options[2],
					Option4:       q.Options[3],
					CorrectAnswer: q.CorrectAnswer,
				})
			}
			ld.Quiz = quiz

		default:
			return CourseDocument{}, nil, fmt.Errorf("lesson %d: unknown kind %q", i, lesson.Kind)
		}

		doc.Lessons = append(doc.Lessons, ld)
	}

	return doc, parts, nil
}

// lessonOrder resolves a lesson's order, defaulting blank or unparsable
// values to the 1-based array position.
func lessonOrder(lesson Lesson, index int) int {
	if lesson.Order == "" {
		return index + 1
	}
	n, err := strconv.Atoi(lesson.Order)
	if err != nil || n == 0 {
		return index + 1
	}
	return n
}

// Validate checks the form state before submission. It returns a map of
// field names to messages; an empty map means the submission may proceed.
// Validation failures abort locally with no network call.
func Validate(course Course, lessons []Lesson) map[string]string {
	errs := make(map[string]string)

	if course.Title == "" {
		errs["course_title"] = "Course title is required"
	}
	if course.ParentCategory == "" {
		errs["parent_category"] = "Category is required"
	}
	if course.Description == "" {
		errs["course_description"] = "Course description is required"
	}
	if course.Price != "" {
		if _, err := strconv.ParseFloat(course.Price, 64); err != nil {
			errs["course_price"] = "Price must be a number"
		}
	}
	if course.ValidityDays != "" {
		if _, err := strconv.Atoi(course.ValidityDays); err != nil {
			errs["validity_days"] = "Validity days must be a whole number"
		}
	}

	for i, lesson := range lessons {
		key := fmt.Sprintf("lesson_%d", i)
		if lesson.Title == "" {
			errs[key+"_title"] = fmt.Sprintf("Lesson %d title is required", i+1)
		}
		if lesson.Order != "" {
			if _, err := strconv.Atoi(lesson.Order); err != nil {
				errs[key+"_order"] = fmt.Sprintf("Lesson %d order must be a whole number", i+1)
			}
		}
		if lesson.Kind != KindQuiz {
			continue
		}
		for j, q := range lesson.Questions {
			qKey := fmt.Sprintf("%s_question_%d", key, j)
			if q.Question == "" {
				errs[qKey] = fmt.Sprintf("Lesson %d question %d is empty", i+1, j+1)
				continue
			}
			if q.CorrectAnswer == "" {
				errs[qKey+"_answer"] = fmt.Sprintf("Lesson %d question %d has no correct answer", i+1, j+1)
				continue
			}
			if !answerMatchesOption(q) {
				errs[qKey+"_answer"] = fmt.Sprintf("Lesson %d question %d: correct answer must match one of the options", i+1, j+1)
			}
		}
	}

	return errs
}

func answerMatchesOption(q Question) bool {
	for _, opt := range q.Options {
		if opt != "" && opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}
