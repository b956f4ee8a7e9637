// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package courseform maintains the nested lesson editor backing the course
// authoring screens. Lessons form an ordered, heterogeneous list (video
// lessons and quizzes) that is mutated through small functional operations:
// every update returns a fresh slice and leaves untouched records shared with
// the previous one.
package courseform

import "github.com/learnsphere/admin-console/internal/upload"

// LessonKind tags the lesson variant.
type LessonKind string

// Lesson variants accepted by the editor.
const (
	KindVideo LessonKind = "Video"
	KindQuiz  LessonKind = "Quiz"
)

// OptionCount is the fixed number of answer options per quiz question.
const OptionCount = 4

// Question is one quiz question with its fixed-size option set. CorrectAnswer
// holds the literal text of one of the options; the backend contract stores
// the answer by value, not by index (see DESIGN.md).
type Question struct {
	ID            string
	Question      string
	Options       [OptionCount]string
	CorrectAnswer string
}

// Lesson is a tagged union over the Video and Quiz variants. The Kind field
// selects which group of fields is meaningful; the serializer matches on it
// exhaustively. IDs are assigned by the backend on create and preserved
// through edit round-trips.
type Lesson struct {
	Kind        LessonKind
	ID          string
	Title       string
	Description string
	// Order is kept as entered; blank means "derive from array position"
	// at serialization time.
	Order string

	// Video variant.
	Duration         string
	Image            *upload.FileRef
	Video            *upload.FileRef
	Document         *upload.FileRef
	ExistingImage    string
	ExistingVideo    string
	ExistingDocument string

	// Quiz variant.
	QuizID    string
	Questions []Question
}

// NewLesson returns the deterministic empty-state template for the requested
// variant. Quizzes start with a single blank question so the minimum-one
// constraint holds from the first render.
func NewLesson(kind LessonKind) Lesson {
	l := Lesson{Kind: kind}
	if kind == KindQuiz {
		l.Questions = []Question{{}}
	}
	return l
}

// AddLesson appends a new empty lesson of the requested variant.
func AddLesson(lessons []Lesson, kind LessonKind) []Lesson {
	out := make([]Lesson, len(lessons), len(lessons)+1)
	copy(out, lessons)
	return append(out, NewLesson(kind))
}

// RemoveLesson removes the lesson at index. Out-of-range indexes are a no-op.
func RemoveLesson(lessons []Lesson, index int) []Lesson {
	if index < 0 || index >= len(lessons) {
		return lessons
	}
	out := make([]Lesson, 0, len(lessons)-1)
	out = append(out, lessons[:index]...)
	return append(out, lessons[index+1:]...)
}

// UpdateLesson replaces the lesson at index with apply's result, returning a
// new slice with every other record unchanged. Out-of-range indexes are a
// no-op.
func UpdateLesson(lessons []Lesson, index int, apply func(Lesson) Lesson) []Lesson {
	if index < 0 || index >= len(lessons) {
		return lessons
	}
	out := make([]Lesson, len(lessons))
	copy(out, lessons)
	out[index] = apply(out[index])
	return out
}

// AddQuestion appends a blank question to the quiz lesson at lessonIndex.
// Non-quiz lessons and out-of-range indexes are a no-op.
func AddQuestion(lessons []Lesson, lessonIndex int) []Lesson {
	return UpdateLesson(lessons, lessonIndex, func(l Lesson) Lesson {
		if l.Kind != KindQuiz {
			return l
		}
		qs := make([]Question, len(l.Questions), len(l.Questions)+1)
		copy(qs, l.Questions)
		l.Questions = append(qs, Question{})
		return l
	})
}

// RemoveQuestion removes a question by position. Removing the last remaining
// question is refused: every quiz keeps at least one. The UI also disables
// the control at one question, so the refusal is never user-visible.
func RemoveQuestion(lessons []Lesson, lessonIndex, questionIndex int) []Lesson {
	return UpdateLesson(lessons, lessonIndex, func(l Lesson) Lesson {
		if l.Kind != KindQuiz || len(l.Questions) <= 1 {
			return l
		}
		if questionIndex < 0 || questionIndex >= len(l.Questions) {
			return l
		}
		qs := make([]Question, 0, len(l.Questions)-1)
		qs = append(qs, l.Questions[:questionIndex]...)
		l.Questions = append(qs, l.Questions[questionIndex+1:]...)
		return l
	})
}

// UpdateQuestion replaces one question on a quiz lesson, sharing all other
// questions with the previous slice. Out-of-range indexes are a no-op.
func UpdateQuestion(lessons []Lesson, lessonIndex, questionIndex int, apply func(Question) Question) []Lesson {
	return UpdateLesson(lessons, lessonIndex, func(l Lesson) Lesson {
		if l.Kind != KindQuiz || questionIndex < 0 || questionIndex >= len(l.Questions) {
			return l
		}
		qs := make([]Question, len(l.Questions))
		copy(qs, l.Questions)
		qs[questionIndex] = apply(qs[questionIndex])
		l.Questions = qs
		return l
	})
}

// SetQuestionOption writes one option slot by position. Indexes outside the
// fixed 4-slot array are a no-op rather than carrying over the unbounded
// write the editor could otherwise perform.
func SetQuestionOption(lessons []Lesson, lessonIndex, questionIndex, optionIndex int, value string) []Lesson {
	if optionIndex < 0 || optionIndex >= OptionCount {
		return lessons
	}
	return UpdateQuestion(lessons, lessonIndex, questionIndex, func(q Question) Question {
		q.Options[optionIndex] = value
		return q
	})
}
