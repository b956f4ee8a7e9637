// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"time"
)

// Category is a top-level course category.
type Category struct {
	CID       int64     `json:"cid"`
	Name      string    `json:"category_name"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubCategory is a second-level course category.
type SubCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"sub_category"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a platform learner account.
type User struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// EnrollmentStatus reports whether a learner holds active course
// enrollments.
type EnrollmentStatus struct {
	Enrolled bool `json:"enrolled"`
	Courses  int  `json:"courses"`
}

// Course is the list-view course record.
type Course struct {
	ID             int64  `json:"id"`
	Title          string `json:"course_title"`
	ParentCategory string `json:"parent_category"`
	SubCategory    string `json:"sub_category"`
	Description    string `json:"course_description"`
	TimeSpend      string `json:"time_spend"`
	Requirements   string `json:"course_requirements"`
	Level          string `json:"course_level"`
	ValidityDays   string `json:"validity_days"`
	Price          string `json:"course_price"`
	Image          string `json:"course_image"`
	PreviewVideo   string `json:"preview_video"`
	Certificate    string `json:"certificate_template"`
}

// CourseDetail is the full course record returned by GET /api/course/:id,
// including the nested lesson tree used to hydrate the edit form.
type CourseDetail struct {
	Course
	Lessons []CourseLesson `json:"Lessions"`
}

// CourseLesson is one stored lesson. The backend spells the resource
// "Lession" throughout; the JSON tags keep its spelling.
type CourseLesson struct {
	ID          int64        `json:"id"`
	Title       string       `json:"lession_title"`
	ContentType string       `json:"content_type"`
	Order       int          `json:"lession_order"`
	Description string       `json:"description"`
	Duration    string       `json:"duration"`
	Image       string       `json:"lession_image"`
	Video       string       `json:"lession_video"`
	DocumentURL string       `json:"document_url"`
	Quiz        *CourseQuiz  `json:"Quiz"`
}

// CourseQuiz is a stored quiz with its questions.
type CourseQuiz struct {
	ID        int64            `json:"id"`
	Title     string           `json:"quiz_title"`
	Questions []CourseQuestion `json:"Questions"`
}

// CourseQuestion is one stored quiz question.
type CourseQuestion struct {
	ID            int64  `json:"id"`
	Question      string `json:"question"`
	Option1       string `json:"option_1"`
	Option2       string `json:"option_2"`
	Option3       string `json:"option_3"`
	Option4       string `json:"option_4"`
	CorrectAnswer string `json:"correct_answer"`
}

// Template is a marketplace template record. Files is kept opaque: the
// backend stores either a JSON array or a JSON-encoded string of file
// records, and the console only echoes entries back on edit.
type Template struct {
	ID          int64           `json:"id"`
	Name        string          `json:"template_name"`
	Description string          `json:"description"`
	Price       string          `json:"price"`
	CoverImage  string          `json:"cover_image"`
	Files       json.RawMessage `json:"files"`
}

// FileRecords normalizes the stored Files payload into individual opaque
// records, tolerating the double-encoded form.
func (t Template) FileRecords() []json.RawMessage {
	raw := t.Files
	if len(raw) == 0 {
		return nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		raw = json.RawMessage(asString)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil
	}
	return records
}

// Settings is the site settings record.
type Settings struct {
	ID              int64  `json:"id,omitempty"`
	SiteName        string `json:"site_name"`
	SiteDescription string `json:"site_description"`
	ContactMail     string `json:"contact_mail"`
	ContactNo       string `json:"contact_no"`
	LocationURL     string `json:"location_url"`
	SiteLogo        string `json:"site_logo,omitempty"`
}

// Profile is the admin account profile.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
