// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/learnsphere/admin-console/internal/courseform"
	"github.com/learnsphere/admin-console/internal/upload"
)

// ListCourses fetches every course.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var resp struct {
		Courses []Course `json:"courses"`
	}
	if err := c.getJSON(ctx, "/api/course/all", &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

// GetCourse fetches one course with its nested lesson tree.
func (c *Client) GetCourse(ctx context.Context, id int64) (CourseDetail, error) {
	var resp struct {
		Course CourseDetail `json:"course"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/course/%d", id), &resp); err != nil {
		return CourseDetail{}, err
	}
	return resp.Course, nil
}

// CreateCourse submits a new course document with its binary parts as one
// multipart request: a single "data" field holding the JSON document, then
// the file parts in serializer order.
func (c *Client) CreateCourse(ctx context.Context, doc courseform.CourseDocument, parts []upload.Part) error {
	return c.submitCourse(ctx, http.MethodPost, "/api/course", doc, parts)
}

// UpdateCourse submits an updated course document. Lessons carrying ids are
// updated in place by the backend; id-less lessons are created.
func (c *Client) UpdateCourse(ctx context.Context, id int64, doc courseform.CourseDocument, parts []upload.Part) error {
	return c.submitCourse(ctx, http.MethodPut, fmt.Sprintf("/api/course/%d", id), doc, parts)
}

func (c *Client) submitCourse(ctx context.Context, method, path string, doc courseform.CourseDocument, parts []upload.Part) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding course document: %w", err)
	}
	fields := map[string]string{courseform.PartData: string(data)}
	return c.sendMultipart(ctx, method, path, fields, parts, nil)
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/course/%d", id))
}
