// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/url"
)

// ListUsers fetches every learner account.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/api/user/all", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CheckEnrollment reports whether the learner holds active course
// enrollments. The users screen consults this before offering deletion.
func (c *Client) CheckEnrollment(ctx context.Context, uid string) (EnrollmentStatus, error) {
	var status EnrollmentStatus
	if err := c.getJSON(ctx, "/api/enrollment/course/check/"+url.PathEscape(uid), &status); err != nil {
		return EnrollmentStatus{}, err
	}
	return status, nil
}

// DeleteUser removes a learner account.
func (c *Client) DeleteUser(ctx context.Context, uid string) error {
	return c.delete(ctx, "/api/user/delete/"+url.PathEscape(uid))
}
