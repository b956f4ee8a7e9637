// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/learnsphere/admin-console/internal/upload"
)

// ListTemplates fetches every marketplace template.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var resp struct {
		Templates []Template `json:"templates"`
	}
	if err := c.getJSON(ctx, "/api/templates/all", &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

// GetTemplate fetches one template.
func (c *Client) GetTemplate(ctx context.Context, id int64) (Template, error) {
	var resp struct {
		Template Template `json:"template"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/api/templates/%d", id), &resp); err != nil {
		return Template{}, err
	}
	return resp.Template, nil
}

// CreateTemplate submits a new template: scalar fields plus file0 (cover)
// and file1..fileN parts in slot order.
func (c *Client) CreateTemplate(ctx context.Context, fields map[string]string, parts []upload.Part) error {
	return c.sendMultipart(ctx, http.MethodPost, "/api/templates/create", fields, parts, nil)
}

// UpdateTemplate submits template changes, echoing kept existing-file
// records so the backend can distinguish kept from removed.
func (c *Client) UpdateTemplate(ctx context.Context, id int64, fields map[string]string, parts []upload.Part) error {
	return c.sendMultipart(ctx, http.MethodPut, fmt.Sprintf("/api/templates/update/%d", id), fields, parts, nil)
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/templates/delete/%d", id))
}
