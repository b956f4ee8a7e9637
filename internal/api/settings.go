// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/learnsphere/admin-console/internal/upload"
)

// ListSettings fetches the stored settings records. The backend keeps at
// most one; an empty slice means none has been created yet.
func (c *Client) ListSettings(ctx context.Context) ([]Settings, error) {
	var settings []Settings
	if err := c.getJSON(ctx, "/api/settings/all", &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetSettings fetches one settings record by id.
func (c *Client) GetSettings(ctx context.Context, id int64) (Settings, error) {
	var s Settings
	if err := c.getJSON(ctx, fmt.Sprintf("/api/settings/%d", id), &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// CreateSettings creates the initial settings record.
func (c *Client) CreateSettings(ctx context.Context, s Settings) (Settings, error) {
	var resp struct {
		Settings Settings `json:"settings"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/api/settings/create", s, &resp); err != nil {
		return Settings{}, err
	}
	return resp.Settings, nil
}

// UpdateSettings updates an existing settings record.
func (c *Client) UpdateSettings(ctx context.Context, id int64, s Settings) (Settings, error) {
	var resp struct {
		Settings Settings `json:"settings"`
	}
	if err := c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/settings/edit/%d", id), s, &resp); err != nil {
		return Settings{}, err
	}
	return resp.Settings, nil
}

// UploadSiteImages uploads site imagery (the logo) as multipart parts.
func (c *Client) UploadSiteImages(ctx context.Context, parts []upload.Part) error {
	return c.sendMultipart(ctx, http.MethodPost, "/api/settings/upload-images", nil, parts, nil)
}
