// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
)

// ListCategories fetches all top-level categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Data []Category `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/category/all", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListSubCategories fetches all sub-categories. Unlike categories, this
// endpoint returns a bare array.
func (c *Client) ListSubCategories(ctx context.Context) ([]SubCategory, error) {
	var subs []SubCategory
	if err := c.getJSON(ctx, "/api/sub_category/all", &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteCategory removes a top-level category.
func (c *Client) DeleteCategory(ctx context.Context, cid int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/category/delete/%d", cid))
}

// DeleteSubCategory removes a sub-category.
func (c *Client) DeleteSubCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/sub_category/delete/%d", id))
}
