// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
)

// LoginResult carries the access token issued on successful authentication.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
}

// Login authenticates the admin account and returns the issued bearer
// token. The caller is responsible for storing it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.sendJSON(ctx, http.MethodPost, "/api/admin/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

// GetProfile fetches the admin profile. Bearer-token authenticated.
func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	var resp struct {
		Success bool    `json:"success"`
		Data    Profile `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/admin/profile", &resp); err != nil {
		return Profile{}, err
	}
	return resp.Data, nil
}

// ProfileUpdateResult reports a profile update. When the email changed the
// backend rotates the credential and returns a fresh access token, which
// must replace the stored one.
type ProfileUpdateResult struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
}

// UpdateProfile updates the admin profile. Bearer-token authenticated.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) (ProfileUpdateResult, error) {
	var result ProfileUpdateResult
	if err := c.sendJSON(ctx, http.MethodPut, "/api/admin/profile", p, &result); err != nil {
		return ProfileUpdateResult{}, err
	}
	return result, nil
}

// ChangePassword changes the admin password. Bearer-token authenticated.
func (c *Client) ChangePassword(ctx context.Context, current, newPassword string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     newPassword,
	}
	return c.sendJSON(ctx, http.MethodPut, "/api/admin/change-password", body, nil)
}
