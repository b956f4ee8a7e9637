// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// request protection, and security headers.
package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyUsername    ContextKey = "username"
	ContextKeyRequestPath ContextKey = "request_path"
)

// Session keys. The access token is the backend bearer credential and never
// leaves the server session.
const (
	SessionKeyAccessToken = "access_token"
	SessionKeyUsername    = "username"
	SessionKeyEmail       = "email"
)

// Auth creates middleware that requires a signed-in administrator.
// It checks for a backend access token in the session and redirects to the
// login page if absent.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sm.GetString(r.Context(), SessionKeyAccessToken)
			if token == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUsername,
				sm.GetString(r.Context(), SessionKeyUsername))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsername retrieves the signed-in administrator's username from the
// request context. Returns "" when unauthenticated.
func GetUsername(r *http.Request) string {
	username, ok := r.Context().Value(ContextKeyUsername).(string)
	if !ok {
		return ""
	}
	return username
}

// RequestPath creates middleware that stores the request path in the context.
// The logging handler includes it in error records.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// SessionTokenProvider surfaces the session-held access token to the backend
// API client. It satisfies api.TokenProvider.
type SessionTokenProvider struct {
	sm *scs.SessionManager
}

// NewSessionTokenProvider creates a token provider over the session manager.
func NewSessionTokenProvider(sm *scs.SessionManager) *SessionTokenProvider {
	return &SessionTokenProvider{sm: sm}
}

// Token returns the backend access token for the session in ctx, or "" when
// the request is unauthenticated.
func (p *SessionTokenProvider) Token(ctx context.Context) string {
	return p.sm.GetString(ctx, SessionKeyAccessToken)
}
