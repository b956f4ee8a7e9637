// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api is the typed HTTP client for the LearnSphere platform backend.
// The console owns no data of its own: every screen reads and mutates through
// these calls, and client state is only ever refreshed by a full refetch.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/learnsphere/admin-console/internal/upload"
)

// TokenProvider supplies the bearer credential attached to authenticated
// requests. Injecting it keeps the session store out of this package and
// lets tests use fixed tokens.
type TokenProvider interface {
	Token(ctx context.Context) string
}

// StaticToken is a TokenProvider returning a fixed value. Empty means
// unauthenticated.
type StaticToken string

// Token implements TokenProvider.
func (t StaticToken) Token(context.Context) string { return string(t) }

// Client talks to the platform backend. All methods are single-shot: nothing
// is retried, and failures are terminal for that user action.
type Client struct {
	baseURL string
	http    *http.Client
	creds   TokenProvider
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, creds TokenProvider) *Client {
	if creds == nil {
		creds = StaticToken("")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		creds:   creds,
	}
}

// NewWithHTTPClient creates a Client using a caller-supplied http.Client,
// used by tests and by callers needing custom transports.
func NewWithHTTPClient(baseURL string, creds TokenProvider, hc *http.Client) *Client {
	c := New(baseURL, creds)
	if hc != nil {
		c.http = hc
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// MediaURL resolves a backend-relative media path (as stored in course and
// template records) to an absolute URL.
func (c *Client) MediaURL(path string) string {
	if path == "" {
		return ""
	}
	path = strings.ReplaceAll(path, "\\", "/")
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.creds.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and decodes a JSON response body into out (when
// out is non-nil). Non-2xx responses become *Error carrying the backend's
// message verbatim.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s %s body: %w", method, path, err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// sendMultipart submits fields plus binary parts as multipart/form-data,
// writing fields first and parts in the exact order given. FileRef payloads
// are handed over here and not retained.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields map[string]string, parts []upload.Part, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("writing field %s: %w", name, err)
		}
	}
	for _, p := range parts {
		fw, err := createFormFile(w, p.Field, p.File.Name, p.File.ContentType)
		if err != nil {
			return fmt.Errorf("creating part %s: %w", p.Field, err)
		}
		if _, err := fw.Write(p.File.Data); err != nil {
			return fmt.Errorf("writing part %s: %w", p.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

// createFormFile is multipart.Writer.CreateFormFile with the part's real
// content type instead of application/octet-stream.
func createFormFile(w *multipart.Writer, field, filename, contentType string) (io.Writer, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}
