// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// GenericFailureMessage is shown when the backend could not be reached or
// returned no usable message.
const GenericFailureMessage = "Something went wrong. Please try again."

// Error is a backend-reported failure. Message carries the response's
// message verbatim when the backend provided one.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// UserMessage maps an error to the text shown to the admin: the backend's
// own message verbatim when present, the generic fallback otherwise
// (transport failures, decode failures, messageless responses).
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericFailureMessage
}

// decodeError builds an *Error from a non-2xx response. The backend is
// inconsistent about its error key: some endpoints use "message", others
// "msg".
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = payload.Msg
		}
	}
	return apiErr
}
