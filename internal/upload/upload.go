// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package upload holds in-memory file payloads collected from browser form
// submissions until they are handed to the HTTP layer as multipart parts.
package upload

import (
	"fmt"
	"io"
	"net/http"

	"github.com/learnsphere/admin-console/internal/util"
)

// MaxFileSize is the largest single upload accepted from the browser (100 MB,
// videos included).
const MaxFileSize = 100 << 20

// FileRef is an in-memory binary payload plus its filename and MIME type.
// It is owned exclusively by the form that collected it; submission transfers
// ownership to the HTTP layer and the payload is never retained afterwards.
type FileRef struct {
	Name        string
	ContentType string
	Data        []byte
}

// Part is one named binary part of a multipart submission.
type Part struct {
	Field string
	File  FileRef
}

// FromRequest reads a single uploaded file from a parsed multipart request.
// A missing file is not an error: the first return value is nil.
func FromRequest(r *http.Request, field string) (*FileRef, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	defer file.Close()

	// Browsers normally send a bare filename, but the header value is
	// client-controlled and may carry directory components.
	name, err := util.SanitizeFilename(header.Filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}

	if header.Size > MaxFileSize {
		return nil, fmt.Errorf("%s exceeds the %d MB upload limit", header.Filename, MaxFileSize>>20)
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", field, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s exceeds the %d MB upload limit", header.Filename, MaxFileSize>>20)
	}

	return &FileRef{
		Name:        name,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
