// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/learnsphere/admin-console/internal/listing"
)

// Pagination holds pagination data for templates.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int64
	PerPage     int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
	Pages       []PageLink
	BaseURL     string
	QueryString string
}

// PageLink represents a single page button in the pagination strip.
type PageLink struct {
	Number     int
	URL        string
	IsCurrent  bool
	IsEllipsis bool
}

// BuildPagination creates pagination data for templates.
// baseURL is the path without query string (e.g., "/courses").
// queryParams are the current query parameters to preserve (e.g., the search
// term); the page parameter itself is stripped and re-added per link.
func BuildPagination(currentPage, totalItems, perPage int, baseURL string, queryParams url.Values) Pagination {
	currentPage, totalPages := listing.NormalizePagination(currentPage, totalItems, perPage)

	p := Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  int64(totalItems),
		PerPage:     perPage,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PrevPage:    currentPage - 1,
		NextPage:    currentPage + 1,
		BaseURL:     baseURL,
	}

	// Build query string without page parameter
	if queryParams != nil {
		params := make(url.Values)
		for k, v := range queryParams {
			if k != "page" && len(v) > 0 && v[0] != "" {
				params[k] = v
			}
		}
		if len(params) > 0 {
			p.QueryString = params.Encode()
		}
	}

	for _, label := range listing.PageLabels(currentPage, totalPages) {
		if label.IsEllipsis {
			p.Pages = append(p.Pages, PageLink{IsEllipsis: true})
			continue
		}
		p.Pages = append(p.Pages, PageLink{
			Number:    label.Number,
			URL:       p.PageURL(label.Number),
			IsCurrent: label.IsCurrent,
		})
	}

	return p
}

// PageURL returns the URL for a specific page number.
func (p Pagination) PageURL(page int) string {
	if p.QueryString != "" {
		return fmt.Sprintf("%s?%s&page=%d", p.BaseURL, p.QueryString, page)
	}
	return fmt.Sprintf("%s?page=%d", p.BaseURL, page)
}

// PrevURL returns the URL for the previous page.
func (p Pagination) PrevURL() string {
	return p.PageURL(p.PrevPage)
}

// NextURL returns the URL for the next page.
func (p Pagination) NextURL() string {
	return p.PageURL(p.NextPage)
}

// ShouldShow returns true if pagination should be displayed (more than 1 page).
func (p Pagination) ShouldShow() bool {
	return p.TotalPages > 1
}

// PageRange returns a description of the current page range.
func (p Pagination) PageRange() string {
	if p.TotalItems == 0 {
		return "0-0"
	}
	start := (p.CurrentPage-1)*p.PerPage + 1
	end := p.CurrentPage * p.PerPage
	if end > int(p.TotalItems) {
		end = int(p.TotalItems)
	}
	return strings.TrimSpace(fmt.Sprintf("%d-%d", start, end))
}

// ParsePageParam parses the "page" query parameter from the request.
// Returns 1 if the parameter is missing, empty, or invalid.
func ParsePageParam(r *http.Request) int {
	return ParseIntParam(r, "page", 1, 1, 0)
}

// ParseSearchParam parses the "search" query parameter, trimmed of
// surrounding whitespace.
func ParseSearchParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}

// ParseIntParam parses an integer query parameter from the request.
// Returns defaultVal if the parameter is missing, empty, or invalid.
// If minVal > 0, values below minVal return defaultVal.
// If maxVal > 0, values above maxVal return defaultVal.
func ParseIntParam(r *http.Request, param string, defaultVal, minVal, maxVal int) int {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}
	if minVal > 0 && val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return defaultVal
	}
	return val
}

// ParseQueryInt64 parses a named query parameter as a positive int64.
// Returns 0 if the parameter is missing, empty, invalid, or not positive.
func ParseQueryInt64(r *http.Request, name string) int64 {
	str := r.URL.Query().Get(name)
	if str == "" {
		return 0
	}
	val, err := strconv.ParseInt(str, 10, 64)
	if err != nil || val <= 0 {
		return 0
	}
	return val
}
