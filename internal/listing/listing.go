// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listing derives searchable, paginated views over in-memory
// collections. Every admin list screen goes through the same controller so
// search, clamping and page-label rules stay identical across screens.
package listing

import (
	"strings"

	"golang.org/x/text/cases"
)

// MaxPageButtons is the number of page buttons shown before switching to the
// ellipsis layout.
const MaxPageButtons = 5

var fold = cases.Fold()

// Filter returns the items where at least one of the designated text fields
// contains term as a case-insensitive substring. An empty term returns the
// items unchanged. The filter is stable: surviving items keep their original
// relative order.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	if term == "" {
		return items
	}
	needle := fold.String(term)
	var out []T
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(fold.String(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Page returns the slice of items for the given 1-based page. A page beyond
// the available range yields an empty slice rather than an error; callers are
// expected to clamp first, but the slice itself is defensive.
func Page[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// CalculateTotalPages calculates the number of pages for the given total
// items and items per page. Always at least 1.
func CalculateTotalPages(totalItems, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return totalPages
}

// ClampPage ensures the page number is within the valid range [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// NormalizePagination calculates total pages and clamps the current page to a
// valid range. Returns the normalized page number and total pages.
func NormalizePagination(page, totalItems, perPage int) (normalizedPage, totalPages int) {
	totalPages = CalculateTotalPages(totalItems, perPage)
	normalizedPage = ClampPage(page, totalPages)
	return normalizedPage, totalPages
}

// PageLabel is a single entry in the rendered page-number strip.
type PageLabel struct {
	Number     int
	IsCurrent  bool
	IsEllipsis bool
}

// PageLabels produces the ordered sequence of page buttons to render.
// With MaxPageButtons pages or fewer, every page number appears. Beyond that
// the strip always contains page 1 and page totalPages plus a window of
// currentPage-1..currentPage+1 clamped to [2, totalPages-1], with a single
// ellipsis wherever the window has a true gap from the fixed first/last
// pages.
func PageLabels(currentPage, totalPages int) []PageLabel {
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage = ClampPage(currentPage, totalPages)

	if totalPages <= MaxPageButtons {
		labels := make([]PageLabel, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			labels = append(labels, PageLabel{Number: i, IsCurrent: i == currentPage})
		}
		return labels
	}

	start := currentPage - 1
	if start < 2 {
		start = 2
	}
	end := currentPage + 1
	if end > totalPages-1 {
		end = totalPages - 1
	}

	labels := []PageLabel{{Number: 1, IsCurrent: currentPage == 1}}
	if start > 2 {
		labels = append(labels, PageLabel{IsEllipsis: true})
	}
	for i := start; i <= end; i++ {
		labels = append(labels, PageLabel{Number: i, IsCurrent: i == currentPage})
	}
	if end < totalPages-1 {
		labels = append(labels, PageLabel{IsEllipsis: true})
	}
	labels = append(labels, PageLabel{Number: totalPages, IsCurrent: currentPage == totalPages})
	return labels
}

// Controller owns one screen's collection together with its search term and
// page window, and derives the visible subset deterministically. It performs
// no I/O and is safe to rebuild on every request.
type Controller[T any] struct {
	items   []T
	fields  func(T) []string
	perPage int

	searchTerm  string
	currentPage int
}

// NewController creates a controller over items. fields designates the text
// fields the search predicate matches against.
func NewController[T any](items []T, perPage int, fields func(T) []string) *Controller[T] {
	if perPage <= 0 {
		perPage = 10
	}
	return &Controller[T]{
		items:       items,
		fields:      fields,
		perPage:     perPage,
		currentPage: 1,
	}
}

// SetSearchTerm updates the search term and resets the window to page 1.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.searchTerm = term
	c.currentPage = 1
}

// SetPage moves the window to page n, clamped to the valid range for the
// current filtered collection. Out-of-range requests never error.
func (c *Controller[T]) SetPage(n int) {
	c.currentPage = ClampPage(n, c.TotalPages())
}

// SearchTerm returns the active search term.
func (c *Controller[T]) SearchTerm() string { return c.searchTerm }

// CurrentPage returns the active 1-based page number.
func (c *Controller[T]) CurrentPage() int { return c.currentPage }

// PerPage returns the page size.
func (c *Controller[T]) PerPage() int { return c.perPage }

// Filtered returns the items matching the active search term.
func (c *Controller[T]) Filtered() []T {
	return Filter(c.items, c.searchTerm, c.fields)
}

// FilteredCount returns the number of items matching the active search term.
func (c *Controller[T]) FilteredCount() int { return len(c.Filtered()) }

// TotalPages returns the page count for the filtered collection.
func (c *Controller[T]) TotalPages() int {
	return CalculateTotalPages(c.FilteredCount(), c.perPage)
}

// PageItems returns the filtered items visible in the current window.
func (c *Controller[T]) PageItems() []T {
	return Page(c.Filtered(), c.currentPage, c.perPage)
}

// Labels returns the page-number strip for the current window.
func (c *Controller[T]) Labels() []PageLabel {
	return PageLabels(c.currentPage, c.TotalPages())
}
