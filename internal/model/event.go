// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds console-side view records and event log vocabulary.
package model

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth     = "auth"
	EventCategoryCourse   = "course"
	EventCategoryTemplate = "template"
	EventCategoryUser     = "user"
	EventCategoryConfig   = "config"
	EventCategorySystem   = "system"
	EventCategoryCache    = "cache"
)
