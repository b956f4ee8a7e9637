// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"strconv"
)

// ParseNullInt64 parses a string into sql.NullInt64.
// Returns an invalid NullInt64 if the string is empty, "0", or cannot be parsed.
func ParseNullInt64(s string) sql.NullInt64 {
	if s == "" || s == "0" {
		return sql.NullInt64{}
	}
	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sql.NullInt64{Int64: val, Valid: true}
	}
	return sql.NullInt64{}
}
