// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/learnsphere/admin-console/internal/api"
)

// Cache keys for picker collections.
const (
	KeyCategories    = "pickers:categories"
	KeySubCategories = "pickers:sub_categories"
)

// PickerSource is the subset of the backend client the picker cache reads
// from, satisfied by *api.Client.
type PickerSource interface {
	ListCategories(ctx context.Context) ([]api.Category, error)
	ListSubCategories(ctx context.Context) ([]api.SubCategory, error)
}

// Pickers caches the category and sub-category dropdown feeds used by the
// course authoring forms. The backend stays the source of truth: mutations
// invalidate and the next read refetches the full collection.
type Pickers struct {
	source        PickerSource
	categories    *TypedCache[[]api.Category]
	subCategories *TypedCache[[]api.SubCategory]
	logger        *slog.Logger
}

// NewPickers creates a picker cache over the given backend source.
func NewPickers(c Cacher, source PickerSource, ttl time.Duration, logger *slog.Logger) *Pickers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pickers{
		source:        source,
		categories:    NewTypedCache[[]api.Category](c, ttl),
		subCategories: NewTypedCache[[]api.SubCategory](c, ttl),
		logger:        logger,
	}
}

// Categories returns the cached category list, fetching from the backend on
// a miss. A fetch failure returns an empty list so callers can render an
// empty picker.
func (p *Pickers) Categories(ctx context.Context) []api.Category {
	value, err := p.categories.GetOrSet(ctx, KeyCategories, func() (*[]api.Category, error) {
		cats, err := p.source.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return &cats, nil
	})
	if err != nil {
		p.logger.Warn("category picker fetch failed", "category", "cache", "error", err)
		return nil
	}
	return *value
}

// SubCategories returns the cached sub-category list, fetching on a miss.
func (p *Pickers) SubCategories(ctx context.Context) []api.SubCategory {
	value, err := p.subCategories.GetOrSet(ctx, KeySubCategories, func() (*[]api.SubCategory, error) {
		subs, err := p.source.ListSubCategories(ctx)
		if err != nil {
			return nil, err
		}
		return &subs, nil
	})
	if err != nil {
		p.logger.Warn("sub-category picker fetch failed", "category", "cache", "error", err)
		return nil
	}
	return *value
}

// Invalidate drops both picker collections. Called after category or
// sub-category mutations.
func (p *Pickers) Invalidate(ctx context.Context) {
	if err := p.categories.Delete(ctx, KeyCategories); err != nil {
		p.logger.Warn("cache invalidation failed", "category", "cache", "key", KeyCategories, "error", err)
	}
	if err := p.subCategories.Delete(ctx, KeySubCategories); err != nil {
		p.logger.Warn("cache invalidation failed", "category", "cache", "key", KeySubCategories, "error", err)
	}
}

// Refresh eagerly refetches both collections, replacing cached values.
// Called by the scheduler.
func (p *Pickers) Refresh(ctx context.Context) {
	if cats, err := p.source.ListCategories(ctx); err != nil {
		p.logger.Warn("category cache refresh failed", "category", "cache", "error", err)
	} else if err := p.categories.Set(ctx, KeyCategories, &cats); err != nil {
		p.logger.Warn("category cache store failed", "category", "cache", "error", err)
	}

	if subs, err := p.source.ListSubCategories(ctx); err != nil {
		p.logger.Warn("sub-category cache refresh failed", "category", "cache", "error", err)
	} else if err := p.subCategories.Set(ctx, KeySubCategories, &subs); err != nil {
		p.logger.Warn("sub-category cache store failed", "category", "cache", "error", err)
	}
}
