// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the console's periodic maintenance jobs: picker
// cache refresh and event-log pruning.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/learnsphere/admin-console/internal/cache"
	"github.com/learnsphere/admin-console/internal/store"
)

// Job schedules (standard five-field cron expressions).
const (
	SchedulePickerRefresh = "*/5 * * * *" // every five minutes
	ScheduleEventPrune    = "0 3 * * *"   // daily at 03:00
)

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	cron      *cron.Cron
	queries   *store.Queries
	pickers   *cache.Pickers
	retention time.Duration
	logger    *slog.Logger
}

// New creates a scheduler. pickers may be nil when no picker cache is
// configured; the refresh job is then skipped.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
	if db != nil {
		s.queries = store.New(db)
	}
	return s
}

// WithPickers attaches the picker cache whose Refresh job the scheduler runs.
func (s *Scheduler) WithPickers(p *cache.Pickers) *Scheduler {
	s.pickers = p
	return s
}

// WithEventRetention sets how long event log entries are kept. Zero disables
// the pruning job.
func (s *Scheduler) WithEventRetention(d time.Duration) *Scheduler {
	s.retention = d
	return s
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.pickers != nil {
		if _, err := s.cron.AddFunc(SchedulePickerRefresh, s.refreshPickers); err != nil {
			return err
		}
	}

	if s.queries != nil && s.retention > 0 {
		if _, err := s.cron.AddFunc(ScheduleEventPrune, s.pruneEvents); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// refreshPickers refetches the category and sub-category dropdown feeds.
func (s *Scheduler) refreshPickers() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s.pickers.Refresh(ctx)
	s.logger.Debug("picker cache refreshed", "category", "cache")
}

// pruneEvents deletes event log entries older than the retention window.
func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to prune event log", "category", "system", "error", err)
		return
	}

	if deleted > 0 {
		s.logger.Info("pruned event log",
			"category", "system",
			"deleted", deleted,
			"cutoff", cutoff.Format(time.RFC3339),
		)
	}
}
