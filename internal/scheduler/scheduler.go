// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs on a background cron,
// independent of request handling.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/featreq-go/internal/store"
)

// Scheduler handles periodic maintenance: pruning expired sessions and
// keeping SQLite statistics fresh.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the maintenance jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Prune expired sessions every 30 minutes
	if _, err := s.cron.AddFunc("*/30 * * * *", func() {
		if err := s.PruneSessions(context.Background()); err != nil {
			s.logger.Error("failed to prune sessions", "error", err)
		}
	}); err != nil {
		return err
	}

	// Refresh query planner statistics hourly
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		if _, err := s.db.Exec("PRAGMA optimize"); err != nil {
			s.logger.Error("failed to optimize database", "error", err)
		}
	}); err != nil {
		return err
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

// PruneSessions deletes expired session rows.
func (s *Scheduler) PruneSessions(ctx context.Context) error {
	n, err := store.New(s.db).DeleteExpiredSessions(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("pruned expired sessions", "count", n)
	}
	return nil
}
