package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/smartcare/socket/src/hub"
	"github.com/smartcare/socket/src/service"
	"github.com/smartcare/socket/src/store"
	"github.com/smartcare/socket/src/types"
)

// Janitor runs scheduled hygiene: sweeping dead connections from the hub
// and purging old canceled appointments from the store.
type Janitor struct {
	cron     *cron.Cron
	hub      *hub.Hub
	store    *store.Store
	notifier *service.Notifier
	logger   zerolog.Logger

	purgeAfter time.Duration
}

// New creates a janitor. purgeAfterDays controls how long canceled
// appointments are retained.
func New(h *hub.Hub, st *store.Store, n *service.Notifier, purgeAfterDays int, logger zerolog.Logger) *Janitor {
	return &Janitor{
		cron:       cron.New(),
		hub:        h,
		store:      st,
		notifier:   n,
		logger:     logger.With().Str("component", "janitor").Logger(),
		purgeAfter: time.Duration(purgeAfterDays) * 24 * time.Hour,
	}
}

// Start registers the sweep and purge jobs and starts the scheduler.
// Schedules use cron spec syntax, including @every and @daily shorthands.
func (j *Janitor) Start(sweepSchedule, purgeSchedule string) error {
	if _, err := j.cron.AddFunc(sweepSchedule, j.SweepConnections); err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}
	if _, err := j.cron.AddFunc(purgeSchedule, j.PurgeCanceled); err != nil {
		return fmt.Errorf("register purge job: %w", err)
	}
	j.cron.Start()
	j.logger.Info().
		Str("sweep", sweepSchedule).
		Str("purge", purgeSchedule).
		Msg("janitor started")
	return nil
}

// Stop halts the scheduler, waiting for running jobs to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

// SweepConnections evicts connections whose transport is gone.
func (j *Janitor) SweepConnections() {
	if evicted := j.hub.Sweep(); evicted > 0 {
		j.logger.Debug().Int("evicted", evicted).Msg("connection sweep done")
	}
}

// PurgeCanceled removes canceled appointments past the retention window
// and tells the dashboards when it does.
func (j *Janitor) PurgeCanceled() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-j.purgeAfter)
	purged, err := j.store.PurgeCanceled(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Msg("purge canceled appointments failed")
		return
	}
	if purged > 0 {
		j.notifier.NotifySystem(
			fmt.Sprintf("Removed %d canceled appointment(s) older than %s", purged, cutoff.Format("2006-01-02")),
			types.LevelInfo,
		)
	}
}
