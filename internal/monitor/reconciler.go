package monitor

import (
	"context"
	"time"

	"fundwatch/internal/config"
	"fundwatch/internal/models"

	"github.com/rs/zerolog"
)

// Notifier is the delivery capability the reconciler depends on. An
// error return means the event was not delivered and its state
// transition must not be committed.
type Notifier interface {
	Notify(ctx context.Context, event *models.NotificationEvent) error
}

// ReconcileStats summarizes one reconciliation pass.
type ReconcileStats struct {
	New           int
	Reminders     int
	Unchanged     int
	Failed        int
	HeartbeatSent bool
}

// Reconciler compares extracted entries against persisted state,
// classifies each as new, reminder-due or unchanged, and commits state
// transitions only after the matching notification is confirmed
// delivered. That ordering is the core guarantee: a delivery failure
// leaves state untouched, so the same event fires again on the next
// run (at-least-once, never lost).
type Reconciler struct {
	notifier Notifier
	cfg      *config.MonitorConfig
	logger   zerolog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(notifier Notifier, cfg *config.MonitorConfig, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		notifier: notifier,
		cfg:      cfg,
		logger:   logger.With().Str("component", "Reconciler").Logger(),
	}
}

// Reconcile processes entries in extractor output order, mutating
// state in place as deliveries succeed. One failing delivery never
// aborts the rest of the batch.
func (r *Reconciler) Reconcile(ctx context.Context, entries []models.Entry, state *models.MonitorState, now time.Time) ReconcileStats {
	stats := ReconcileStats{}
	today := startOfDay(now)

	for i := range entries {
		entry := &entries[i]

		if !state.Has(entry.ID) {
			r.reconcileNew(ctx, entry, state, &stats)
			continue
		}
		r.reconcileExisting(ctx, entry, state, today, &stats)
	}

	r.logger.Info().
		Int("entries", len(entries)).
		Int("new", stats.New).
		Int("reminders", stats.Reminders).
		Int("unchanged", stats.Unchanged).
		Int("failed", stats.Failed).
		Msg("Reconciliation finished")
	return stats
}

func (r *Reconciler) reconcileNew(ctx context.Context, entry *models.Entry, state *models.MonitorState, stats *ReconcileStats) {
	event := &models.NotificationEvent{Kind: models.EventNew, Entry: entry}
	if err := r.notifier.Notify(ctx, event); err != nil {
		r.logger.Warn().Err(err).Str("id", entry.ID).Msg("New-entry notification failed, will retry next run")
		stats.Failed++
		return
	}

	var endDate *string
	if s := entry.EndDateString(); s != "" {
		endDate = &s
	}
	state.Items[entry.ID] = models.StateEntry{EndDate: endDate}
	stats.New++
	r.logger.Info().Str("id", entry.ID).Str("title", entry.Title).Msg("New entry recorded")
}

func (r *Reconciler) reconcileExisting(ctx context.Context, entry *models.Entry, state *models.MonitorState, today time.Time, stats *ReconcileStats) {
	if !r.reminderDue(entry, state.Items[entry.ID], today) {
		stats.Unchanged++
		return
	}

	event := &models.NotificationEvent{Kind: models.EventReminder, Entry: entry}
	if err := r.notifier.Notify(ctx, event); err != nil {
		r.logger.Warn().Err(err).Str("id", entry.ID).Msg("Reminder notification failed, will retry next run")
		stats.Failed++
		return
	}

	sent := models.DayString(today)
	var endDate *string
	if s := entry.EndDateString(); s != "" {
		endDate = &s
	}
	state.Items[entry.ID] = models.StateEntry{EndDate: endDate, LastReminderSent: &sent}
	stats.Reminders++
	r.logger.Info().Str("id", entry.ID).Msg("Reminder recorded")
}

// reminderDue applies the reminder policy: only on the configured
// weekday, only while the entry's end date is known and still in the
// future, and at most once per entry per day.
func (r *Reconciler) reminderDue(entry *models.Entry, stored models.StateEntry, today time.Time) bool {
	if today.Weekday() != r.cfg.ReminderDay() {
		return false
	}
	if entry.EndDate == nil || !entry.EndDate.After(today) {
		return false
	}
	if stored.LastReminderSent != nil && *stored.LastReminderSent == models.DayString(today) {
		return false
	}
	return true
}

// Heartbeat emits the periodic liveness notification when one is due,
// independent of per-entry reconciliation. The timestamp is committed
// only after delivery.
func (r *Reconciler) Heartbeat(ctx context.Context, state *models.MonitorState, now time.Time) (bool, error) {
	interval := time.Duration(r.cfg.HeartbeatIntervalHours) * time.Hour
	if r.cfg.HeartbeatIntervalHours <= 0 {
		interval = time.Duration(config.DefaultHeartbeatIntervalHours) * time.Hour
	}

	if !state.HeartbeatDue(now, interval) {
		return false, nil
	}

	event := &models.NotificationEvent{
		Kind:      models.EventHeartbeat,
		OpenCount: state.OpenItemCount(startOfDay(now)),
	}
	if err := r.notifier.Notify(ctx, event); err != nil {
		r.logger.Warn().Err(err).Msg("Heartbeat delivery failed")
		return false, err
	}

	state.RecordHeartbeat(now)
	return true, nil
}

// startOfDay truncates a time to midnight UTC, the precision end
// dates are parsed at.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
