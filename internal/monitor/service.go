package monitor

import (
	"context"
	"net/url"
	"time"

	"fundwatch/internal/config"
	"fundwatch/internal/datastore"
	"fundwatch/internal/errorwrapper"
	"fundwatch/internal/extractor"
	"fundwatch/internal/fetcher"
	"fundwatch/internal/models"

	"github.com/rs/zerolog"
)

// Service runs one complete monitor pass: fetch the source, extract
// entries, reconcile them against persisted state, deliver
// notifications, commit state. Each invocation is a finite batch job;
// scheduling is external.
type Service struct {
	cfg        *config.GlobalConfig
	fetcher    *fetcher.Fetcher
	extractor  extractor.Extractor
	store      *datastore.StateStore
	reconciler *Reconciler
	notifier   Notifier
	logger     zerolog.Logger
	dryRun     bool
	now        func() time.Time
}

// ServiceOptions carries the optional knobs for NewService.
type ServiceOptions struct {
	// DryRun classifies and logs but skips state persistence. The
	// caller is expected to also pass a non-sending Notifier.
	DryRun bool

	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// NewService wires a Service from configuration.
func NewService(cfg *config.GlobalConfig, notifier Notifier, logger zerolog.Logger, opts ServiceOptions) (*Service, error) {
	ex, err := extractor.NewExtractor(&cfg.SourceConfig, logger)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		cfg:        cfg,
		fetcher:    fetcher.NewFetcher(&cfg.SourceConfig, logger),
		extractor:  ex,
		store:      datastore.NewStateStore(cfg.MonitorConfig.StateFile, logger),
		reconciler: NewReconciler(notifier, &cfg.MonitorConfig, logger),
		notifier:   notifier,
		logger:     logger.With().Str("component", "MonitorService").Logger(),
		dryRun:     opts.DryRun,
		now:        now,
	}, nil
}

// Run executes one monitor pass. A non-nil return means the run as a
// whole failed: total fetch failure or an upstream contract change.
// Per-entry delivery failures do not fail the run; the affected
// entries simply stay pending for the next invocation.
func (s *Service) Run(ctx context.Context) error {
	now := s.now()
	sourceURL := s.cfg.SourceConfig.URL

	state, err := s.store.Load()
	if err != nil {
		return errorwrapper.WrapError(err, "could not load monitor state")
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return errorwrapper.NewValidationError("source_config.url", sourceURL, "source URL does not parse")
	}

	result, err := s.fetcher.Fetch(ctx, fetcher.FetchInput{
		URL:     sourceURL,
		Method:  s.cfg.SourceConfig.Method,
		Headers: s.cfg.SourceConfig.Headers,
		Body:    s.cfg.SourceConfig.Body,
	})
	if err != nil {
		s.alert(ctx, "fetch failed for "+sourceURL+": "+err.Error())
		return errorwrapper.WrapError(err, "fetch failed for "+sourceURL)
	}

	entries, err := s.extractor.Extract(result.Body, base)
	if err != nil {
		// Structural drift is the failure mode worth shouting about:
		// zero entries must never pass as a quiet empty run.
		s.alert(ctx, err.Error())
		s.heartbeatAndSave(ctx, state, now)
		return errorwrapper.WrapError(err, "extraction failed for "+sourceURL)
	}

	stats := s.reconciler.Reconcile(ctx, entries, state, now)
	if stats.Failed > 0 {
		s.logger.Warn().Int("failed", stats.Failed).Msg("Some deliveries failed; their entries stay pending for the next run")
	}

	s.heartbeatAndSave(ctx, state, now)
	return nil
}

// heartbeatAndSave runs the liveness check and commits state. In
// dry-run mode nothing is persisted.
func (s *Service) heartbeatAndSave(ctx context.Context, state *models.MonitorState, now time.Time) {
	if sent, err := s.reconciler.Heartbeat(ctx, state, now); err == nil && sent {
		s.logger.Debug().Msg("Heartbeat sent")
	}

	if s.dryRun {
		s.logger.Info().Msg("Dry run: state not persisted")
		return
	}
	if err := s.store.Save(state); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist monitor state")
	}
}

// alert reports a fatal run condition through the notification
// channel, best effort. The error also propagates to the process exit
// path, so a failing alert delivery never hides the condition.
func (s *Service) alert(ctx context.Context, message string) {
	event := &models.NotificationEvent{Kind: models.EventAlert, AlertMessage: message}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("alert", message).Msg("Alert notification could not be delivered")
	}
}

// DryRunNotifier logs events instead of delivering them. Used with
// ServiceOptions.DryRun to preview a run without touching Telegram.
type DryRunNotifier struct {
	logger zerolog.Logger
}

// NewDryRunNotifier creates a DryRunNotifier.
func NewDryRunNotifier(logger zerolog.Logger) *DryRunNotifier {
	return &DryRunNotifier{logger: logger.With().Str("component", "DryRunNotifier").Logger()}
}

// Notify logs the event and reports success.
func (n *DryRunNotifier) Notify(_ context.Context, event *models.NotificationEvent) error {
	log := n.logger.Info().Str("kind", string(event.Kind))
	if event.Entry != nil {
		log = log.Str("id", event.Entry.ID).Str("title", event.Entry.Title)
	}
	log.Msg("Dry run: would notify")
	return nil
}
