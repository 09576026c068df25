package alert

import (
	"context"
	"log/slog"
	"time"

	"github.com/saturnino-fabrica-de-software/fides/internal/metrics"
)

// EventQueueBacklog is the webhook event emitted when the review queue
// breaches a threshold.
const EventQueueBacklog = "queue.backlog"

// OverviewGetter supplies the pipeline snapshot the watcher evaluates.
// Implemented by metrics.Repository.
type OverviewGetter interface {
	Overview(ctx context.Context) (*metrics.Overview, error)
}

// Notifier delivers the backlog event. Implemented by the webhook
// dispatcher.
type Notifier interface {
	Dispatch(ctx context.Context, eventType string, data any)
}

// Watcher periodically checks the review queue and raises a backlog alert
// when reviewers fall behind.
type Watcher struct {
	metrics  OverviewGetter
	notifier Notifier
	engine   *Engine
	logger   *slog.Logger
	interval time.Duration
}

func NewWatcher(metrics OverviewGetter, notifier Notifier, thresholds Thresholds, logger *slog.Logger, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = 5 * time.Minute
	}

	return &Watcher{
		metrics:  metrics,
		notifier: notifier,
		engine:   NewEngine(thresholds),
		logger:   logger,
		interval: interval,
	}
}

func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("queue backlog watcher started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("queue backlog watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	overview, err := w.metrics.Overview(ctx)
	if err != nil {
		w.logger.Error("backlog check failed", "error", err)
		return
	}

	breaches := w.engine.Evaluate(overview)
	if len(breaches) == 0 {
		return
	}

	for _, breach := range breaches {
		w.logger.Warn("review queue backlog",
			"check", breach.Check,
			"severity", breach.Severity,
			"message", breach.Message,
		)
	}

	now := time.Now()
	if !w.engine.ShouldTrigger(now) {
		return
	}
	w.engine.MarkTriggered(now)

	w.notifier.Dispatch(ctx, EventQueueBacklog, map[string]any{
		"breaches": breaches,
		"overview": overview,
	})
}
