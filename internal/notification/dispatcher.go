package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher fans an event out to every subscribed webhook. Dispatch is fire
// and forget: failures are logged and queued for retry by the Service, never
// surfaced to the caller. Revocations and decisions must not roll back
// because the collaborator endpoint is down.
type Dispatcher struct {
	service *Service
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(service *Service, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		service: service,
		logger:  logger,
		timeout: 15 * time.Second,
	}
}

// Dispatch delivers the event asynchronously to all subscribers of its type.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType string, data any) {
	event := EventPayload{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// Detach from the request context so an already-finished request
		// does not cancel delivery.
		sendCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		webhooks, err := d.service.GetWebhooksByEvent(sendCtx, eventType)
		if err != nil {
			d.logger.Error("failed to load webhooks for event",
				"event_type", eventType,
				"error", err,
			)
			return
		}

		for _, webhook := range webhooks {
			if err := d.service.Send(sendCtx, webhook, event); err != nil {
				d.logger.Warn("webhook delivery failed",
					"event_type", eventType,
					"webhook_id", webhook.ID,
					"error", err,
				)
			}
		}
	}()
}

// Wait blocks until in-flight dispatches finish. Intended for shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
