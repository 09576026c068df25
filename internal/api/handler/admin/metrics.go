package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/metrics"
)

// MetricsReader computes pipeline metrics. Implemented by metrics.Repository.
type MetricsReader interface {
	Overview(ctx context.Context) (*metrics.Overview, error)
	Timeline(ctx context.Context, start, end time.Time, interval string) ([]metrics.TimelinePoint, error)
}

// MetricsHandler reports verification pipeline metrics to operators
type MetricsHandler struct {
	reader MetricsReader
	logger *slog.Logger
}

func NewMetricsHandler(reader MetricsReader, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{
		reader: reader,
		logger: logger,
	}
}

// GetVerificationMetrics handles GET /v1/admin/metrics/verifications
func (h *MetricsHandler) GetVerificationMetrics(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if v := c.Query("start_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.ErrValidationFailed.WithError(errors.New("invalid start_date, expected YYYY-MM-DD"))
		}
		start = parsed
	}
	if v := c.Query("end_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.ErrValidationFailed.WithError(errors.New("invalid end_date, expected YYYY-MM-DD"))
		}
		// Inclusive end date.
		end = parsed.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		return domain.ErrValidationFailed.WithError(errors.New("start_date must be before end_date"))
	}

	interval := c.Query("interval", "day")

	overview, err := h.reader.Overview(c.Context())
	if err != nil {
		h.logger.Error("failed to compute metrics overview", "error", err)
		return domain.ErrInternal.WithError(err)
	}

	timeline, err := h.reader.Timeline(c.Context(), start, end, interval)
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}
	if timeline == nil {
		timeline = []metrics.TimelinePoint{}
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"overview": overview,
			"timeline": timeline,
		},
		"meta": fiber.Map{
			"period": fiber.Map{
				"start": start.Format("2006-01-02"),
				"end":   end.Format("2006-01-02"),
			},
			"interval":     interval,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
