package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// Pinger reports database connectivity for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return domain.ErrInternal.WithError(err)
		}
	}

	return c.JSON(HealthResponse{
		Status: "ready",
	})
}
