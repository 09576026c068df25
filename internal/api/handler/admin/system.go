package admin

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/fides/internal/admin"
)

// SystemHandler reports service health and runtime metrics to operators
type SystemHandler struct {
	service *admin.Service
	logger  *slog.Logger
}

func NewSystemHandler(service *admin.Service, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		service: service,
		logger:  logger,
	}
}

// GetSystemHealth handles GET /v1/admin/system/health
func (h *SystemHandler) GetSystemHealth(c *fiber.Ctx) error {
	health := h.service.GetSystemHealth(c.Context())

	statusCode := fiber.StatusOK
	if health.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(health)
}

// GetSystemMetrics handles GET /v1/admin/system/metrics
func (h *SystemHandler) GetSystemMetrics(c *fiber.Ctx) error {
	metrics := h.service.GetSystemMetrics(c.Context())

	return c.JSON(fiber.Map{
		"data": metrics,
	})
}
