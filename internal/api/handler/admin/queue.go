package admin

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/admin"
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// ReviewHandler exposes the admin review queue and its decision endpoints
type ReviewHandler struct {
	service *admin.Service
	logger  *slog.Logger
}

func NewReviewHandler(service *admin.Service, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// ListQueue GET /v1/admin/queue - pending requests, pre-verified first
func (h *ReviewHandler) ListQueue(c *fiber.Ctx) error {
	params := admin.QueueParams{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	response, err := h.service.ListQueue(c.Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetRequest GET /v1/admin/requests/:id - full request detail for review
func (h *ReviewHandler) GetRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid request id"))
	}

	request, err := h.service.GetRequest(c.Context(), requestID)
	if err != nil {
		return err
	}

	return c.JSON(request)
}

// Approve POST /v1/admin/requests/:id/approve
func (h *ReviewHandler) Approve(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid request id"))
	}

	var body admin.DecisionRequest
	// Approvals without notes send no body at all.
	_ = c.BodyParser(&body)

	request, err := h.service.Approve(c.Context(), requestID, body.Notes)
	if err != nil {
		return err
	}

	return c.JSON(request)
}

// Reject POST /v1/admin/requests/:id/reject - notes are mandatory
func (h *ReviewHandler) Reject(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid request id"))
	}

	var body admin.DecisionRequest
	if err := c.BodyParser(&body); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	request, err := h.service.Reject(c.Context(), requestID, body.Notes)
	if err != nil {
		return err
	}

	return c.JSON(request)
}

// Revoke POST /v1/admin/providers/:provider_id/revoke
func (h *ReviewHandler) Revoke(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("provider_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid provider_id"))
	}

	var body admin.RevokeRequest
	_ = c.BodyParser(&body)

	state, err := h.service.RevokeProvider(c.Context(), providerID, body.Reason)
	if err != nil {
		return err
	}

	return c.JSON(state)
}
