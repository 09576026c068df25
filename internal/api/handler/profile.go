package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

// ProfileService interface for provider profile operations
type ProfileService interface {
	Sync(ctx context.Context, profile *domain.ProviderProfile) error
	Get(ctx context.Context, providerID uuid.UUID) (*domain.ProviderProfile, error)
	Update(ctx context.Context, providerID uuid.UUID, fields map[string]string) (*domain.ProfileUpdateResult, error)
}

// ProfileHandler handles provider profile sync and edits coming from the
// collaborator service
type ProfileHandler struct {
	service ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(service ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// SyncProfileRequest body for PUT /v1/providers/:provider_id/profile
type SyncProfileRequest struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

// UpdateProfileRequest body for PATCH /v1/providers/:provider_id/profile
type UpdateProfileRequest struct {
	Fields map[string]string `json:"fields"`
}

// Sync PUT /v1/providers/:provider_id/profile - create or replace a profile
func (h *ProfileHandler) Sync(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("provider_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid provider_id"))
	}

	var req SyncProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	profile := &domain.ProviderProfile{
		ProviderID: providerID,
		Name:       req.Name,
		Fields:     req.Fields,
	}
	if profile.Fields == nil {
		profile.Fields = map[string]string{}
	}

	if err := h.service.Sync(c.Context(), profile); err != nil {
		return err
	}

	return c.JSON(profile)
}

// Get GET /v1/providers/:provider_id/profile
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("provider_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid provider_id"))
	}

	profile, err := h.service.Get(c.Context(), providerID)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// Update PATCH /v1/providers/:provider_id/profile - partial profile edit.
// The response carries verification_revoked so the collaborator can tell the
// provider their public badge is gone and why.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	providerID, err := uuid.Parse(c.Params("provider_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid provider_id"))
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	result, err := h.service.Update(c.Context(), providerID, req.Fields)
	if err != nil {
		return err
	}

	if result.VerificationRevoked {
		h.logger.Info("profile edit revoked verification",
			"provider_id", providerID,
			"modified_fields", result.ModifiedSensitiveFields,
		)
	}

	return c.JSON(result)
}
