package admin

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/repository"
)

// APIKeysHandler manages the keys collaborator services authenticate with
type APIKeysHandler struct {
	repo   repository.APIKeyRepositoryInterface
	logger *slog.Logger
}

func NewAPIKeysHandler(repo repository.APIKeyRepositoryInterface, logger *slog.Logger) *APIKeysHandler {
	return &APIKeysHandler{
		repo:   repo,
		logger: logger,
	}
}

type CreateAPIKeyRequest struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
}

type APIKeyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	KeyPrefix   string  `json:"key_prefix"`
	Environment string  `json:"environment"`
	IsActive    bool    `json:"is_active"`
	LastUsedAt  *string `json:"last_used_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func toAPIKeyResponse(key domain.APIKey) APIKeyResponse {
	resp := APIKeyResponse{
		ID:          key.ID.String(),
		Name:        key.Name,
		KeyPrefix:   key.KeyPrefix,
		Environment: key.Environment,
		IsActive:    key.IsActive,
		CreatedAt:   key.CreatedAt.Format(time.RFC3339),
	}
	if key.LastUsedAt != nil {
		formatted := key.LastUsedAt.Format(time.RFC3339)
		resp.LastUsedAt = &formatted
	}
	return resp
}

// List GET /v1/admin/api-keys
func (h *APIKeysHandler) List(c *fiber.Ctx) error {
	keys, err := h.repo.List(c.Context())
	if err != nil {
		h.logger.Error("failed to list api keys", "error", err)
		return fiber.ErrInternalServerError
	}

	response := make([]APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		response = append(response, toAPIKeyResponse(key))
	}

	return c.JSON(fiber.Map{
		"keys": response,
	})
}

// Create POST /v1/admin/api-keys - generates a key and returns the plain
// value exactly once
func (h *APIKeysHandler) Create(c *fiber.Ctx) error {
	var req CreateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	if req.Name == "" {
		return domain.ErrValidationFailed.WithError(errors.New("name is required"))
	}

	plainKey, hash, prefix, err := domain.GenerateAPIKey(req.Environment)
	if err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	key := &domain.APIKey{
		Name:        req.Name,
		KeyHash:     hash,
		KeyPrefix:   prefix,
		Environment: req.Environment,
		IsActive:    true,
	}

	if err := h.repo.Create(c.Context(), key); err != nil {
		return err
	}

	h.logger.Info("api key created",
		"key_id", key.ID,
		"name", key.Name,
		"environment", key.Environment,
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key":       toAPIKeyResponse(*key),
		"plain_key": plainKey,
	})
}

// Revoke POST /v1/admin/api-keys/:id/revoke
func (h *APIKeysHandler) Revoke(c *fiber.Ctx) error {
	keyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid key id"))
	}

	if err := h.repo.Revoke(c.Context(), keyID); err != nil {
		return err
	}

	h.logger.Info("api key revoked", "key_id", keyID)

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /v1/admin/api-keys/:id
func (h *APIKeysHandler) Delete(c *fiber.Ctx) error {
	keyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("invalid key id"))
	}

	if err := h.repo.Delete(c.Context(), keyID); err != nil {
		return err
	}

	h.logger.Info("api key deleted", "key_id", keyID)

	return c.SendStatus(fiber.StatusNoContent)
}
