package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
	"github.com/saturnino-fabrica-de-software/fides/internal/repository"
)

const (
	// LocalAPIKeyID is the key to retrieve the authenticated key ID from context
	LocalAPIKeyID = "api_key_id"
	// LocalAPIKey is the key to retrieve the full API key from context
	LocalAPIKey = "api_key"
)

// AuthDependencies contains dependencies for API key authentication
type AuthDependencies struct {
	APIKeyRepo     repository.APIKeyRepositoryInterface
	LastUsedWorker *LastUsedWorker
	Logger         *slog.Logger
}

// Auth authenticates the collaborator service by API key. The plain key
// arrives as a Bearer token; only its SHA-256 hash is ever compared.
func Auth(deps AuthDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		plainKey := extractBearerToken(c)
		if plainKey == "" {
			return domain.ErrUnauthorized
		}

		// Reject malformed keys before touching the database.
		if !domain.IsValidKeyFormat(plainKey) {
			return domain.ErrUnauthorized
		}

		hash := domain.HashAPIKey(plainKey)

		key, err := deps.APIKeyRepo.GetByHash(c.Context(), hash)
		if err != nil {
			// Not found and DB errors both map to 401 so the response
			// never reveals whether a key exists.
			return domain.ErrUnauthorized
		}

		if !key.IsActive {
			return domain.ErrAPIKeyRevoked
		}

		c.Locals(LocalAPIKeyID, key.ID)
		c.Locals(LocalAPIKey, key)

		// last_used_at is advisory; updated async with debouncing.
		if deps.LastUsedWorker != nil {
			deps.LastUsedWorker.Enqueue(key.ID)
		}

		return c.Next()
	}
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if auth == "" {
		return ""
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetAPIKeyID retrieves the authenticated key ID from Fiber context
func GetAPIKeyID(c *fiber.Ctx) (uuid.UUID, error) {
	keyID, ok := c.Locals(LocalAPIKeyID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return keyID, nil
}

// GetAPIKey retrieves the full API key from Fiber context
func GetAPIKey(c *fiber.Ctx) (*domain.APIKey, error) {
	key, ok := c.Locals(LocalAPIKey).(*domain.APIKey)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return key, nil
}
