package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/fides/internal/admin"
	"github.com/saturnino-fabrica-de-software/fides/internal/domain"
)

const (
	// LocalAdminUser is the key to retrieve the reviewer user ID from context
	LocalAdminUser = "admin_user"
	// LocalAdminRole is the key to retrieve the reviewer role from context
	LocalAdminRole = "admin_role"
)

// reviewerRoles are the JWT roles allowed into the review queue.
var reviewerRoles = map[string]bool{
	"admin":       true,
	"super_admin": true,
}

// AdminAuthDependencies contains dependencies for reviewer authentication
type AdminAuthDependencies struct {
	JWTService *admin.JWTService
	Logger     *slog.Logger
}

// AdminAuth authenticates trust reviewers with a JWT from the Authorization
// header. Reviewers are internal staff, not collaborator services, so this
// path never consults the api_keys table.
func AdminAuth(deps AdminAuthDependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			deps.Logger.Debug("missing authorization header for admin endpoint")
			return domain.ErrUnauthorized
		}

		claims, err := deps.JWTService.ValidateToken(token)
		if err != nil {
			deps.Logger.Warn("invalid admin JWT", "error", err)
			return domain.ErrUnauthorized
		}

		if !reviewerRoles[claims.Role] {
			deps.Logger.Warn("insufficient privileges", "role", claims.Role)
			return domain.ErrForbidden
		}

		c.Locals(LocalAdminUser, claims.UserID)
		c.Locals(LocalAdminRole, claims.Role)

		deps.Logger.Debug("reviewer authenticated",
			"user_id", claims.UserID,
			"email", claims.Email,
			"role", claims.Role,
		)

		return c.Next()
	}
}

// GetAdminUserID retrieves the reviewer user ID from context
func GetAdminUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(LocalAdminUser).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// GetAdminRole retrieves the reviewer role from context
func GetAdminRole(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals(LocalAdminRole).(string)
	if !ok {
		return "", domain.ErrUnauthorized
	}
	return role, nil
}
