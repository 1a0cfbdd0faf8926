package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
	apperrors "github.com/impulse-lab/lab-booking-service/pkg/util"
)

// RequireRole builds a guard that admits principals whose role is in the
// allow-list. An empty allow-list admits any authenticated principal; some
// routes require login but no particular role.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
