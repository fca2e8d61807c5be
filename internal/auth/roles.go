package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

// RequireRole gates an operation on the role carried by the validated token.
// A missing principal is an authentication failure; a principal whose role is
// not in the allowed set is an authorization failure. The two are never
// conflated.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("authentication required")
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

// RequireAuthenticated only checks that a principal was resolved.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated("authentication required")
		}
		return c.Next()
	}
}
