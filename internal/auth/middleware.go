package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

const (
	principalKey = "auth_principal"
	bearerPrefix = "Bearer "
)

// Principal represents the authenticated caller. Role comes from the token
// claims, not the identity row, so authority is whatever was granted at
// issuance time.
type Principal struct {
	User       *domain.User
	Role       domain.Role
	RememberMe bool
}

// Middleware validates bearer tokens and loads principals.
type Middleware struct {
	validator *Validator
}

// NewMiddleware constructs the authorization gate.
func NewMiddleware(validator *Validator) *Middleware {
	return &Middleware{validator: validator}
}

// Handle enforces authentication for protected routes. It fails closed:
// anything short of a fully validated token rejects the request before the
// downstream handler runs.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthenticated("missing bearer token")
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}
	tokenStr := authHeader[len(bearerPrefix):]

	user, claims, err := m.validator.Resolve(c.UserContext(), tokenStr)
	if err != nil {
		if errors.Is(err, ErrLookupUnavailable) {
			return apperrors.NewDependencyUnavailable("identity directory unavailable", err)
		}
		// Expired, stale, unknown subject, and decode failures are all the
		// same answer to the caller.
		return apperrors.NewUnauthenticated("invalid token")
	}

	c.Locals(principalKey, &Principal{User: user, Role: claims.Role, RememberMe: claims.RememberMe})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
