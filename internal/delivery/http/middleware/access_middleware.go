package middleware

import (
	"net/http"
	"strings"

	"trolley/internal/domain/access"
	"trolley/internal/domain/entity"
	"trolley/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextKeyIdentity is the echo.Context key the resolved identity is stored under.
const ContextKeyIdentity = "identity"

// AccessMiddleware resolves the caller's identity from the bearer token and
// enforces per-route role requirements through the access gate.
type AccessMiddleware struct {
	tokenSvc service.TokenService
}

// NewAccessMiddleware is the constructor for AccessMiddleware.
func NewAccessMiddleware(tokenSvc service.TokenService) *AccessMiddleware {
	return &AccessMiddleware{tokenSvc: tokenSvc}
}

// Authenticate resolves the Authorization header into an identity on the context.
// A missing or invalid token is not an error here: the request proceeds
// anonymously and the route guard decides whether that is acceptable.
func (m *AccessMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			return next(c)
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil || claims.Type != "access" {
			return next(c)
		}

		c.Set(ContextKeyIdentity, &entity.Identity{
			UserID: claims.UserID,
			Role:   claims.Role,
		})

		return next(c)
	}
}

// Guard is a middleware factory enforcing the route's role requirement. An empty
// requirement admits any authenticated caller. It must be used AFTER Authenticate.
func (m *AccessMiddleware) Guard(required ...entity.Role) echo.MiddlewareFunc {
	requiredRoles := entity.Roles(required)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := c.Get(ContextKeyIdentity).(*entity.Identity)

			decision := access.Evaluate(access.Session{Identity: identity}, requiredRoles, c.Request().URL.RequestURI())
			switch decision.Outcome {
			case access.OutcomeGranted:
				return next(c)
			case access.OutcomeDeniedUnauthenticated:
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"error":       "authentication required",
					"redirect_to": decision.RedirectTo,
					"return_to":   decision.ReturnTo,
				})
			case access.OutcomeDeniedForbidden:
				return c.JSON(http.StatusForbidden, map[string]any{
					"error":    "insufficient role",
					"role":     decision.Role,
					"required": decision.Required.ToStrings(),
				})
			default:
				// Resolving cannot occur on the server: the session is never mid-load.
				return c.NoContent(http.StatusUnauthorized)
			}
		}
	}
}

// IdentityFromContext returns the identity resolved by Authenticate, or nil.
func IdentityFromContext(c echo.Context) *entity.Identity {
	identity, _ := c.Get(ContextKeyIdentity).(*entity.Identity)

	return identity
}
