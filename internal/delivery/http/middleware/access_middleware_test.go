package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trolley/internal/domain/entity"
	"trolley/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenService validates tokens against a fixed table of claims.
type fakeTokenService struct {
	claims map[string]*service.Claims
}

func (f *fakeTokenService) GenerateTokens(uuid.UUID, string) (string, string, error) {
	return "", "", errors.New("not used")
}

func (f *fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims, ok := f.claims[tokenString]
	if !ok {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (f *fakeTokenService) HashToken(tokenString string) string {
	return "h:" + tokenString
}

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return time.Hour
}

func newGuardedServer(t *testing.T, required ...entity.Role) *echo.Echo {
	t.Helper()

	userID := uuid.New()
	tokenSvc := &fakeTokenService{claims: map[string]*service.Claims{
		"client-token":  {UserID: userID, Role: "client", Type: "access"},
		"admin-token":   {UserID: userID, Role: "admin", Type: "access"},
		"refresh-token": {UserID: userID, Type: "refresh"},
	}}

	m := NewAccessMiddleware(tokenSvc)

	e := echo.New()
	e.Use(m.Authenticate)
	e.GET("/protected", func(c echo.Context) error {
		identity := IdentityFromContext(c)
		require.NotNil(t, identity)

		return c.String(http.StatusOK, identity.Role)
	}, m.Guard(required...))

	return e
}

func doRequest(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected?tab=items", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestGuard_AnonymousGets401WithRedirect(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t)
	rec := doRequest(e, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/auth/login", body["redirect_to"])
	assert.Equal(t, "/protected?tab=items", body["return_to"])
}

func TestGuard_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t)
	rec := doRequest(e, "garbage")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_RefreshTokenDoesNotAuthenticate(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t)
	rec := doRequest(e, "refresh-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuard_AuthenticatedPassesEmptyRequirement(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t)
	rec := doRequest(e, "client-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "client", rec.Body.String())
}

func TestGuard_WrongRoleGets403WithRequirement(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t, entity.RoleAdmin)
	rec := doRequest(e, "client-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "client", body["role"])
	assert.Equal(t, []any{"admin"}, body["required"])
}

func TestGuard_MatchingRolePasses(t *testing.T) {
	t.Parallel()

	e := newGuardedServer(t, entity.RoleAdmin)
	rec := doRequest(e, "admin-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}
