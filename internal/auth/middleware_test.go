package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/gamehub-dev/gamehub-service/internal/api/http"
	"github.com/gamehub-dev/gamehub-service/internal/auth"
	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

type stubDirectory struct {
	users map[int]*domain.User
	err   error
}

func (s *stubDirectory) GetByID(_ context.Context, id int) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func gateTestApp(dir *stubDirectory) (*fiber.App, *auth.TokenManager) {
	tm := auth.NewTokenManager("gate-test-secret", 15*time.Minute, 12*time.Hour, 30*24*time.Hour)
	mw := auth.NewMiddleware(auth.NewValidator(tm, dir))

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), nil, 0)

	app.Get("/user-op", mw.Handle, auth.RequireRole(domain.RoleUser), func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"subject": principal.User.ID})
	})
	app.Get("/admin-op", mw.Handle, auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app, tm
}

func TestGateEndToEnd(t *testing.T) {
	hash := "bcrypt-of-secret"
	dir := &stubDirectory{users: map[int]*domain.User{
		42: {ID: 42, Username: "alice", PasswordHash: &hash, Role: domain.RoleUser},
	}}
	app, tm := gateTestApp(dir)

	pair, err := tm.IssueTokens(42, auth.Fingerprint(hash), false)
	require.NoError(t, err)

	t.Run("valid token on USER operation proceeds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-op", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("same token on ADMIN operation is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin-op", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("no header is unauthenticated, not forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-op", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong prefix fails extraction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-op", nil)
		req.Header.Set("Authorization", "Token "+pair.AccessToken)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("tampered token is unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-op", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken+"x")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGatePasswordChangeRevokesToken(t *testing.T) {
	hash := "bcrypt-of-old"
	user := &domain.User{ID: 7, PasswordHash: &hash, Role: domain.RoleUser}
	dir := &stubDirectory{users: map[int]*domain.User{7: user}}
	app, tm := gateTestApp(dir)

	pair, err := tm.IssueTokens(7, auth.Fingerprint(hash), false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user-op", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	newHash := "bcrypt-of-new"
	user.PasswordHash = &newHash

	req = httptest.NewRequest(http.MethodGet, "/user-op", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateDirectoryOutageIsRetryable(t *testing.T) {
	dir := &stubDirectory{err: errors.New("connection refused")}
	app, tm := gateTestApp(dir)

	pair, err := tm.IssueTokens(1, "fp", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user-op", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
