package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehub-dev/gamehub-service/internal/config"
	"github.com/gamehub-dev/gamehub-service/internal/domain"
	"github.com/gamehub-dev/gamehub-service/internal/service"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

type memoryUserRepo struct {
	nextID int
	users  map[int]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: map[int]*domain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "service-test-secret",
			AccessTokenTTLMinutes: 15,
			RefreshTokenTTLHours:  12,
			RememberMeTTLDays:     30,
			BcryptCost:            4, // keep the tests fast
		},
	}
}

func TestSignupIssuesValidTokens(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	user, pair, err := svc.Signup(ctx, "alice", "alice@example.com", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	require.NotNil(t, user.PasswordHash)

	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		ok, err := svc.Validator().Validate(ctx, token)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "alice", "alice@example.com", "secret", false)
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "bob", "alice@example.com", "secret", false)
	assertDomainCode(t, err, "CONFLICT")

	_, _, err = svc.Signup(ctx, "alice", "other@example.com", "secret", false)
	assertDomainCode(t, err, "CONFLICT")
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "alice", "alice@example.com", "secret", false)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong", false)
	assertDomainCode(t, err, "UNAUTHENTICATED")

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret", false)
	assertDomainCode(t, err, "UNAUTHENTICATED")
}

func TestChangePasswordRevokesOutstandingTokens(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	user, pair, err := svc.Signup(ctx, "alice", "alice@example.com", "p1", false)
	require.NoError(t, err)

	ok, err := svc.Validator().Validate(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "p1", "p2"))

	// Signature and expiry are untouched; only the credential moved.
	ok, err = svc.Validator().Validate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	_, fresh, err := svc.Login(ctx, "alice@example.com", "p2", false)
	require.NoError(t, err)
	ok, err = svc.Validator().Validate(ctx, fresh.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRefreshPreservesRememberMe(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, pair, err := svc.Signup(ctx, "alice", "alice@example.com", "secret", true)
	require.NoError(t, err)
	require.True(t, pair.RememberMe)

	renewed, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, renewed.RememberMe)

	ok, err := svc.Validator().Validate(ctx, renewed.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := service.NewAuthService(testConfig(), repo)

	_, err := svc.Refresh(context.Background(), "garbage")
	assertDomainCode(t, err, "UNAUTHENTICATED")
}

func TestDeletedAccountInvalidatesTokens(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	users := service.NewUserService(repo)
	ctx := context.Background()

	user, pair, err := svc.Signup(ctx, "alice", "alice@example.com", "secret", false)
	require.NoError(t, err)

	require.NoError(t, users.DeleteAccount(ctx, user.ID))

	ok, err := svc.Validator().Validate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, code, domainErr.Code)
}
