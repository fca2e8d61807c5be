package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gamehub-dev/gamehub-service/internal/auth"
	"github.com/gamehub-dev/gamehub-service/internal/config"
	"github.com/gamehub-dev/gamehub-service/internal/domain"
	"github.com/gamehub-dev/gamehub-service/internal/repository"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

// AuthService coordinates signup, login, refresh, and password-change flows.
// It verifies credentials itself; the token manager only mints tokens.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	validator  *auth.Validator
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	tokenMgr := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTTL(),
		cfg.Auth.RefreshTTL(),
		cfg.Auth.RememberMeTTL(),
	)
	return &AuthService{
		users:      users,
		tokenMgr:   tokenMgr,
		validator:  auth.NewValidator(tokenMgr, users),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new account and issues its first token pair.
func (s *AuthService) Signup(ctx context.Context, username, email, password string, rememberMe bool) (*domain.User, auth.TokenPair, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, auth.TokenPair{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.TokenPair{}, err
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, auth.TokenPair{}, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.TokenPair{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: &hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.tokenMgr.IssueTokens(user.ID, auth.Fingerprint(hash), rememberMe)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// Login authenticates a user by email and password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*domain.User, auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.TokenPair{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, auth.TokenPair{}, err
	}
	if user.PasswordHash == nil {
		// External-provider account with no local credential.
		return nil, auth.TokenPair{}, apperrors.NewUnauthenticated("invalid credentials")
	}
	if err := auth.ComparePassword(*user.PasswordHash, password); err != nil {
		return nil, auth.TokenPair{}, apperrors.NewUnauthenticated("invalid credentials")
	}

	pair, err := s.tokenMgr.IssueTokens(user.ID, auth.Fingerprint(*user.PasswordHash), rememberMe)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh validates a refresh token and issues a fresh pair, preserving the
// rememberMe policy the original pair was issued with. The new fingerprint
// snapshots the credential as it stands now.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	user, claims, err := s.validator.Resolve(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrLookupUnavailable) {
			return auth.TokenPair{}, apperrors.NewDependencyUnavailable("identity directory unavailable", err)
		}
		return auth.TokenPair{}, apperrors.NewUnauthenticated("invalid refresh token")
	}

	fingerprint := ""
	if user.PasswordHash != nil {
		fingerprint = auth.Fingerprint(*user.PasswordHash)
	}
	return s.tokenMgr.IssueTokens(user.ID, fingerprint, claims.RememberMe)
}

// ChangePassword verifies the current password before storing the new hash.
// The hash change invalidates every outstanding token for the user through
// the fingerprint check; no blocklist is kept.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil {
		return apperrors.NewValidationError("account has no password credential", nil)
	}
	if err := auth.ComparePassword(*user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthenticated("invalid credentials")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = &hash
	return s.users.Update(ctx, user)
}

// Validator exposes the token validator for middleware usage.
func (s *AuthService) Validator() *auth.Validator {
	return s.validator
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
