package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
	"github.com/gamehub-dev/gamehub-service/internal/repository"
	apperrors "github.com/gamehub-dev/gamehub-service/pkg/util/errorutil"
)

// UserService exposes user directory operations.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// FindUserByID fetches a user.
func (s *UserService) FindUserByID(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user row. Outstanding tokens for the account die
// with it: validation fails on the missing-identity check from then on.
func (s *UserService) DeleteAccount(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
