package service

import (
	"context"
	"fmt"
	"strings"

	"renthub/internal/domain"
	"renthub/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	users  domain.UserRepository
	logger *zerolog.Logger
}

func NewUserService(users domain.UserRepository, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

// Update applies a partial user edit; empty fields keep their current value.
func (s *UserService) Update(ctx context.Context, id int64, name, email string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAllUsers(ctx)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.DeleteUser(ctx, id)
}

func validateUser(user *models.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return fmt.Errorf("user name is required: %w", domain.ErrInvalidRequest)
	}
	if !strings.Contains(user.Email, "@") {
		return fmt.Errorf("user email %q is malformed: %w", user.Email, domain.ErrInvalidRequest)
	}
	return nil
}
