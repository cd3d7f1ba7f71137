package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/plankhq/plank-api/internal/domain"
	"github.com/plankhq/plank-api/internal/platform/logger"
	"github.com/plankhq/plank-api/internal/service/auth"
	"github.com/plankhq/plank-api/internal/store"
)

// UserService handles registration and login, delegating credential
// mechanics to the auth package.
type UserService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	jwt    auth.JWTService
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	jwt auth.JWTService,
	log *slog.Logger,
) *UserService {
	if users == nil || hasher == nil || jwt == nil {
		panic("dependencies cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &UserService{
		users:  users,
		hasher: hasher,
		jwt:    jwt,
		logger: log.With(slog.String("component", "user_service")),
	}
}

// Register creates a user and issues an access token.
// Returns ErrEmailTaken when the email is already registered.
func (s *UserService) Register(
	ctx context.Context,
	email, name, password string,
) (*domain.User, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := domain.NewUser(email, name, hash)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user registered",
		slog.String("user_id", user.ID.String()))

	return user, token, nil
}

// Login verifies an email/password pair and issues an access token.
// Unknown emails and wrong passwords both surface as
// auth.ErrInvalidCredentials so accounts cannot be probed.
func (s *UserService) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}
