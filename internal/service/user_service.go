package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserProfile is the public view of a user.
type UserProfile struct {
	ID    uuid.UUID
	Email string
	// Role is the name of the user's role, empty when none is assigned.
	Role string
}

// UserService provides user-related operations
type UserService interface {
	// Authenticate checks an email and password pair. Unknown emails and
	// wrong passwords both yield auth.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetProfile returns the user together with the name of their role.
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)

	// CreateUser creates a new user with the specified email and password
	CreateUser(ctx context.Context, email, password string, roleID *uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	roleStore store.RoleStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	roleStore store.RoleStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		roleStore: roleStore,
		hasher:    hasher,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to retrieve user by email",
			"error", err)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password",
			"user_id", user.ID)
		return nil, auth.ErrInvalidCredentials
	}

	log.Debug("user authenticated",
		"user_id", user.ID)
	return user, nil
}

// GetProfile implements UserService.GetProfile
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		log.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	profile := &UserProfile{ID: user.ID, Email: user.Email}
	if user.RoleID == nil {
		return profile, nil
	}

	role, err := s.roleStore.GetByID(ctx, *user.RoleID)
	switch {
	case err == nil:
		profile.Role = role.Name
	case errors.Is(err, store.ErrRoleNotFound):
		log.Warn("user references a missing role",
			"user_id", userID,
			"role_id", *user.RoleID)
	default:
		return nil, fmt.Errorf("failed to retrieve role: %w", err)
	}

	return profile, nil
}

// CreateUser implements UserService.CreateUser
func (s *UserServiceImpl) CreateUser(
	ctx context.Context,
	email, password string,
	roleID *uuid.UUID,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := domain.NewUser(email, hash, roleID)
	if err != nil {
		log.Debug("invalid user data",
			"error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to create user with existing email")
		} else {
			log.Error("failed to save user to database",
				"error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created",
		"user_id", user.ID)
	return user, nil
}
