package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/app/repositories"
	"github.com/yigit/jobly/internal/pkg/apperrors"
	"github.com/yigit/jobly/internal/pkg/auth"
	"github.com/yigit/jobly/internal/pkg/logger"
)

// ErrInvalidCredentials is returned for an unknown user and a wrong password alike
var ErrInvalidCredentials = apperrors.NewUnauthorizedError("Invalid username/password")

// UserService defines the interface for user-related operations
type UserService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, user models.NewUser) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, username string) (*models.UserDetail, error)
	Update(ctx context.Context, username string, update models.UserUpdate) (*models.User, error)
	Remove(ctx context.Context, username string) error
	ApplyToJob(ctx context.Context, username string, jobID int64) (*models.Application, error)
}

type userServiceImpl struct {
	users  UserStore
	jobs   JobStore
	hasher *auth.PasswordHasher
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore, jobs JobStore, hasher *auth.PasswordHasher) UserService {
	return &userServiceImpl{
		users:  users,
		jobs:   jobs,
		hasher: hasher,
	}
}

// Authenticate checks a username/password pair
func (s *userServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetWithPassword(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.hasher.SimulateCheck(password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.CheckPassword(user.Password, password) {
		logger.Debug().Str("username", username).Msg("Password mismatch")
		return nil, ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}

// Register hashes the password and creates the account. The username check
// runs first; the primary key still rejects a concurrent duplicate.
func (s *userServiceImpl) Register(ctx context.Context, newUser models.NewUser) (*models.User, error) {
	exists, err := s.users.Exists(ctx, newUser.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repositories.DuplicateUsername(newUser.Username)
	}

	hashed, err := s.hasher.HashPassword(newUser.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Create(ctx, &models.User{
		Username:  newUser.Username,
		Password:  hashed,
		FirstName: newUser.FirstName,
		LastName:  newUser.LastName,
		Email:     newUser.Email,
		IsAdmin:   newUser.IsAdmin,
	})
}

func (s *userServiceImpl) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *userServiceImpl) Get(ctx context.Context, username string) (*models.UserDetail, error) {
	return s.users.Get(ctx, username)
}

// Update rehashes a supplied password before storing it
func (s *userServiceImpl) Update(ctx context.Context, username string, update models.UserUpdate) (*models.User, error) {
	if update.Password != nil {
		hashed, err := s.hasher.HashPassword(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.Password = &hashed
	}
	return s.users.Update(ctx, username, update)
}

func (s *userServiceImpl) Remove(ctx context.Context, username string) error {
	return s.users.Remove(ctx, username)
}

// ApplyToJob records an application after confirming both the user and the job exist
func (s *userServiceImpl) ApplyToJob(ctx context.Context, username string, jobID int64) (*models.Application, error) {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("No user: %s", username))
	}

	if _, err := s.jobs.Get(ctx, jobID); err != nil {
		return nil, err
	}

	applied, err := s.users.ApplicationExists(ctx, username, jobID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, repositories.ErrAlreadyApplied
	}

	return s.users.CreateApplication(ctx, username, jobID)
}
