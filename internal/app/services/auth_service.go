package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService interface {
	// Login returns a token for valid credentials
	Login(ctx context.Context, username, password string) (string, error)
	// Register creates a non-admin account and returns its token
	Register(ctx context.Context, user models.NewUser) (string, error)
	// TokenFor signs a token for an existing user
	TokenFor(user *models.User) (string, error)
}

type authServiceImpl struct {
	users  UserService
	jwt    *auth.JWTService
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserService, jwt *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:  users,
		jwt:    jwt,
		logger: logger,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Warn().Str("username", username).Msg("Login failed")
		return "", err
	}
	return s.TokenFor(user)
}

func (s *authServiceImpl) Register(ctx context.Context, newUser models.NewUser) (string, error) {
	newUser.IsAdmin = false
	user, err := s.users.Register(ctx, newUser)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("username", user.Username).Msg("User registered")
	return s.TokenFor(user)
}

func (s *authServiceImpl) TokenFor(user *models.User) (string, error) {
	return s.jwt.GenerateToken(user.Username, user.IsAdmin)
}
