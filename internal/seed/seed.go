package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/jobly/internal/app/models"
	"github.com/yigit/jobly/internal/app/services"
	"github.com/yigit/jobly/internal/config"
	"github.com/yigit/jobly/internal/pkg/apperrors"
)

// CreateAdminUser creates the configured bootstrap admin when no user with
// that username exists yet. An empty admin username disables seeding.
func CreateAdminUser(ctx context.Context, users services.UserService, cfg *config.Config, lgr zerolog.Logger) error {
	username := cfg.Seed.AdminUsername
	if username == "" {
		lgr.Debug().Msg("No seed admin configured, skipping")
		return nil
	}

	_, err := users.Get(ctx, username)
	if err == nil {
		lgr.Info().Str("username", username).Msg("Seed admin already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}

	if cfg.Seed.AdminPassword == "" {
		return fmt.Errorf("seed admin %q has no password configured", username)
	}
	if cfg.Seed.AdminEmail == "" {
		return fmt.Errorf("seed admin %q has no email configured", username)
	}

	_, err = users.Register(ctx, models.NewUser{
		Username:  username,
		Password:  cfg.Seed.AdminPassword,
		FirstName: "Admin",
		LastName:  "User",
		Email:     cfg.Seed.AdminEmail,
		IsAdmin:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to create seed admin: %w", err)
	}

	lgr.Info().Str("username", username).Msg("Seed admin created")
	return nil
}
