package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/yigit/jobly/internal/pkg/logger"
	"github.com/yigit/jobly/internal/server"
)

// @title Jobly API
// @version 1.0
// @description Job board API: companies, jobs, users and applications.

// @host localhost:3001
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

func main() {
	// A missing .env is fine; the environment and configs/config.yaml still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
