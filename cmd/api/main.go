package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/emreacar/schoolhub/internal/pkg/logger"
	"github.com/emreacar/schoolhub/internal/server"
)

// @title SchoolHub API
// @version 1.0
// @description Multi-tenant school administration API: enrollment, attendance, gradebook and tenant-scoped access control.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@schoolhub.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real deployments set environment variables directly
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
