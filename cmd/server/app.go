package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dsetiawan/contact-api/internal/api"
	"github.com/dsetiawan/contact-api/internal/api/middleware"
	"github.com/dsetiawan/contact-api/internal/config"
	"github.com/dsetiawan/contact-api/internal/platform/postgres"
	"github.com/dsetiawan/contact-api/internal/service"
	"github.com/dsetiawan/contact-api/internal/service/auth"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	router http.Handler
}

// newApplication opens the database, runs migrations and constructs the
// store, service and handler graph. Every dependency is passed down
// explicitly so tests can build isolated instances of any layer.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := postgres.Open(context.Background(), cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Stores
	userStore := postgres.NewUserStore(db, logger)
	contactStore := postgres.NewContactStore(db, logger)
	addressStore := postgres.NewAddressStore(db, logger)

	// Services
	userService := service.NewUserService(
		userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		auth.NewUUIDTokenGenerator(),
		logger,
	)
	contactService := service.NewContactService(contactStore, logger)
	addressService := service.NewAddressService(contactStore, addressStore, logger)

	// Handlers and middleware
	userHandler := api.NewUserHandler(userService, logger)
	contactHandler := api.NewContactHandler(contactService, logger)
	addressHandler := api.NewAddressHandler(addressService, logger)
	authMiddleware := middleware.NewAuthMiddleware(userStore, logger)

	router := api.NewRouter(userHandler, contactHandler, addressHandler, authMiddleware)

	return &application{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
