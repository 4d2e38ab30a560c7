package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FavasCherukunnu/ecomm-api/internal/config"
	"github.com/FavasCherukunnu/ecomm-api/internal/media"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/cloudinary"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/mongodb"
	"github.com/FavasCherukunnu/ecomm-api/internal/service/auth"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
)

// disconnectTimeout bounds the database disconnect during shutdown.
const disconnectTimeout = 5 * time.Second

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	client *mongo.Client

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	productStore  store.ProductStore
	categoryStore store.CategoryStore

	// Service interfaces
	jwtService    auth.JWTService
	mediaPipeline *media.Pipeline
}

// newApplication creates a new application instance with all dependencies
// initialized. It establishes the MongoDB connection, ensures the indexes
// the stores rely on, and wires the Cloudinary-backed media pipeline.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Establish the database connection and ensure indexes
	app.client, err = mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db := app.client.Database(cfg.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ensure database indexes: %w", err)
	}
	logger.Info("Database connection established", "database", cfg.Database.Name)

	// Initialize stores
	app.userStore = mongodb.NewUserStore(db, logger)
	app.productStore = mongodb.NewProductStore(db, logger)
	app.categoryStore = mongodb.NewCategoryStore(db, logger)

	// Initialize the remote asset host and the image pipeline on top of it
	assetStore, err := cloudinary.NewStore(cfg.Media, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize asset store: %w", err)
	}
	app.mediaPipeline = media.NewPipeline(assetStore, cfg.Media.Folder, logger)
	logger.Info("Media pipeline initialized", "folder", cfg.Media.Folder)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := app.client.Disconnect(ctx); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
