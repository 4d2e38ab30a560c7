// Package main implements the seed tool. The API has no registration and
// no category write endpoints; this tool is how the login user and the
// category set enter the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/FavasCherukunnu/ecomm-api/internal/config"
	"github.com/FavasCherukunnu/ecomm-api/internal/domain"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/logger"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/mongodb"
	"github.com/FavasCherukunnu/ecomm-api/internal/store"
)

// seedTimeout bounds the whole run, connection included.
const seedTimeout = 30 * time.Second

func main() {
	email := flag.String("email", "", "email for the login user")
	password := flag.String("password", "", "password for the login user")
	categories := flag.String("categories", "", "comma-separated category names to create")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*email, *password, *categories); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}

func run(email, password, categories string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error closing database connection", "error", err)
		}
	}()

	db := client.Database(cfg.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to ensure database indexes: %w", err)
	}

	if email != "" || password != "" {
		if email == "" || password == "" {
			return errors.New("both -email and -password are required to seed the user")
		}
		if err := seedUser(ctx, mongodb.NewUserStore(db, appLogger), email, password); err != nil {
			return err
		}
	}

	if categories != "" {
		if err := seedCategories(ctx, mongodb.NewCategoryStore(db, appLogger), categories); err != nil {
			return err
		}
	}

	return nil
}

// seedUser creates the login user. An existing user with the same email is
// left alone, so re-running the tool is safe.
func seedUser(ctx context.Context, users store.UserStore, email, password string) error {
	user := &domain.User{Email: email, Password: password}

	err := users.Create(ctx, user)
	if errors.Is(err, store.ErrEmailExists) {
		slog.Info("User already exists, skipping", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created", "user_id", user.ID.Hex(), "email", email)
	return nil
}

// seedCategories creates the named categories, skipping ones that already
// exist.
func seedCategories(ctx context.Context, categories store.CategoryStore, names string) error {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		category := &domain.Category{Name: name}
		err := categories.Create(ctx, category)
		if errors.Is(err, store.ErrCategoryExists) {
			slog.Info("Category already exists, skipping", "name", name)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create category %q: %w", name, err)
		}

		slog.Info("Category created", "category_id", category.ID.Hex(), "name", name)
	}

	return nil
}
