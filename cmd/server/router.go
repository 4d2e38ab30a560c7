package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/FavasCherukunnu/ecomm-api/internal/api"
	apiMiddleware "github.com/FavasCherukunnu/ecomm-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Catalog reads stay public; login issues the bearer token
// the write routes and /api/me require.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService)
	productHandler := api.NewProductHandler(app.productStore, app.categoryStore, app.mediaPipeline)
	categoryHandler := api.NewCategoryHandler(app.categoryStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", authHandler.Login)
		r.Get("/products", productHandler.List)
		r.Get("/product/{id}", productHandler.Get)
		r.Get("/categories", categoryHandler.List)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", authHandler.Me)
			r.Post("/product/add", productHandler.Create)
			r.Put("/product/{id}", productHandler.Update)
			r.Delete("/product/{id}", productHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"available"}`)); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
