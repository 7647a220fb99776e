package router

import (
	"retail-backoffice-api/internal/handler"
	"retail-backoffice-api/internal/metrics"
	"retail-backoffice-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Health    *handler.HealthHandler
	Items     *handler.ItemHandler
	Inventory *handler.InventoryHandler
	Purchases *handler.PurchaseHandler
	Metrics   *metrics.Registry
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		if cfg.Health != nil {
			r.Get("/health", cfg.Health.Health)
			r.Get("/ready", cfg.Health.Ready)
		}

		if cfg.Items != nil {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", cfg.Items.List)
				r.Post("/", cfg.Items.Create)
				r.Put("/{id}", cfg.Items.Update)
				r.Delete("/{id}", cfg.Items.Delete)
			})
		}

		if cfg.Inventory != nil {
			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", cfg.Inventory.List)
				r.Post("/", cfg.Inventory.Create)
				r.Put("/{id}", cfg.Inventory.Update)
				r.Delete("/{id}", cfg.Inventory.Delete)
			})
		}

		if cfg.Purchases != nil {
			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", cfg.Purchases.List)
				r.Post("/", cfg.Purchases.Complete)
				// The ledger is append-only; the legacy mutation routes
				// answer 405 instead of silently not existing.
				r.Put("/{id}", cfg.Purchases.Immutable)
				r.Delete("/{id}", cfg.Purchases.Immutable)
			})
		}
	})

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	return r
}
