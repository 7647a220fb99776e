package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"retail-backoffice-api/internal/cache"
	"retail-backoffice-api/internal/config"
	"retail-backoffice-api/internal/handler"
	"retail-backoffice-api/internal/metrics"
	"retail-backoffice-api/internal/repository"
	"retail-backoffice-api/internal/router"
	"retail-backoffice-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting retail back-office API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize the persistent store based on config
	var store repository.Store
	var err error
	switch cfg.Store.Type {
	case "mysql":
		store, err = repository.NewMySQLStore(cfg.Store.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		log.Println("MySQL store initialized")
	case "postgres", "postgresql":
		store, err = repository.NewPostgresStore(cfg.Store.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		log.Println("PostgreSQL store initialized")
	default: // sqlite
		store, err = repository.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		log.Println("SQLite store initialized")
	}
	defer store.Close()

	// Initialize the cache; fall back to memory if Redis is unreachable
	var listCache cache.Cache
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, using memory cache: %v", err)
			listCache = cache.NewMemoryCache()
		} else {
			log.Println("Redis cache initialized")
			listCache = redisCache
		}
	} else {
		listCache = cache.NewMemoryCache()
	}
	defer listCache.Close()

	// Initialize services
	itemService := service.NewItemService(store)
	itemService.SetCache(listCache, cfg.Cache.TTL)

	inventoryService := service.NewInventoryService(store, store)
	inventoryService.SetCache(listCache, cfg.Cache.TTL)

	purchaseService := service.NewPurchaseService(store)
	purchaseService.SetCache(listCache, cfg.Cache.TTL)

	// Initialize handlers and metrics
	reg := metrics.NewRegistry()
	r := router.New(router.Config{
		Health:    handler.NewHealthHandler(store, cfg.App.Version),
		Items:     handler.NewItemHandler(itemService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Purchases: handler.NewPurchaseHandler(purchaseService),
		Metrics:   reg,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
