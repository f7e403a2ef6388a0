package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/junaidrashid-git/kataplum-api/auth"
	"github.com/junaidrashid-git/kataplum-api/cache"
	"github.com/junaidrashid-git/kataplum-api/cart"
	"github.com/junaidrashid-git/kataplum-api/cartstore"
	"github.com/junaidrashid-git/kataplum-api/catalog"
	"github.com/junaidrashid-git/kataplum-api/config"
	"github.com/junaidrashid-git/kataplum-api/feed"
	"github.com/junaidrashid-git/kataplum-api/models"
	"github.com/junaidrashid-git/kataplum-api/routes"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Info("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	db := initDatabase(cfg)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Cart registry, optionally backed by a snapshot store
	snap, closeSnap := initCartBackend(ctx, cfg, db)
	defer closeSnap()
	carts := cart.NewRegistry(snap)

	feedCache := cache.New(db)
	services := &routes.Services{
		Config:  cfg,
		DB:      db,
		Catalog: catalog.NewClient(cfg.CatalogAPIURL, cfg.CatalogTimeout),
		Feed:    feed.New(cfg.FeedEndpoint, cfg.FeedCacheTTL, cfg.CatalogTimeout, feedCache),
		Carts:   carts,
		Cache:   feedCache,
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, services)

	// Expire guest sessions and their carts in the background
	go startSessionSweeper(ctx, db, carts, cfg.SessionSweepInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("🚀 Server running on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("❌ Graceful shutdown failed: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB (%s): %v", cfg.DBDriver, err)
	}
	return db
}

// initCartBackend picks where cart snapshots live. The returned func releases
// any connection it opened.
func initCartBackend(ctx context.Context, cfg config.Config, db *gorm.DB) (cart.Snapshotter, func()) {
	switch cfg.CartBackend {
	case config.CartBackendRedis:
		store := cartstore.NewRedisCartStore(cfg.RedisAddr, cfg.SessionTTL)
		if err := store.Initialize(ctx); err != nil {
			log.Fatalf("❌ Redis cart store unavailable: %v", err)
		}
		return store, func() { _ = store.Close() }
	case config.CartBackendDatabase:
		return cartstore.NewGormCartStore(db), func() {}
	default:
		log.Warn("⚠️ Carts are memory-only and will not survive a restart")
		return nil, func() {}
	}
}

// startSessionSweeper drops expired guest sessions on a fixed interval
func startSessionSweeper(ctx context.Context, db *gorm.DB, carts *cart.Registry, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Infof("⏳ Session sweep scheduled every %s", every)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		n, err := auth.SweepExpiredGuests(ctx, db, carts, time.Now())
		if err != nil {
			log.Errorf("❌ Failed to sweep guest sessions: %v", err)
			continue
		}
		if n > 0 {
			log.Infof("🗑️ Removed %d expired guest sessions", n)
		}
	}
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
