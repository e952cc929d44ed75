package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shoploft/storefront-backend/api/controllers"
	"github.com/shoploft/storefront-backend/api/routes"
	"github.com/shoploft/storefront-backend/internal/adminproducts"
	"github.com/shoploft/storefront-backend/internal/auth"
	"github.com/shoploft/storefront-backend/internal/cart"
	"github.com/shoploft/storefront-backend/internal/catalog"
	"github.com/shoploft/storefront-backend/internal/fakestore"
	"github.com/shoploft/storefront-backend/internal/users"
	"github.com/shoploft/storefront-backend/pkg/auth/session"
	"github.com/shoploft/storefront-backend/pkg/config"
	"github.com/shoploft/storefront-backend/pkg/db"
	"github.com/shoploft/storefront-backend/pkg/logger"
	"github.com/shoploft/storefront-backend/pkg/metrics"
	"github.com/shoploft/storefront-backend/pkg/migrate"
	"github.com/shoploft/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)

	feedClient, err := fakestore.New(cfg.Catalog, catalogMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create feed client", err)
		os.Exit(1)
	}

	adminRepo := adminproducts.NewRepository(dbClient.DB())
	adminService, err := adminproducts.NewService(adminRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin product service", err)
		os.Exit(1)
	}
	adminSource, err := adminproducts.NewSource(adminRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin catalog source", err)
		os.Exit(1)
	}

	views := catalog.NewViews(cfg.Cart.SessionTTL)
	catalogService, err := catalog.NewService(feedClient, adminSource, views, cfg.Catalog.FeaturedLimit, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartManager := cart.NewManager(cfg.Cart, logg)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cartManager.StartJanitor(runCtx)
	views.StartJanitor(runCtx, cfg.Cart.SweepInterval)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		HTTPMetrics: httpMetrics,
		HealthChecks: map[string]controllers.Pinger{
			"db":    dbClient,
			"redis": redisClient,
			"feed":  feedClient,
		},
		SessionChecker: sessionManager,
		AuthService:    authService,
		CatalogService: catalogService,
		CartManager:    cartManager,
		AdminProducts:  adminService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
