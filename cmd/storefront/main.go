package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/streamstick/internal/admin"
	"github.com/nikolayk812/streamstick/internal/backend"
	"github.com/nikolayk812/streamstick/internal/catalog"
	"github.com/nikolayk812/streamstick/internal/checkout"
	"github.com/nikolayk812/streamstick/internal/config"
	"github.com/nikolayk812/streamstick/internal/logging"
	"github.com/nikolayk812/streamstick/internal/migrations"
	"github.com/nikolayk812/streamstick/internal/repository"
	"github.com/nikolayk812/streamstick/internal/session"
	"github.com/nikolayk812/streamstick/internal/visitor"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	h "github.com/nikolayk812/streamstick/internal/http"
)

func main() {
	configPath := flag.String("config", getEnv("CONFIG_PATH", "storefront.yaml"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	unit, err := cfg.Currency()
	if err != nil {
		return fmt.Errorf("cfg.Currency: %w", err)
	}

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}
	logger.Info("migrations applied")

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	orders, err := repository.NewOrders(pool)
	if err != nil {
		return fmt.Errorf("repository.NewOrders: %w", err)
	}
	visitors, err := repository.NewVisitors(pool)
	if err != nil {
		return fmt.Errorf("repository.NewVisitors: %w", err)
	}
	settings, err := repository.NewSettings(pool)
	if err != nil {
		return fmt.Errorf("repository.NewSettings: %w", err)
	}

	registry, registryCloser, err := newRegistry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newRegistry: %w", err)
	}
	defer registryCloser.Close()

	products, err := catalog.Default(cfg.Backend.URL, unit)
	if err != nil {
		return fmt.Errorf("catalog.Default: %w", err)
	}

	functions := backend.NewFunctionClient(cfg.Backend, logger)

	handler := h.NewRouter(h.RouterConfig{
		RequestTimeout:     cfg.Server.RequestTimeout,
		MaxRequestBodySize: cfg.Server.MaxRequestBodySize,
		SessionCookieName:  cfg.Session.CookieName,
		AdminToken:         cfg.Admin.Token,
	}, h.Handlers{
		Products: h.NewProductHandler(products),
		Cart:     h.NewCartHandler(session.NewManager(registry, unit), products, logger),
		Checkout: h.NewCheckoutHandler(checkout.NewService(functions, cfg.Server.PublicOrigin, logger), products, logger),
		Visits:   h.NewVisitHandler(visitor.NewTracker(visitors, logger)),
		Admin:    h.NewAdminHandler(admin.NewService(orders, visitors, settings, logger), logger),
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront starting",
			zap.String("port", cfg.Server.Port),
			zap.String("session_store", cfg.Session.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// newRegistry builds the configured session store and the closer releasing
// its resources.
func newRegistry(ctx context.Context, cfg config.Config) (session.Registry, io.Closer, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}
		return session.NewRedisRegistry(client, cfg.Session.TTL), client, nil
	default:
		registry := session.NewMemoryRegistry(cfg.Session.TTL)
		return registry, registry, nil
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
