package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/omarzydan610/JetStay-sub001/cache"
	"github.com/omarzydan610/JetStay-sub001/config"
	"github.com/omarzydan610/JetStay-sub001/database"
	"github.com/omarzydan610/JetStay-sub001/handlers"
	"github.com/omarzydan610/JetStay-sub001/middleware"
	"github.com/omarzydan610/JetStay-sub001/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("❌ gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []handlers.Option

	// Optional search history and stored documents
	if cfg.Database.Enabled() {
		db, err := database.Open(ctx, cfg.Database.DSN(), logger)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, handlers.WithHistory(db), handlers.WithPinger("database", db))
	} else {
		logger.Info("No database configured, search history disabled")
	}

	// Reference data cache: Redis when configured, memory otherwise
	var store cache.Store
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = rdb
		opts = append(opts, handlers.WithPinger("redis", rdb))
		logger.Info("✅ Redis cache connected")
	} else {
		mem := cache.NewMemory()
		defer mem.Close()
		store = mem
	}

	client := services.NewClient(cfg.API.BaseURL, services.NewMemoryTokenStore(""),
		services.WithTimeout(cfg.API.Timeout),
		services.WithCache(cache.NewLoader(store, cfg.Redis.CacheTTL)),
		services.WithLogger(logger),
	)

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logging(logger), middleware.BearerToken())

	// Trusted proxies (the gateway usually sits behind one)
	if err := r.SetTrustedProxies([]string{"0.0.0.0/0"}); err != nil {
		return err
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	opts = append(opts, handlers.WithLogger(logger))
	handlers.New(handlers.ClientFactory(client), opts...).Register(r.Group("/api"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 JetStay gateway starting", "port", cfg.Server.Port, "api", cfg.API.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
