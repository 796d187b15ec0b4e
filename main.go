package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bizinteltz/api/config"
	"bizinteltz/api/database"
	"bizinteltz/api/fixtures"
	"bizinteltz/api/handlers"
	"bizinteltz/api/logger"
	"bizinteltz/api/models"
	"bizinteltz/api/server"
	"bizinteltz/api/store"
	"bizinteltz/api/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	gin.SetMode(cfg.GinMode)
	if cfg.EnvFile != "" {
		log.Info("loaded environment file", zap.String("path", cfg.EnvFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Admin users: Postgres when configured, otherwise the single configured admin ---
	var users handlers.UserLookup
	if cfg.DatabaseURL != "" {
		dbClient, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		defer dbClient.Close()

		userStore := store.NewUserStore(dbClient.DB, log)
		if err := userStore.EnsureSchema(ctx); err != nil {
			return err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := userStore.EnsureUser(ctx, cfg.AdminUsername, hashed); err != nil {
			return err
		}
		users = userStore
	} else {
		memUsers, err := store.NewMemoryUserStore(cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return err
		}
		users = memUsers
		log.Info("using in-memory admin account", zap.String("username", cfg.AdminUsername))
	}

	// --- Analytics: Redis counters and ClickHouse event sink are both optional ---
	var counters store.CounterBackend = store.NewMemoryCounters()
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()
		counters = store.NewRedisCounters(redisClient.Client)
	}

	var sink store.EventSink
	if cfg.ClickHouse.Enabled() {
		chClient, err := database.NewClickHouseDB(ctx, cfg.ClickHouse, log)
		if err != nil {
			return fmt.Errorf("failed to initialize ClickHouse: %w", err)
		}
		defer chClient.Close()
		chSink := store.NewClickHouseSink(chClient, log)
		if err := chSink.EnsureSchema(ctx); err != nil {
			return err
		}
		sink = chSink
	}

	// --- Directory ---
	gen := fixtures.NewGenerator(time.Now().UnixNano())
	directory := store.NewDirectoryStore(log)
	if cfg.SeedSample && directory.Len() == 0 {
		seeded := directory.InsertBusinesses([]models.Business{gen.SeedBusiness()})
		log.Info("seeded sample business", zap.String("id", seeded[0].ID), zap.String("bi_id", seeded[0].BIID))
	}

	if cfg.JWTSecret == config.DevJWTSecret {
		log.Warn("using the development JWT secret; set JWT_SECRET_KEY before deploying")
	}

	r := server.New(server.Deps{
		Directory:       directory,
		Analytics:       store.NewAnalyticsStore(counters, sink, log),
		Users:           users,
		Fixtures:        gen,
		Tokens:          utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Revoked:         utils.NewRevocationList(),
		Logger:          log,
		FrontendOrigins: cfg.FrontendOrigins,
		APIKey:          cfg.APIKey,
		SecureCookie:    cfg.GinMode == gin.ReleaseMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("BizIntelTZ API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
