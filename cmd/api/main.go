package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minhle2212044/greencycle-backend/api/controllers"
	"github.com/minhle2212044/greencycle-backend/api/routes"
	"github.com/minhle2212044/greencycle-backend/internal/auth"
	"github.com/minhle2212044/greencycle-backend/internal/centers"
	"github.com/minhle2212044/greencycle-backend/internal/materials"
	"github.com/minhle2212044/greencycle-backend/internal/orders"
	"github.com/minhle2212044/greencycle-backend/internal/rewards"
	materialtypes "github.com/minhle2212044/greencycle-backend/internal/types"
	"github.com/minhle2212044/greencycle-backend/internal/users"
	"github.com/minhle2212044/greencycle-backend/pkg/config"
	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/logger"
	"github.com/minhle2212044/greencycle-backend/pkg/metrics"
	"github.com/minhle2212044/greencycle-backend/pkg/migrate"
	"github.com/minhle2212044/greencycle-backend/pkg/redis"
	"github.com/minhle2212044/greencycle-backend/pkg/storage/gcs"
)

const shutdownGrace = 10 * time.Second

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

	checks := []controllers.HealthCheck{
		{Name: "postgres", Check: dbClient.Ping},
	}

	// Redis only backs the auth rate limiter, so a deployment without it
	// still serves traffic.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		checks = append(checks, controllers.HealthCheck{Name: "redis", Check: redisClient.Ping})
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	var uploader gcs.Uploader
	if cfg.GCS.BucketName != "" {
		gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap cloud storage", err)
			os.Exit(1)
		}
		defer func() {
			if err := gcsClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing cloud storage", err)
			}
		}()
		uploader = gcsClient
		checks = append(checks, controllers.HealthCheck{Name: "gcs", Check: gcsClient.Ping})
	} else {
		logg.Warn(context.Background(), "gcs bucket not configured, image uploads disabled")
	}

	authService, err := auth.NewService(auth.ServiceParams{
		DB:       dbClient,
		JWT:      cfg.JWT,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{
		Repo:     users.NewRepository(dbClient.DB()),
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	centersService, err := centers.NewService(centers.ServiceParams{DB: dbClient, Uploader: uploader})
	if err != nil {
		logg.Error(context.Background(), "failed to create centers service", err)
		os.Exit(1)
	}

	materialsService, err := materials.NewService(materials.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create materials service", err)
		os.Exit(1)
	}

	typesService, err := materialtypes.NewService(materialtypes.ServiceParams{DB: dbClient, Uploader: uploader})
	if err != nil {
		logg.Error(context.Background(), "failed to create types service", err)
		os.Exit(1)
	}

	rewardsService, err := rewards.NewService(rewards.ServiceParams{DB: dbClient, Uploader: uploader})
	if err != nil {
		logg.Error(context.Background(), "failed to create rewards service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{DB: dbClient, Uploader: uploader})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	handler := routes.New(routes.Dependencies{
		Config:      cfg,
		Logger:      logg,
		Auth:        authService,
		Users:       usersService,
		Centers:     centersService,
		Materials:   materialsService,
		Types:       typesService,
		Rewards:     rewardsService,
		Orders:      ordersService,
		RateLimiter: redisClient,
		Metrics:     metrics.NewHTTPMetrics(),
		Health:      checks,
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
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
