package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/metrics"
	"github.com/anonto42/socialconnect/backend/internal/realtime"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/internal/router"
	"github.com/anonto42/socialconnect/backend/internal/tracing"
	"github.com/anonto42/socialconnect/backend/pkg/config"
	"github.com/anonto42/socialconnect/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := log.New("socialconnect")
	logger.SetLevel(cfg.Level())
	logger.SetHeader(`${time_rfc3339} ${level} ${prefix} ${short_file}:${line}`)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Options{
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.OTelServiceName,
		Environment: cfg.Env,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Errorf("Tracing shutdown: %v", err)
		}
	}()

	deps := router.Dependencies{
		Postgres:  db.Postgres,
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,
	}

	if cfg.PostStore == config.PostStoreMongo {
		mongoPosts := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
		if err := mongoPosts.EnsureIndexes(ctx); err != nil {
			logger.Fatalf("Failed to create MongoDB indexes: %v", err)
		}
		deps.Posts = mongoPosts
	}

	// Firebase is optional; without credentials the API uses JWT auth.
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	switch {
	case err == nil:
		deps.Firebase = firebaseApp.AuthClient
		logger.Info("Firebase app and auth client initialized successfully!")
	case errors.Is(err, firebase.ErrNoCredentials):
		logger.Info("Firebase not configured, using JWT authentication.")
	default:
		logger.Fatalf("Failed to initialize Firebase: %v", err)
	}

	publisher, err := newPublisher(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize realtime publisher: %v", err)
	}
	defer publisher.Close()
	deps.Publisher = publisher

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Logger = logger

	// Setup global middleware
	e.Use(tracing.Middleware(cfg.OTelServiceName))
	config.SetupMiddleware(e, logger)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, deps); err != nil {
		logger.Fatalf("Failed to set up routes: %v", err)
	}

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metricsMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Metrics server stopped: %v", err)
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Metrics server shutdown: %v", err)
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.NewHandler())
	return mux
}

func newPublisher(ctx context.Context, cfg *config.Config) (realtime.Publisher, error) {
	switch cfg.RealtimeBackend {
	case config.RealtimeRedis:
		p := realtime.NewRedisPublisher(cfg.RedisAddr, cfg.RedisPassword)
		if err := p.Ping(ctx); err != nil {
			_ = p.Close()
			return nil, err
		}
		return p, nil
	case config.RealtimeKafka:
		return realtime.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return realtime.NopPublisher{}, nil
	}
}
