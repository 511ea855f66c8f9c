package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/crypto/bcrypt"

	echoapi "go.edulab.hu/coachdesk/api/echo"
	cacheredis "go.edulab.hu/coachdesk/cache/redis"
	"go.edulab.hu/coachdesk/config"
	"go.edulab.hu/coachdesk/internal/auth"
	"go.edulab.hu/coachdesk/log"
	"go.edulab.hu/coachdesk/mongodb"
	"go.edulab.hu/coachdesk/repocache"
	"go.edulab.hu/coachdesk/services"
	"go.edulab.hu/coachdesk/tracing"
)

var (
	appLogger      log.Logger
	tracerProvider *sdktrace.TracerProvider
)

func main() {
	// Load configuration first
	cfg, err := config.LoadConfig()
	if err != nil {
		zerolog.New(os.Stdout).With().Timestamp().Logger().
			Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize Logger
	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
		zerolog.New(os.Stdout).With().Timestamp().Logger().Warn().
			Str("configured_log_level", cfg.LogLevel).
			Str("fallback_log_level", logLevel.String()).
			Err(parseErr).
			Msg("Invalid LOG_LEVEL configured, defaulting to 'info'")
	}
	appLogger = log.NewZerologAdapter(logLevel, cfg.LogPretty)
	appLogger.Info(context.Background(), "Starting coachdesk server...")
	appLogger.Info(context.Background(), "Configuration loaded successfully", map[string]interface{}{
		"http_port":     cfg.HTTPPort,
		"mongo_uri":     cfg.MongoURI,
		"mongo_db_name": cfg.MongoDBName,
		"redis_addr":    cfg.RedisAddr,
		"log_level":     cfg.LogLevel,
		"otel_service":  cfg.OtelServiceName,
	})

	// Initialize OpenTelemetry TracerProvider
	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		appLogger.Fatal(context.Background(), "Failed to initialize TracerProvider", err, nil)
	}
	tracerProvider = tp

	// --- Initialize Dependencies ---
	ctx := context.Background()
	if initErr := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); initErr != nil {
		appLogger.Fatal(ctx, "Failed to initialize MongoDB connection", initErr, nil)
	}
	db := mongodb.GetDB()

	redisClient, err := cacheredis.Connect(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	cacheStore := cacheredis.NewStore(redisClient, "")
	cacheTTL := time.Duration(cfg.CacheTTLHours) * time.Hour

	// Repositories
	userRepo, err := mongodb.NewUserRepository(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize UserRepository", err, nil)
	}
	batchRepo, err := mongodb.NewBatchRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize BatchRepository", err, nil)
	}
	studentRepo, err := mongodb.NewStudentRepositoryMongo(ctx, db)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize StudentRepository", err, nil)
	}

	// Cached decorators: reads go through the cache, writes invalidate it.
	cachedBatches := repocache.NewBatchRepository(batchRepo, cacheStore, cacheTTL)
	cachedStudents := repocache.NewStudentRepository(studentRepo, cacheStore, cacheTTL)

	// Services
	passwordHasher := auth.NewBcryptPasswordHasher(bcrypt.DefaultCost, cfg.JWTSecret)
	passkeyHasher := auth.NewBcryptPasswordHasher(bcrypt.DefaultCost, "")
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, cachedStudents, passwordHasher, passkeyHasher, tokenService)

	// HTTP API
	api := echoapi.NewDashboardAPI(authService, tokenService, cachedBatches, cachedStudents, passkeyHasher)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	api.RegisterRoutes(e)

	go func() {
		appLogger.Info(context.Background(), fmt.Sprintf("HTTP server listening on port %s", cfg.HTTPPort))
		if err := e.Start(":" + cfg.HTTPPort); err != nil {
			appLogger.Error(context.Background(), "HTTP server stopped", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit

	appLogger.Info(context.Background(), fmt.Sprintf("Received signal: %v. Shutting down server...", receivedSignal))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "HTTP server shutdown error", err, nil)
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "TracerProvider shutdown error", err, nil)
		}
	}

	if err := redisClient.Close(); err != nil {
		appLogger.Error(shutdownCtx, "Redis client close error", err, nil)
	}

	mongodb.CloseMongoDB(shutdownCtx)

	appLogger.Info(shutdownCtx, "Server gracefully stopped.")
}
