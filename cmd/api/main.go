package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"localmarket/internal/adapter/api"
	"localmarket/internal/adapter/api/handler"
	apimiddleware "localmarket/internal/adapter/api/middleware"
	"localmarket/internal/adapter/api/router"
	"localmarket/internal/adapter/repository"
	"localmarket/internal/infrastructure/devauth"
	"localmarket/internal/infrastructure/events"
	"localmarket/internal/infrastructure/firebase"
	"localmarket/internal/infrastructure/kvstore"
	"localmarket/internal/infrastructure/ratelimit"
	"localmarket/internal/infrastructure/storage"
	"localmarket/internal/usecase"
	"localmarket/pkg/config"
	"localmarket/pkg/logger"
	"localmarket/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	level, err := logger.ParseLevel(cfg.LogLevelName())
	if err != nil {
		log.Fatalf("Invalid LOG_LEVEL: %v", err)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []option.ClientOption
	if needsGoogleCredentials(cfg) {
		if opts, err = firebase.ClientOptions(cfg); err != nil {
			log.Fatalf("Failed to load Google credentials: %v", err)
		}
	}

	store, err := openStore(ctx, cfg, opts)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer store.Close()
	logger.Info("Record store backend: %s", cfg.StoreBackend)

	identity, devProvider, err := newIdentityProvider(ctx, cfg, store, opts)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	var images usecase.ImageStore = unconfiguredImages{}
	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		images = storageClient
	}

	var publisher usecase.EventPublisher = events.LogPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit

		if cfg.EventsAuditQueue != "" {
			consumer := events.NewConsumer(cfg.RabbitMQURL, cfg.EventsExchange, cfg.EventsAuditQueue, events.AuditLog)
			go consumer.Run(ctx)
		}
	}

	userRepo := repository.NewKVUserRepository(store)
	sellerRepo := repository.NewKVSellerRepository(store)
	listingRepo := repository.NewKVListingRepository(store)
	orderRepo := repository.NewKVOrderRepository(store)
	reviewRepo := repository.NewKVReviewRepository(store)
	reportRepo := repository.NewKVReportRepository(store)
	verificationRepo := repository.NewKVVerificationRepository(store)

	authUseCase := usecase.NewAuthUseCase(userRepo, identity, cfg.AdminEmails)
	userUseCase := usecase.NewUserUseCase(userRepo)
	sellerUseCase := usecase.NewSellerUseCase(sellerRepo, userRepo)
	listingUseCase := usecase.NewListingUseCase(listingRepo, userRepo, sellerRepo, publisher, cfg.ListingCurrency)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, listingRepo, userRepo, publisher)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, orderRepo, userRepo, publisher)
	reportUseCase := usecase.NewReportUseCase(reportRepo)
	verificationUseCase := usecase.NewVerificationUseCase(verificationRepo, listingRepo, sellerRepo, publisher)
	analyticsUseCase := usecase.NewAnalyticsUseCase(userRepo, listingRepo, orderRepo, reportRepo, verificationRepo)
	uploadUseCase := usecase.NewUploadUseCase(images)

	handler.Setup(
		authUseCase,
		userUseCase,
		sellerUseCase,
		listingUseCase,
		orderUseCase,
		reviewUseCase,
		reportUseCase,
		verificationUseCase,
		analyticsUseCase,
		uploadUseCase,
	)
	if devProvider != nil {
		handler.SetupDevAuthHandler(devProvider)
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = response.HTTPErrorHandler

	generalLimiter := ratelimit.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	generalLimiter.StartCleanupRoutine(ctx, time.Hour)
	signupLimiter := ratelimit.NewRateLimiter(cfg.AuthRateLimitRPS, 5)
	signupLimiter.StartCleanupRoutine(ctx, time.Hour)
	e.Use(apimiddleware.RateLimit(generalLimiter))

	authMiddleware := apimiddleware.NewAuthMiddleware(identity, userUseCase)

	router.Setup(e, authMiddleware, apimiddleware.RateLimit(signupLimiter))
	router.SetupDevRouter(e, cfg.Environment)

	go func() {
		logger.Info("Server starting on port %s (%s)", cfg.ServerPort, cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}

func needsGoogleCredentials(cfg *config.Config) bool {
	return cfg.StoreBackend == "firestore" || cfg.AuthProvider == "firebase" || cfg.StorageBucket != ""
}

func openStore(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (kvstore.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		if !cfg.IsDevelopment() {
			logger.Warn("In-memory record store outside development: data is lost on restart")
		}
		return kvstore.NewMemoryStore(), nil

	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
		if err != nil {
			return nil, fmt.Errorf("create Firestore client: %w", err)
		}
		return kvstore.NewFirestoreStore(client, cfg.FirestoreCollection), nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("ping Redis at %s: %w", cfg.RedisAddr, err)
		}
		return kvstore.NewRedisStore(rdb, cfg.RedisKeyPrefix), nil

	case "mysql":
		if cfg.MySQLDSN == "" {
			return nil, errors.New("MYSQL_DSN is required for the mysql backend")
		}
		return kvstore.OpenMySQLStore(cfg.MySQLDSN)

	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// newIdentityProvider returns the configured provider and, for the dev
// provider, the same value again so the dev login route can be mounted.
func newIdentityProvider(ctx context.Context, cfg *config.Config, store kvstore.Store, opts []option.ClientOption) (usecase.IdentityProvider, *devauth.Provider, error) {
	switch cfg.AuthProvider {
	case "firebase":
		app, err := firebase.NewApp(ctx, cfg, opts...)
		if err != nil {
			return nil, nil, err
		}
		authClient, err := app.Auth(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize Firebase Auth: %w", err)
		}
		return firebase.NewFirebaseAuthClient(authClient), nil, nil

	case "dev":
		if !cfg.IsDevelopment() {
			return nil, nil, errors.New("AUTH_PROVIDER=dev is only allowed with ENVIRONMENT=development")
		}
		provider := devauth.NewProvider(store, cfg.DevAuthSecret, cfg.DevAuthTTL)
		return provider, provider, nil

	default:
		return nil, nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
	}
}

type unconfiguredImages struct{}

func (unconfiguredImages) UploadImage(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	return "", errors.New("image uploads need STORAGE_BUCKET to be set")
}
