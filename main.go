package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/X-Vneer/e-commerc-api/apperrors"
	"github.com/X-Vneer/e-commerc-api/cache"
	"github.com/X-Vneer/e-commerc-api/controllers"
	"github.com/X-Vneer/e-commerc-api/database"
	"github.com/X-Vneer/e-commerc-api/events"
	applog "github.com/X-Vneer/e-commerc-api/logger"
	"github.com/X-Vneer/e-commerc-api/middleware"
	aws_pkg "github.com/X-Vneer/e-commerc-api/pkg/aws"
	"github.com/X-Vneer/e-commerc-api/repository"
	"github.com/X-Vneer/e-commerc-api/routes"
	"github.com/X-Vneer/e-commerc-api/services"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	serviceName      = "storefront-api"
	metricsNamespace = "Storefront/API"
	requestTimeout   = 30 * time.Second
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx)

	var sink io.Writer
	if cfg.CloudWatchEnabled && awsErr == nil {
		cw, err := aws_pkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, serviceName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cloudwatch logs disabled: %v\n", err)
		} else {
			sink = cw
			defer cw.Close()
		}
	}

	logger, err := applog.New(cfg.Env, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if awsErr != nil {
		logger.Warn("AWS config unavailable; S3, SNS and CloudWatch are disabled", zap.Error(awsErr))
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectPostgres(cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if cfg.SeedReferenceData {
		if err := database.SeedReferenceData(ctx, db, logger); err != nil {
			logger.Fatal("Failed to seed reference data", zap.Error(err))
		}
	}
	if err := database.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		logger.Fatal("Failed to seed admin", zap.Error(err))
	}

	var (
		redisClient *redis.Client
		invalidator services.CacheInvalidator
		listCache   controllers.ListCache
		idempotency controllers.IdempotencyStore
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			logger.Warn("Redis unavailable; product cache and idempotency replay are disabled", zap.Error(err))
		} else {
			productCache := cache.NewProductCache(redisClient, cfg.CacheTTL, logger)
			invalidator = productCache
			listCache = productCache
			idempotency = cache.NewIdempotencyStore(redisClient, 24*time.Hour)
		}
	}

	publisher := newPublisher(cfg, awsCfg, awsErr, logger)

	var metrics aws_pkg.MetricsRecorder = aws_pkg.NewMetricsClient(awsCfg, metricsNamespace, cfg.CloudWatchEnabled && awsErr == nil)

	var store aws_pkg.ObjectStore
	if cfg.S3UploadBucket != "" && awsErr == nil {
		store = aws_pkg.NewS3Store(awsCfg, cfg.S3UploadBucket, cfg.S3PublicBaseURL)
		logger.Info("Uploads go to S3", zap.String("bucket", cfg.S3UploadBucket))
	} else {
		logger.Info("Uploads go to local disk", zap.String("dir", cfg.UploadDir))
	}

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	listRepo := repository.NewGormListRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(userRepo, listRepo, tokens, logger)
	cartService := services.NewCartService(repository.NewGormCartRepository(db), publisher, metrics, cfg.Serializable, logger)
	catalogService := services.NewCatalogService(repository.NewGormCatalogRepository(db), logger)
	productService := services.NewProductService(repository.NewGormProductRepository(db), invalidator, metrics, logger)
	categoryService := services.NewCategoryService(categoryRepo, invalidator, logger)
	branchService := services.NewBranchService(repository.NewGormBranchRepository(db), logger)
	listService := services.NewListService(listRepo, categoryRepo, logger)
	uploadService := services.NewUploadService(store, cfg.UploadDir, cfg.UploadMaxBytes, logger)

	// Controllers
	validator := controllers.NewRequestValidator()
	ctrls := routes.Controllers{
		Auth:          controllers.NewAuthController(authService, validator),
		Cart:          controllers.NewCartController(cartService, validator, idempotency, logger),
		Products:      controllers.NewProductController(catalogService, validator, listCache, metrics),
		Lists:         controllers.NewListController(listService),
		Categories:    controllers.NewCategoryController(categoryService, validator),
		Branches:      controllers.NewBranchController(branchService, validator),
		AdminProducts: controllers.NewAdminProductController(productService, validator),
		Upload:        controllers.NewUploadController(uploadService, validator),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, 10*time.Minute)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(stopCleanup)

	router := newRouter(cfg, logger, metrics, limiter, ctrls, routes.NewGuards(tokens, authService))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server is running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}

	close(stopCleanup)
	if err := publisher.Close(); err != nil {
		logger.Warn("Failed to close event publisher", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if err := database.Close(db); err != nil {
		logger.Warn("Failed to close database", zap.Error(err))
	}
	logger.Info("Server shutdown complete")
}

// newRouter assembles the global middleware chain and every route.
func newRouter(
	cfg *Config,
	logger *zap.Logger,
	metrics aws_pkg.MetricsRecorder,
	limiter *middleware.RateLimiter,
	ctrls routes.Controllers,
	guards routes.Guards,
) *gin.Engine {
	r := gin.New()
	r.Use(
		apperrors.Recovery(cfg.Env, logger),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.AllowedOrigins),
		limiter.Middleware(),
		middleware.Metrics(metrics, serviceName),
		middleware.Timeout(requestTimeout),
		middleware.Language(),
		apperrors.ErrorMiddleware(cfg.Env, logger),
	)

	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})

	routes.RegisterAPIRoutes(r, ctrls, guards)
	r.NoRoute(apperrors.NoRoute)

	return r
}

func newPublisher(cfg *Config, awsCfg aws.Config, awsErr error, logger *zap.Logger) events.Publisher {
	switch cfg.EventsBackend {
	case "sns":
		if awsErr != nil {
			logger.Warn("Cart events disabled: SNS needs AWS config")
			return events.NoopPublisher{}
		}
		logger.Info("Cart events go to SNS", zap.String("topic", cfg.CartSNSTopicArn))
		return events.NewSNSPublisher(aws_pkg.NewSNSClient(awsCfg), cfg.CartSNSTopicArn)
	case "kafka":
		logger.Info("Cart events go to Kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaCartTopic),
		)
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaCartTopic)
	default:
		return events.NoopPublisher{}
	}
}
