package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayerecipes/recipes-api/internal/handlers"
	"github.com/ayerecipes/recipes-api/internal/jwt"
	"github.com/ayerecipes/recipes-api/internal/logger"
	"github.com/ayerecipes/recipes-api/internal/middlewares"
	"github.com/ayerecipes/recipes-api/internal/repositories"
	"github.com/ayerecipes/recipes-api/internal/services"
	"github.com/ayerecipes/recipes-api/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title Recipes API
// @version 1.0.0
// @description Backend for managing user accounts and their recipes, with direct-to-S3 image uploads
// @host localhost:8000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		mongoURL, dbName,
		redisHost, redisPort, redisDB, redisPassword,
		jwtSecret, jwtExpSecond,
		s3Bucket, s3Region, s3AccessKey, s3SecretKey,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		mongoURL, dbName,
		redisHost, redisPort, redisDB, redisPassword,
		jwtSecret, jwtExpSecond,
		s3Bucket, s3Region, s3AccessKey, s3SecretKey,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, JWT, and object storage configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	mongoURL, dbName string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	jwtSecretKey string, jwtExpSecond int,
	s3Bucket, s3Region, s3AccessKey, s3SecretKey string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8000")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// MongoDB config
	mongoURL = getEnv("MONGODB_URL", "mongodb://localhost:27017")
	dbName = getEnv("DB_NAME", "recipes_db")

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "1800")); err != nil {
		return
	}

	// Object storage config
	s3Bucket = getEnv("AWS_S3_BUCKET", "")
	s3Region = getEnv("AWS_REGION", "us-east-1")
	s3AccessKey = getEnv("AWS_ACCESS_KEY_ID", "")
	s3SecretKey = getEnv("AWS_SECRET_ACCESS_KEY", "")

	return
}

// run initializes the logger, MongoDB, Redis, object storage, and HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	mongoURL, dbName string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	jwtSecretKey string, jwtExpSecond int,
	s3Bucket, s3Region, s3AccessKey, s3SecretKey string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to MongoDB
	logger.Log.Infof("Connecting to MongoDB: %s", mongoURL)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Log.Fatal("MongoDB connection error: ", err)
	}
	defer client.Disconnect(ctx)
	if err := client.Ping(ctx, nil); err != nil {
		logger.Log.Fatal("MongoDB ping failed: ", err)
	}
	db := client.Database(dbName)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error: ", err)
	}
	defer rdb.Close()

	// Initialize object storage
	s3Storage, err := storage.New(ctx, s3Bucket, s3Region, s3AccessKey, s3SecretKey)
	if err != nil {
		logger.Log.Fatal("Object storage initialization error: ", err)
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	recipeReadRepo := repositories.NewRecipeReadRepository(db)
	recipeWriteRepo := repositories.NewRecipeWriteRepository(db)
	urlCache := repositories.NewDownloadURLCache(rdb, repositories.DefaultDownloadURLTTL)

	if err := userWriteRepo.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("Failed to create user indexes: ", err)
	}

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens)
	recipeService := services.NewRecipeService(userReadRepo, recipeReadRepo, recipeWriteRepo, s3Storage, urlCache)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	verifyHandler := handlers.NewVerifyHandler(authService)
	recipeCreateHandler := handlers.NewRecipeCreateHandler(recipeService)
	recipeListHandler := handlers.NewRecipeListHandler(recipeService)
	recipeGetHandler := handlers.NewRecipeGetHandler(recipeService)
	recipeUpdateHandler := handlers.NewRecipeUpdateHandler(recipeService)
	recipeDeleteHandler := handlers.NewRecipeDeleteHandler(recipeService)
	presignHandler := handlers.NewPresignHandler(recipeService)
	pingHandler := handlers.NewPingHandler()
	rootHandler := handlers.NewRootHandler()
	dbTestHandler := handlers.NewDBTestHandler(recipeReadRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Get("/", rootHandler)
	r.Get("/ping", pingHandler)
	r.Get("/db-test", dbTestHandler)
	r.Post("/auth/register", registerHandler)
	r.Post("/auth/login", loginHandler)
	r.Get("/auth/verify", verifyHandler)
	r.Get("/recipes/{id}", recipeGetHandler)
	r.Put("/recipes/{id}", recipeUpdateHandler)
	r.Delete("/recipes/{id}", recipeDeleteHandler)

	// Protected routes with JWT middleware
	authMiddleware := middlewares.AuthMiddleware(tokens)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/recipes", recipeCreateHandler)
		r.Get("/recipes", recipeListHandler)
		r.Post("/recipes/presigned-url", presignHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
