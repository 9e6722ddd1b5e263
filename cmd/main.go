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
	httpSwagger "github.com/swaggo/http-swagger"

	_ "spiralscreen/docs"
	"spiralscreen/internal/db"
	"spiralscreen/internal/handlers"
	"spiralscreen/internal/jwt"
	"spiralscreen/internal/logger"
	"spiralscreen/internal/middlewares"
	"spiralscreen/internal/repositories"
	"spiralscreen/internal/scoring"
	"spiralscreen/internal/services"
	"spiralscreen/internal/storage"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title spiralscreen API
// @version 1.0.0
// @description Web service for hand-drawn spiral/wave screening with placeholder scoring
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		sqlitePath, uploadDir,
		jwtSecret, jwtExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		sqlitePath, uploadDir,
		jwtSecret, jwtExp,
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

// parseConfig loads environment variables from a file and returns the
// application, database, upload and JWT configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	sqlitePath, uploadDir string,
	jwtSecretKey string, jwtExpSecond int,
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
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Storage config
	sqlitePath = getEnv("SQLITE_PATH", "spiralscreen.db")
	uploadDir = getEnv("UPLOAD_DIR", "uploads")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	return
}

// run initializes the logger, database and image store, wires repositories,
// services and handlers, and serves HTTP with graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	sqlitePath, uploadDir string,
	jwtSecretKey string, jwtExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Open SQLite database, creating the schema if needed
	logger.Log.Infof("Opening SQLite database at %s", sqlitePath)
	database, err := db.Open(sqlitePath)
	if err != nil {
		logger.Log.Error("SQLite open error:", err)
		return err
	}
	defer database.Close()

	// Image store for uploaded drawings
	imageStore, err := storage.NewImageStore(uploadDir)
	if err != nil {
		logger.Log.Error("image store init error:", err)
		return err
	}

	// Initialize JWT service
	tokener := jwt.New(jwtSecretKey, time.Duration(jwtExpSecond)*time.Second)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(database)
	userWriteRepo := repositories.NewUserWriteRepository(database)
	drawingReadRepo := repositories.NewDrawingReadRepository(database)
	drawingWriteRepo := repositories.NewDrawingWriteRepository(database)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokener)
	predictionService := services.NewPredictionService(
		imageStore,
		scoring.NewRandomScorer(),
		scoring.NewEllipseExplainer(),
		drawingWriteRepo,
		drawingReadRepo,
	)
	adminService := services.NewAdminService(userReadRepo, drawingReadRepo, userWriteRepo)

	// Initialize handlers
	signupHandler := handlers.NewSignupHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	predictHandler := handlers.NewPredictHandler(predictionService)
	historyHandler := handlers.NewHistoryHandler(predictionService)
	statsHandler := handlers.NewStatsHandler(adminService)
	listUsersHandler := handlers.NewListUsersHandler(adminService)
	deleteUserHandler := handlers.NewDeleteUserHandler(adminService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	// Public routes
	r.Post("/signup", signupHandler)
	r.Post("/login", loginHandler)

	// Protected routes with session middleware
	authMiddleware := middlewares.AuthMiddleware(tokener)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/predict", predictHandler)
		r.Get("/history/{userId}", historyHandler)
		r.Get("/admin/stats", statsHandler)
		r.Get("/admin/users", listUsersHandler)
		r.Delete("/admin/users/{targetId}", deleteUserHandler)
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
