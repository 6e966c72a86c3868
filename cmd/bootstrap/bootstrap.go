package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-assistant/config"
	"hospital-assistant/internal/catalog"
	deliveryHttp "hospital-assistant/internal/delivery/http"
	"hospital-assistant/internal/delivery/http/handler"
	"hospital-assistant/internal/delivery/http/middleware"
	"hospital-assistant/internal/infrastructure/cache"
	"hospital-assistant/internal/repository"
	"hospital-assistant/internal/service"
	"hospital-assistant/internal/usecase"
	"hospital-assistant/pkg/jwt"
	"hospital-assistant/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize catalog and store. The store is the only shared mutable
	// state in the process; everything receives this one instance.
	scheduleCatalog := catalog.New()
	appointmentRepo := repository.NewAppointmentRepository()

	// Initialize services
	doctorDirectory := service.NewDoctorDirectory(cfg.Doctors.Allowlist)
	roomTokenService := service.NewRoomTokenService(cfg.LiveKit)

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(log, scheduleCatalog, appointmentRepo)
	doctorUsecase := usecase.NewDoctorUsecase(log, appointmentRepo)

	// Initialize handlers
	scheduleHandler := handler.NewScheduleHandler(appointmentUsecase)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	connectHandler := handler.NewConnectHandler(roomTokenService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	doctorMiddleware := middleware.NewDoctorMiddleware(doctorDirectory)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(scheduleHandler, appointmentHandler, doctorHandler, connectHandler, authMiddleware, doctorMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (redis, etc.). Appointments live in process
// memory only and are gone after shutdown by design.
func (app *App) Close() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
