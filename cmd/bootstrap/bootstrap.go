package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthcare-portal/config"
	deliveryHttp "healthcare-portal/internal/delivery/http"
	"healthcare-portal/internal/delivery/http/handler"
	"healthcare-portal/internal/delivery/http/middleware"
	domainRepo "healthcare-portal/internal/domain/repository"
	"healthcare-portal/internal/infrastructure/cache"
	"healthcare-portal/internal/infrastructure/database"
	"healthcare-portal/internal/jobs"
	"healthcare-portal/internal/repository"
	"healthcare-portal/internal/repository/mongodb"
	"healthcare-portal/internal/service"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/jwt"
	"healthcare-portal/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	Mongo       *mongo.Client
	RedisClient *redis.Client
	Scheduler   *jobs.Scheduler
	Server      *http.Server

	// UserUsecase is exposed for the seed command.
	UserUsecase usecase.UserUsecase

	users        domainRepo.UserRepository
	appointments domainRepo.AppointmentRepository
	directory    service.DoctorDirectory
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app, err := NewForSeeding()
	if err != nil {
		return nil, err
	}

	// Warm the doctor directory cache.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.directory.Refresh(ctx); err != nil {
		app.Log.Warnf("Initial doctor directory refresh failed: %v", err)
	}

	app.Scheduler = jobs.NewScheduler(app.directory, app.Log)
	if err := app.Scheduler.Start(app.Config.Directory.RefreshCron); err != nil {
		app.Close()
		return nil, err
	}

	app.Server = app.initializeServer()
	return app, nil
}

// NewForSeeding connects the store and Redis without starting the scheduler
// or the HTTP server.
func NewForSeeding() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{Config: cfg, Log: setupLogger(cfg.Log.Level)}
	app.Log.Info("Configuration loaded successfully")

	if err := app.connectStore(); err != nil {
		app.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	app.directory = service.NewDoctorDirectory(app.users, redisClient, cfg.Directory.CacheTTL, app.Log)
	app.UserUsecase = usecase.NewUserUsecase(app.Log, app.users, app.directory)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// connectStore opens the configured document store and builds its repositories.
func (app *App) connectStore() error {
	switch app.Config.DB.Driver {
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, db, err := database.NewMongoConnection(ctx, app.Config.Mongo)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		app.Mongo = client
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}
		app.users = mongodb.NewUserRepository(db)
		app.appointments = mongodb.NewAppointmentRepository(db)
		app.Log.Info("MongoDB connected successfully")

	default:
		if err := database.RunMigrations(app.Config.DB.MigrationURL()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Log.Info("Database migrations applied")

		db, err := database.NewPostgresConnection(app.Config.DB, database.GormLogLevel(app.Log.GetLevel()))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		app.users = repository.NewUserRepository(db)
		app.appointments = repository.NewAppointmentRepository(db)
		app.Log.Info("Database connected successfully")
	}
	return nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	cfg := app.Config

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	tokenStore := service.NewRedisTokenStore(app.RedisClient)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(app.Log, app.users, jwtService, tokenStore, app.directory)
	appointmentUsecase := usecase.NewAppointmentUsecase(app.Log, app.appointments, app.users)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, app.Log)
	userHandler := handler.NewUserHandler(app.UserUsecase, customValidator, app.Log)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator, app.Log)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase, app.Log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)
	metricsMiddleware := middleware.NewMetricsMiddleware(registry)
	loggingMiddleware := middleware.NewLoggingMiddleware(app.Log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		appointmentHandler,
		authMiddleware,
		corsMiddleware,
		metricsMiddleware,
		loggingMiddleware,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.Scheduler != nil {
		app.Scheduler.Stop(ctx)
	}

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, mongo, redis)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Mongo.Disconnect(ctx); err != nil {
			app.Log.Warnf("MongoDB disconnect failed: %v", err)
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
