package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/kittipos/equiptrack/internal/app/controllers"
	appMigrations "github.com/kittipos/equiptrack/internal/app/migrations"
	appRepos "github.com/kittipos/equiptrack/internal/app/repositories"
	appRoutes "github.com/kittipos/equiptrack/internal/app/routes"
	appServices "github.com/kittipos/equiptrack/internal/app/services"
	"github.com/kittipos/equiptrack/internal/config"
	"github.com/kittipos/equiptrack/internal/db"
	appMiddleware "github.com/kittipos/equiptrack/internal/middleware"
	pkgAuth "github.com/kittipos/equiptrack/internal/pkg/auth"
	"github.com/kittipos/equiptrack/internal/pkg/filestorage"
	"github.com/kittipos/equiptrack/internal/pkg/helpers"
	"github.com/kittipos/equiptrack/internal/pkg/logger"
	"github.com/kittipos/equiptrack/internal/pkg/notify"
	"github.com/kittipos/equiptrack/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	TicketService       *appServices.TicketService
	EquipmentService    *appServices.EquipmentService
	StatusService       *appServices.StatusService
	UserService         *appServices.UserService
	AuthController      *appControllers.AuthController
	TicketController    *appControllers.TicketController
	EquipmentController *appControllers.EquipmentController
	StatusController    *appControllers.StatusController
	UserController      *appControllers.UserController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	FileStorage         *filestorage.LocalStorage
	Notifier            notify.Notifier
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the canonical statuses and the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seeding is not optional here: the workflow cannot run without the
	// canonical status rows.
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default data")
		dbPool.Close()
		return nil, fmt.Errorf("seeding failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	if cfg.Notify.WebhookURL != "" {
		deps.Notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Token)
		lgr.Info().Str("url", cfg.Notify.WebhookURL).Msg("Webhook notifications enabled")
	} else {
		deps.Notifier = notify.NopNotifier{}
		lgr.Info().Msg("No notification webhook configured, events will be discarded")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.TokenRepository)
	deps.EquipmentService = appServices.NewEquipmentService(deps.Repos.EquipmentRepository)
	deps.StatusService = appServices.NewStatusService(deps.Repos.StatusRepository, deps.Repos.TicketRepository)
	deps.TicketService = appServices.NewTicketService(
		dbPool,
		deps.Repos.TicketRepository,
		deps.Repos.EquipmentRepository,
		deps.FileStorage,
		deps.Notifier,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.TicketController = appControllers.NewTicketController(deps.TicketService, deps.AuthMiddleware)
	deps.EquipmentController = appControllers.NewEquipmentController(deps.EquipmentService)
	deps.StatusController = appControllers.NewStatusController(deps.StatusService)
	deps.UserController = appControllers.NewUserController(deps.UserService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.TicketController,
		deps.EquipmentController,
		deps.StatusController,
		deps.UserController,
		deps.AuthMiddleware,
		cfg.Server.StoragePath,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
