package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/HenryFerreira/bedelias-backend/internal/app/controllers"
	appMigrations "github.com/HenryFerreira/bedelias-backend/internal/app/migrations"
	appRepos "github.com/HenryFerreira/bedelias-backend/internal/app/repositories"
	appRoutes "github.com/HenryFerreira/bedelias-backend/internal/app/routes"
	appServices "github.com/HenryFerreira/bedelias-backend/internal/app/services"
	"github.com/HenryFerreira/bedelias-backend/internal/config"
	"github.com/HenryFerreira/bedelias-backend/internal/db"
	appMiddleware "github.com/HenryFerreira/bedelias-backend/internal/middleware"
	pkgAuth "github.com/HenryFerreira/bedelias-backend/internal/pkg/auth"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/logger"
	"github.com/HenryFerreira/bedelias-backend/internal/pkg/websocket"
	"github.com/HenryFerreira/bedelias-backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	MateriaService         *appServices.MateriaService
	HistorialService       *appServices.HistorialService
	ElegibilidadService    *appServices.ElegibilidadService
	AuthController         *appControllers.AuthController
	MateriaController      *appControllers.MateriaController
	HistorialController    *appControllers.HistorialController
	ElegibilidadController *appControllers.ElegibilidadController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Hub                    *websocket.Hub
	WSHandler              *websocket.Handler
	Logger                 zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations
// and seeds default data.
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
	migrator := appMigrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seed failures are logged but never block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	refreshTokenExp, err := time.ParseDuration(cfg.JWT.RefreshTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessTokenExp,
		RefreshTokenExp: refreshTokenExp,
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.MateriaService = appServices.NewMateriaService(deps.Repos.MateriaRepository, deps.Hub)
	deps.HistorialService = appServices.NewHistorialService(
		deps.Repos.HistorialRepository,
		deps.Repos.MateriaRepository,
		deps.Hub,
	)
	deps.ElegibilidadService = appServices.NewElegibilidadService(
		deps.Repos.MateriaRepository,
		deps.Repos.HistorialRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.MateriaController = appControllers.NewMateriaController(deps.MateriaService)
	deps.HistorialController = appControllers.NewHistorialController(deps.HistorialService)
	deps.ElegibilidadController = appControllers.NewElegibilidadController(deps.ElegibilidadService)

	go cleanupExpiredTokens(deps.Repos, lgr)

	return deps, nil
}

// cleanupExpiredTokens periodically removes refresh tokens past their
// expiry so the table does not grow without bound.
func cleanupExpiredTokens(repos *appRepos.Repositories, lgr zerolog.Logger) {
	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		deleted, err := repos.TokenRepository.DeleteExpired(ctx)
		cancel()
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to delete expired refresh tokens")
			continue
		}
		if deleted > 0 {
			lgr.Info().Int64("deleted", deleted).Msg("Expired refresh tokens removed")
		}
	}
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

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.MateriaController,
		deps.HistorialController,
		deps.ElegibilidadController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
