package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/jobly/internal/app/controllers"
	appMigrations "github.com/yigit/jobly/internal/app/migrations"
	appRepos "github.com/yigit/jobly/internal/app/repositories"
	appRoutes "github.com/yigit/jobly/internal/app/routes"
	appServices "github.com/yigit/jobly/internal/app/services"
	"github.com/yigit/jobly/internal/config"
	"github.com/yigit/jobly/internal/db"
	appMiddleware "github.com/yigit/jobly/internal/middleware"
	pkgAuth "github.com/yigit/jobly/internal/pkg/auth"
	"github.com/yigit/jobly/internal/pkg/helpers"
	"github.com/yigit/jobly/internal/pkg/logger"
	"github.com/yigit/jobly/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CompanyService    appServices.CompanyService
	JobService        appServices.JobService
	UserService       appServices.UserService
	AuthService       appServices.AuthService
	AuthController    *appControllers.AuthController
	CompanyController *appControllers.CompanyController
	JobController     *appControllers.JobController
	UserController    *appControllers.UserController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
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
	if cfg.IsTest() {
		logLevel = logger.DisabledLevel
	}
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool).Migrate(ctx, appMigrations.Files()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, conn db.DBTX, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(conn)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})
	hasher := pkgAuth.NewPasswordHasher(cfg.PasswordCost())

	deps.CompanyService = appServices.NewCompanyService(deps.Repos.CompanyRepository)
	deps.JobService = appServices.NewJobService(deps.Repos.JobRepository)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.JobRepository, hasher)
	deps.AuthService = appServices.NewAuthService(deps.UserService, deps.JWTService, logger.WithComponent("auth"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CompanyController = appControllers.NewCompanyController(deps.CompanyService)
	deps.JobController = appControllers.NewJobController(deps.JobService)
	deps.UserController = appControllers.NewUserController(deps.UserService, deps.AuthService, lgr)

	return deps
}

// SeedData creates the bootstrap admin. Failures are logged, not fatal.
func SeedData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if err := seed.CreateAdminUser(ctx, deps.UserService, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create seed data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch cfg.Server.Mode {
	case config.ModeProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.ModeTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	appMiddleware.SetupValidator()

	router := gin.New()
	router.Use(
		appMiddleware.RequestLogger(logger.WithComponent("http")),
		appMiddleware.ErrorHandler(cfg.Server.Mode),
		appMiddleware.Recovery(),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CompanyController,
		deps.JobController,
		deps.UserController,
		deps.AuthMiddleware,
	)

	return router
}
