// Package bootstrap assembles the application: configuration, logging,
// database, dependency wiring, and the router.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/rjoshi/gradevault/internal/app/controllers"
	appMigrations "github.com/rjoshi/gradevault/internal/app/migrations"
	appRepos "github.com/rjoshi/gradevault/internal/app/repositories"
	appRoutes "github.com/rjoshi/gradevault/internal/app/routes"
	appServices "github.com/rjoshi/gradevault/internal/app/services"
	"github.com/rjoshi/gradevault/internal/config"
	"github.com/rjoshi/gradevault/internal/db"
	appMiddleware "github.com/rjoshi/gradevault/internal/middleware"
	"github.com/rjoshi/gradevault/internal/pkg/cas"
	"github.com/rjoshi/gradevault/internal/pkg/logger"
	"github.com/rjoshi/gradevault/internal/pkg/token"
	"github.com/rjoshi/gradevault/internal/seed"
)

// Dependencies holds all wired application components.
type Dependencies struct {
	AuthService      *appServices.AuthService
	GradeService     *appServices.GradeService
	CourseService    *appServices.CourseService
	AuthController   *appControllers.AuthController
	GradeController  *appControllers.GradeController
	CourseController *appControllers.CourseController
	AuthMiddleware   *appMiddleware.AuthMiddleware
	RateLimit        *appMiddleware.RateLimitMiddleware
	Repos            *appRepos.Repositories
	TokenService     *token.Service
	CASClient        *cas.Client
	Logger           zerolog.Logger
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

// SetupDatabase establishes the pool, runs migrations, and seeds courses.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed course catalogue, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers, and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.TokenService = token.NewService(token.Config{
		SecretKey: cfg.Token.Secret,
		Lifetime:  cfg.TokenLifetime(),
		Issuer:    cfg.Token.Issuer,
	})

	serviceURL := strings.TrimSuffix(cfg.CAS.HostBaseURL, "/") + "/auth/login"
	casClient, err := cas.NewClient(cfg.CAS.ServerURL, serviceURL, &http.Client{
		Timeout: 10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build CAS client: %w", err)
	}
	deps.CASClient = casClient

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.TokenService, casClient, lgr)
	deps.GradeService = appServices.NewGradeService(deps.Repos.GradeRepository, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	deps.RateLimit, err = appMiddleware.NewRateLimitMiddleware(map[string]string{
		appMiddleware.RateClassDefault:  cfg.RateLimit.Default,
		appMiddleware.RateClassGrades:   cfg.RateLimit.Grades,
		appMiddleware.RateClassHasLogin: cfg.RateLimit.HasLogin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build rate limiters: %w", err)
	}

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cfg.CAS.FrontendURL, lgr)
	deps.GradeController = appControllers.NewGradeController(deps.GradeService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, lgr)

	return deps, nil
}

// SetupRouter configures the gin engine with CORS, rate limiting, and the
// route table.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.Use(cors.New(corsConfig(cfg)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.GradeController,
		deps.AuthMiddleware,
		deps.RateLimit,
	)

	return router
}

// corsConfig allows credentialed requests from the configured frontend
// origin plus the local Vite dev origins.
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{
		cfg.CAS.FrontendURL,
		"http://localhost:5173",
		"http://localhost:5174",
	}
	corsCfg.AllowCredentials = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Cookie"}
	return corsCfg
}
