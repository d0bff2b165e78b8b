package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/controllers"
	appMigrations "github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/migrations"
	appRepos "github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/repositories"
	appRoutes "github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/routes"
	appServices "github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/services"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/config"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/db"
	appMiddleware "github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/middleware"
	pkgAuth "github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/auth"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/logger"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/metrics"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/throttle"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

const (
	loginThrottleScope  = "login"
	throttleSweepEvery  = time.Minute
	healthCheckTimeout  = 2 * time.Second
	redisConnectTimeout = 5 * time.Second
	corsPreflightMaxAge = 12 * time.Hour
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Pool              db.Pool
	Repos             *appRepos.Repositories
	Services          *appServices.Services
	JWTService        *pkgAuth.JWTService
	PasswordHasher    *pkgAuth.PasswordHasher
	ThrottleStore     throttle.Store
	Metrics           *metrics.Metrics
	AuthMiddleware    *appMiddleware.AuthMiddleware
	AuthController    *appControllers.AuthController
	TeacherController *appControllers.TeacherController
	Logger            zerolog.Logger

	closers []func() error
}

// Close releases resources opened by BuildDependencies (the redis client, if any).
// The database pool is owned by the caller.
func (d *Dependencies) Close() error {
	var firstErr error
	for _, c := range d.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.closers = nil
	return firstErr
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and, when enabled, applies migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.AutoMigrate {
		return database, nil
	}

	if err := RunMigrations(cfg, lgr); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// RunMigrations applies all pending schema migrations.
func RunMigrations(cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator, err := appMigrations.NewMigrator(cfg.GetPostgresConnectionString())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize migrator")
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			lgr.Warn().Err(err).Msg("Failed to close migrator")
		}
	}()

	if err := migrator.Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	version, _, err := migrator.Version()
	if err != nil {
		return err
	}
	lgr.Info().Uint("version", version).Msg("Database migrations successfully applied.")
	return nil
}

// SetupThrottleStore builds the login throttle backend named by the config.
// The memory store is swept in the background until ctx is done.
func SetupThrottleStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (throttle.Store, func() error, error) {
	limits := throttle.Limits{
		MaxAttempts: cfg.Throttle.MaxAttempts,
		Window:      cfg.Throttle.Window.Std(),
	}

	switch strings.ToLower(cfg.Throttle.Backend) {
	case config.ThrottleBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Login throttle uses redis")
		return throttle.NewRedisStore(client, loginThrottleScope, limits), client.Close, nil

	default:
		store := throttle.NewMemoryStore(limits)
		go store.Run(ctx, throttleSweepEvery)
		lgr.Info().Msg("Login throttle uses process memory")
		return store, func() error { return nil }, nil
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, pool db.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Pool: pool, Logger: lgr}

	store, closeStore, err := SetupThrottleStore(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.ThrottleStore = store
	deps.closers = append(deps.closers, closeStore)

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
	}

	deps.Repos = appRepos.NewRepositories(pool)

	deps.PasswordHasher = pkgAuth.NewPasswordHasher(cfg.Security.BcryptCost)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.JWT.AccessTokenExpiration.Std(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(pool, deps.Repos, deps.PasswordHasher, deps.JWTService, deps.Metrics, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Session.CookieName)

	deps.AuthController = appControllers.NewAuthController(
		deps.Services.AuthService,
		appControllers.CookieConfig{
			Name:   cfg.Session.CookieName,
			MaxAge: cfg.Session.CookieMaxAge.Std(),
			Secure: !cfg.IsDevelopment(),
		},
		lgr.With().Str("controller", "auth").Logger(),
	)
	deps.TeacherController = appControllers.NewTeacherController(
		deps.Services.TeacherService,
		lgr.With().Str("controller", "teacher").Logger(),
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	} else {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(lgr),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Retry-After", appMiddleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           corsPreflightMaxAge,
		}),
	)

	loginThrottle := appMiddleware.Throttle(deps.ThrottleStore, deps.Metrics, lgr.With().Str("component", "throttle").Logger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.TeacherController,
		deps.AuthMiddleware,
		loginThrottle,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := deps.Pool.Ping(ctx); err != nil {
			lgr.Warn().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	})

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	return router, nil
}
