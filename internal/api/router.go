package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/OJOMB/user-registry/docs"
	"github.com/OJOMB/user-registry/internal/api/handler"
	"github.com/OJOMB/user-registry/internal/api/middleware"
	"github.com/OJOMB/user-registry/internal/core/domain"
	"github.com/OJOMB/user-registry/internal/core/ports"
	"github.com/OJOMB/user-registry/internal/core/service"
	mongodb "github.com/OJOMB/user-registry/internal/infrastructure/db/mongo"
	redisdb "github.com/OJOMB/user-registry/internal/infrastructure/db/redis"
	"github.com/OJOMB/user-registry/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("user_registry"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db, log)
	userCache := redisdb.NewUserCache(rdb, cfg.Redis.CacheTTL)
	userService := service.NewUserService(userRepo, userCache, audit, log)
	userHandler := handler.NewUserHandler(userService)

	accountRepo := mongodb.NewAccountRepository(db)
	accountService := service.NewAccountService(accountRepo, cfg.JWTSecret, 24*time.Hour)
	authHandler := handler.NewAuthHandler(accountService)

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/v1/users", authRequired)
	users.POST("", userHandler.Create, middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.GetByEmail, middleware.RBAC(domain.RoleAdmin, domain.RoleViewer))
	users.GET("/:id", userHandler.GetByID, middleware.RBAC(domain.RoleAdmin, domain.RoleViewer))
	users.PUT("/:id", userHandler.Update, middleware.RBAC(domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
