package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/handler"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/middleware"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/service"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/config"
	storemongo "github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/db/mongo"
	storeredis "github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	telemetry ports.TelemetryRecorder,
	provider ports.ChatProvider,
	extractor ports.DocumentExtractor,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("research_chat"))

	// --- Repositories ---
	creds := storemongo.NewCredentialRepository(db)
	grants := storemongo.NewAdminGrantRepository(db)
	audit := storemongo.NewAuditRepository(db)
	prompts := storemongo.NewPromptRepository(db)
	convos := storemongo.NewConversationRepository(db)
	seq := storemongo.NewSequenceRepository(db)
	stats := storemongo.NewStatsRepository(db)
	denylist := storeredis.NewDenylist(rdb, cfg.SessionTTL)

	// --- Services ---
	authService := service.NewAuthService(creds, grants, audit, denylist, cfg.JWTSecret, cfg.SessionTTL, log)
	adminService := service.NewAdminService(grants, audit, log)
	promptService := service.NewPromptService(prompts, seq, extractor, telemetry, log)
	chatService := service.NewChatService(prompts, convos, seq, provider, telemetry, log)
	statsService := service.NewStatsService(stats, audit, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService, statsService)
	promptHandler := handler.NewPromptHandler(promptService)
	chatHandler := handler.NewChatHandler(chatService)
	navHandler := handler.NewNavHandler()
	telemetryHandler := handler.NewTelemetryHandler(telemetry)

	authMiddleware := middleware.Auth(cfg.JWTSecret, denylist)

	// --- Public routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/consent", authHandler.CompleteConsent)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.PUT("/auth/consent", authHandler.UpdateConsent)
	v1.GET("/navigation", navHandler.Navigation)
	v1.GET("/prompts", promptHandler.List)
	v1.POST("/prompts", promptHandler.Create)
	v1.GET("/prompts/:id", promptHandler.Get)
	v1.GET("/conversations", chatHandler.List)
	v1.POST("/conversations", chatHandler.Start)
	v1.POST("/conversations/:id/messages", chatHandler.Continue)
	v1.POST("/telemetry/page-visit", telemetryHandler.PageVisit)

	// --- Admin routes ---
	adminGroup := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin, domain.RoleSuperAdmin))
	adminGroup.GET("/stats", adminHandler.Stats)

	superGroup := v1.Group("/admin/codes", middleware.RBAC(domain.RoleSuperAdmin))
	superGroup.GET("", adminHandler.ListGrants)
	superGroup.POST("", adminHandler.Grant)
	superGroup.DELETE("/:code", adminHandler.Revoke)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
