package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codecoach-ai/codecoach-api/internal/api/handler"
	"github.com/codecoach-ai/codecoach-api/internal/api/middleware"
	"github.com/codecoach-ai/codecoach-api/internal/core/action"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
	"github.com/codecoach-ai/codecoach-api/internal/core/service"
	"github.com/codecoach-ai/codecoach-api/internal/infrastructure/config"
	mongodb "github.com/codecoach-ai/codecoach-api/internal/infrastructure/db/mongo"
)

// Dependencies carries the externally owned collaborators the router
// wires together.
type Dependencies struct {
	Config       *config.Config
	DB           *mongo.Database
	Redis        *redis.Client
	CounterStore ports.CounterStore
	SessionStore ports.SessionStore
	Generator    ports.Generator
	Renderer     ports.PDFRenderer
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("codecoach"))

	cfg := deps.Config
	secure := cfg.IsProduction()
	v := action.NewValidator()

	// --- Core services ---
	limiter := service.NewRateLimitService(deps.CounterStore, deps.Log)
	tokens := service.NewTokenService(cfg.CSRFSecret, 0)
	guard := service.NewAuthGuard(deps.SessionStore)

	userRepo := mongodb.NewUserRepository(deps.DB)
	contentRepo := mongodb.NewContentRepository(deps.DB)

	authService := service.NewAuthService(userRepo, deps.SessionStore, 0)
	contentService := service.NewContentService(contentRepo, deps.Generator, 0)
	exportService := service.NewExportService(contentRepo, deps.Renderer, 0)

	// --- Handlers ---
	csrfHandler := handler.NewCSRFHandler(tokens, cfg.BaseURL, secure)
	authHandler := handler.NewAuthHandler(authService, v, authService.SessionTTL(), deps.Log, secure)
	contentHandler := handler.NewContentHandler(contentService, v, deps.Log)
	exportHandler := handler.NewExportHandler(exportService)
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis)

	session := middleware.Session(guard)
	csrf := middleware.CSRF(tokens, deps.Log)

	// Route middleware run first-listed-outermost, so RateLimit always
	// leads: every attempt hits the counter before any other check, and
	// requests rejected later in the chain still count.

	// --- Security token endpoint ---
	e.POST("/csrf/token", csrfHandler.Issue,
		middleware.RateLimit(limiter, "csrf_token", domain.PolicyWrite), session)
	e.OPTIONS("/csrf/token", csrfHandler.Preflight)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register,
		middleware.RateLimit(limiter, "auth_register", domain.PolicySensitive))
	e.POST("/auth/login", authHandler.Login,
		middleware.RateLimit(limiter, "auth_login", domain.PolicySensitive))
	e.POST("/auth/logout", authHandler.Logout, session)

	// --- Content routes ---
	e.POST("/v1/content", contentHandler.Generate,
		middleware.RateLimit(limiter, "content_generate", domain.PolicyWrite), session, csrf)
	e.GET("/v1/content", contentHandler.History,
		middleware.RateLimit(limiter, "content_list", domain.PolicyRead), session)
	e.GET("/v1/content/:id", contentHandler.Get,
		middleware.RateLimit(limiter, "content_get", domain.PolicyRead), session)

	// --- Export ---
	e.GET("/export/pdf", exportHandler.Export,
		middleware.RateLimit(limiter, "export_pdf", domain.PolicyWrite), session)

	// --- Health probes and operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
