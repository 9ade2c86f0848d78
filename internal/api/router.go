package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tributestream/livestream-api/internal/api/handler"
	"github.com/tributestream/livestream-api/internal/api/middleware"
	"github.com/tributestream/livestream-api/internal/core/ports"
	"github.com/tributestream/livestream-api/internal/core/service"
	"github.com/tributestream/livestream-api/internal/infrastructure/config"
	mongodb "github.com/tributestream/livestream-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tributestream/livestream-api/internal/infrastructure/db/redis"
	"github.com/tributestream/livestream-api/internal/infrastructure/email"
	"github.com/tributestream/livestream-api/internal/infrastructure/wordpress"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// db and rdb may be nil; the run log and capability cache degrade gracefully.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("tributestream"))
	e.Use(middleware.Session(log))

	// --- Dependencies ---
	wp := wordpress.NewClient(wordpress.Config{
		BaseURL: cfg.WordPress.BaseURL,
		Timeout: cfg.WordPress.Timeout,
	}, log)

	mailer := email.NewSendGridMailer(email.Config{
		APIKey:     cfg.SendGrid.APIKey,
		Sender:     cfg.SendGrid.Sender,
		FallbackTo: cfg.SendGrid.StaffEmail,
	}, log)

	// Interface values stay untyped-nil when the backing store is absent so
	// the services' nil checks hold.
	var capCache ports.CapabilityCache
	if rdb != nil {
		capCache = redisdb.NewCapabilityCache(rdb)
	}
	var runRepo ports.WorkflowRepository
	var runLog *mongodb.WorkflowRepository
	if db != nil {
		runLog = mongodb.NewWorkflowRepository(db)
		runRepo = runLog
	}

	authService := service.NewAuthService(wp, capCache, log)
	workflowService := service.NewWorkflowService(
		wp, wp, authService, mailer, runRepo, cfg.SendGrid.StaffEmail, log,
	)

	cookies := handler.CookieSettings{
		SessionTTL: cfg.Cookies.SessionTTL,
		ProfileTTL: cfg.Cookies.ProfileTTL,
		Secure:     cfg.Cookies.Secure,
	}

	authHandler := handler.NewAuthHandler(authService, cookies)
	workflowHandler := handler.NewWorkflowHandler(workflowService, cookies)
	tributeHandler := handler.NewTributeHandler(wp)
	metaHandler := handler.NewMetaHandler(wp)
	emailHandler := handler.NewEmailHandler(mailer)
	pricingHandler := handler.NewPricingHandler()

	// Credential endpoints are throttled per client IP.
	credentialLimit := middleware.RateLimit(5, 10)

	// --- Auth routes ---
	e.POST("/api/auth", authHandler.Login, credentialLimit)
	e.POST("/api/auth/validate", authHandler.Validate)
	e.POST("/api/register", authHandler.Register, credentialLimit)
	e.POST("/api/logout", authHandler.Logout)

	// --- Memorial onboarding workflow ---
	e.POST("/api/fd-form", workflowHandler.SubmitMemorialForm, credentialLimit)
	if runLog != nil {
		runLogHandler := handler.NewRunLogHandler(runLog)
		e.GET("/api/workflow-runs/:id", runLogHandler.GetRun)
	}

	// --- Tribute CRUD ---
	e.GET("/api/tributes", tributeHandler.List)
	e.POST("/api/tributes", tributeHandler.Create)
	e.GET("/api/tributes/:id", tributeHandler.Get)
	e.PUT("/api/tributes/:id", tributeHandler.Update)
	e.DELETE("/api/tributes/:id", tributeHandler.Delete)
	e.GET("/api/tributes/by-slug/:slug", tributeHandler.GetBySlug)

	// --- User metadata ---
	e.GET("/api/user-meta", metaHandler.Get)
	e.POST("/api/user-meta", metaHandler.Set)

	// --- Email + pricing ---
	e.POST("/api/send-email", emailHandler.Send)
	e.GET("/api/packages", pricingHandler.Packages)
	e.POST("/api/quote", pricingHandler.Quote)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
