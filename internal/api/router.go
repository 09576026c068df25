package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/fides/internal/admin"
	"github.com/saturnino-fabrica-de-software/fides/internal/alert"
	"github.com/saturnino-fabrica-de-software/fides/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/fides/internal/api/handler"
	adminHandler "github.com/saturnino-fabrica-de-software/fides/internal/api/handler/admin"
	"github.com/saturnino-fabrica-de-software/fides/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/fides/internal/audit"
	"github.com/saturnino-fabrica-de-software/fides/internal/extractor"
	"github.com/saturnino-fabrica-de-software/fides/internal/metrics"
	"github.com/saturnino-fabrica-de-software/fides/internal/notification"
	"github.com/saturnino-fabrica-de-software/fides/internal/ratelimit"
	"github.com/saturnino-fabrica-de-software/fides/internal/repository"
	"github.com/saturnino-fabrica-de-software/fides/internal/scoring"
	"github.com/saturnino-fabrica-de-software/fides/internal/service"
	"github.com/saturnino-fabrica-de-software/fides/internal/ws"
)

// fanoutNotifier forwards each event to every downstream consumer: the
// webhook dispatcher and the admin live feed.
type fanoutNotifier []service.Notifier

func (f fanoutNotifier) Dispatch(ctx context.Context, eventType string, data any) {
	for _, n := range f {
		n.Dispatch(ctx, eventType, data)
	}
}

type Dependencies struct {
	RequestRepo    *repository.RequestRepository
	TrustRepo      *repository.TrustRepository
	APIKeyRepo     *repository.APIKeyRepository
	Extractor      extractor.TextExtractor
	LastUsedWorker *middleware.LastUsedWorker
	DB             *pgxpool.Pool

	JWTSecret string
	JWTIssuer string
	Version   string
}

type Router struct {
	app              *fiber.App
	logger           *slog.Logger
	deps             *Dependencies
	rateLimiter      *middleware.RateLimiter
	notifyDispatcher *notification.Dispatcher
	notifyWorker     *notification.Worker
	hub              *ws.Hub
	cancelWorkers    context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Fides API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	var pinger handler.Pinger
	if r.deps != nil {
		pinger = r.deps.DB
	}
	version := "dev"
	if r.deps != nil && r.deps.Version != "" {
		version = r.deps.Version
	}
	healthHandler := handler.NewHealthHandler(pinger, version)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group with authentication
	v1 := r.app.Group("/v1")

	// Only configure authenticated routes if dependencies were provided
	if r.deps != nil {
		// Notification service plus the retry worker draining the queue
		notifyService := notification.NewService(r.deps.DB)
		r.notifyDispatcher = notification.NewDispatcher(notifyService, r.logger)
		r.notifyWorker = notification.NewWorker(r.deps.DB, notifyService, r.logger)
		r.hub = ws.NewHub()

		ctx, cancel := context.WithCancel(context.Background())
		r.cancelWorkers = cancel
		go r.notifyWorker.Run(ctx)
		go r.hub.Run(ctx)

		// Backlog watcher raises a webhook event when reviewers fall behind
		metricsRepo := metrics.NewRepository(r.deps.DB)
		watcher := alert.NewWatcher(metricsRepo, r.notifyDispatcher, alert.DefaultThresholds(), r.logger, 0)
		go watcher.Run(ctx)

		// Auth middleware
		authDeps := middleware.AuthDependencies{
			APIKeyRepo:     r.deps.APIKeyRepo,
			LastUsedWorker: r.deps.LastUsedWorker,
			Logger:         r.logger,
		}
		v1.Use(middleware.Auth(authDeps))

		// Rate limiting (per API key) - must come after auth to have the key
		// in context. Submissions get a tighter budget than status polling.
		rateLimiterConfig := middleware.DefaultRateLimiterConfig()
		rateLimiterConfig.PerEndpoint = middleware.SubmissionRateLimits()
		r.rateLimiter = middleware.NewRateLimiter(rateLimiterConfig)
		v1.Use(r.rateLimiter.Handler())

		auditLogger := audit.NewSlogLogger(r.logger)
		scorer := scoring.NewService(r.deps.Extractor, r.logger)
		notifier := fanoutNotifier{r.notifyDispatcher, r.hub}
		submissionLimiter := ratelimit.NewSubmissionLimiter(r.deps.DB, 0, 0)

		// Trust service
		trustService := service.NewTrustService(
			r.deps.TrustRepo,
			r.deps.RequestRepo,
			scorer,
			notifier,
			auditLogger,
			submissionLimiter,
			r.logger,
		)

		verificationHandler := handler.NewVerificationHandler(trustService, r.logger)

		// Verification routes
		v1.Post("/verifications", verificationHandler.Submit)
		v1.Get("/verifications/:id", verificationHandler.GetRequest)

		// Profile service
		profileService := service.NewProfileService(
			r.deps.TrustRepo,
			notifier,
			auditLogger,
			r.logger,
		)

		profileHandler := handler.NewProfileHandler(profileService, r.logger)

		// Provider routes
		v1.Get("/providers/:provider_id/trust", verificationHandler.Status)
		v1.Put("/providers/:provider_id/profile", profileHandler.Sync)
		v1.Get("/providers/:provider_id/profile", profileHandler.Get)
		v1.Patch("/providers/:provider_id/profile", profileHandler.Update)

		// Admin routes (JWT auth)
		r.setupAdminRoutes(v1, trustService, notifyService, metricsRepo)
	}
}

func (r *Router) setupAdminRoutes(v1Group fiber.Router, trustService *service.TrustService, notifyService *notification.Service, metricsRepo *metrics.Repository) {
	adminService := admin.NewService(
		r.deps.RequestRepo,
		trustService,
		r.deps.DB,
		r.logger,
		r.deps.Version,
	)

	jwtService := admin.NewJWTService(
		r.deps.JWTSecret,
		r.deps.JWTIssuer,
		24*time.Hour,
	)

	adminGroup := v1Group.Group("/admin")
	adminGroup.Use(middleware.AdminAuth(middleware.AdminAuthDependencies{
		JWTService: jwtService,
		Logger:     r.logger,
	}))

	reviewHandler := adminHandler.NewReviewHandler(adminService, r.logger)
	systemHandler := adminHandler.NewSystemHandler(adminService, r.logger)
	webhooksHandler := adminHandler.NewWebhooksHandler(notifyService, r.logger)
	apiKeysHandler := adminHandler.NewAPIKeysHandler(r.deps.APIKeyRepo, r.logger)

	// Review queue routes
	adminGroup.Get("/queue", reviewHandler.ListQueue)
	adminGroup.Get("/requests/:id", reviewHandler.GetRequest)
	adminGroup.Post("/requests/:id/approve", reviewHandler.Approve)
	adminGroup.Post("/requests/:id/reject", reviewHandler.Reject)
	adminGroup.Post("/providers/:provider_id/revoke", reviewHandler.Revoke)

	// System routes
	adminGroup.Get("/system/health", systemHandler.GetSystemHealth)
	adminGroup.Get("/system/metrics", systemHandler.GetSystemMetrics)

	// Verification pipeline metrics
	metricsHandler := adminHandler.NewMetricsHandler(metricsRepo, r.logger)
	adminGroup.Get("/metrics/verifications", metricsHandler.GetVerificationMetrics)

	// Live event feed for the review dashboard
	adminGroup.Use("/ws", ws.UpgradeMiddleware())
	adminGroup.Get("/ws", ws.Handler(r.hub))

	// Webhooks routes
	adminGroup.Get("/webhooks", webhooksHandler.List)
	adminGroup.Post("/webhooks", webhooksHandler.Create)
	adminGroup.Delete("/webhooks/:id", webhooksHandler.Delete)

	// API key routes
	adminGroup.Get("/api-keys", apiKeysHandler.List)
	adminGroup.Post("/api-keys", apiKeysHandler.Create)
	adminGroup.Post("/api-keys/:id/revoke", apiKeysHandler.Revoke)
	adminGroup.Delete("/api-keys/:id", apiKeysHandler.Delete)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	// Stop the notification retry worker, backlog watcher and live feed hub
	if r.cancelWorkers != nil {
		r.cancelWorkers()
	}

	// Let in-flight dispatches finish before the pool closes
	if r.notifyDispatcher != nil {
		r.notifyDispatcher.Wait()
	}

	// Stop rate limiter cleanup goroutine
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}

	return r.app.Shutdown()
}
