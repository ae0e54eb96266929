package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	"github.com/BruksfildServices01/care-scheduler/internal/auth"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/care-scheduler/internal/handlers"
	"github.com/BruksfildServices01/care-scheduler/internal/identity"
	"github.com/BruksfildServices01/care-scheduler/internal/metrics"
	"github.com/BruksfildServices01/care-scheduler/internal/middleware"
	"github.com/BruksfildServices01/care-scheduler/internal/session"
)

// Dependencies are the stores and services the HTTP surface is built on.
type Dependencies struct {
	Config *config.Config
	Log    zerolog.Logger

	Appointments appointment.Repository
	Users        user.Repository
	AuditStore   audit.Store

	// Revocations is nil when no redis is configured; logout then only
	// clears the cookie.
	Revocations *session.RedisRevocations

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Log, deps.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)
	verifier := auth.NewVerifier(cfg.JWTSecret)

	var (
		revocationCheck identity.RevocationChecker
		revoker         handlers.Revoker
	)
	if deps.Revocations != nil {
		revocationCheck = deps.Revocations
		revoker = deps.Revocations
	}

	resolver := identity.NewResolver(verifier, deps.Users, revocationCheck)
	auditLogger := audit.New(deps.AuditStore, deps.Log)
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateRPS, cfg.AuthRateBurst)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(deps.Users, issuer, verifier, revoker, auditLogger, cfg, deps.Log)
	userHandler := handlers.NewUserHandler(deps.Users, auditLogger, deps.Log)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments, auditLogger, deps.Metrics, deps.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditStore, deps.Log)

	// ======================================================
	// OPERATIONS
	// ======================================================
	r.GET("/health", handlers.Health)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", middleware.RateLimit(authLimiter), authHandler.Register)
			authAPI.POST("/login", middleware.RateLimit(authLimiter), authHandler.Login)
			authAPI.POST("/logout", authHandler.Logout)
		}

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(resolver, cfg.SessionCookie, deps.Log))
		{
			secured.GET("/me", userHandler.GetMe)
			secured.PATCH("/me", userHandler.UpdateMe)

			users := secured.Group("/users")
			{
				users.GET("/:id", userHandler.Get)
				users.PATCH("/:id", userHandler.Update)
			}

			secured.GET("/doctors", userHandler.ListDoctors)
			secured.GET("/doctors/", userHandler.ListDoctors)

			// Both collection forms are served directly; clients that do not
			// follow redirects post to the trailing-slash form.
			appointments := secured.Group("/appointments")
			{
				appointments.POST("", appointmentHandler.Create)
				appointments.POST("/", appointmentHandler.Create)
				appointments.GET("", appointmentHandler.List)
				appointments.GET("/", appointmentHandler.List)
				appointments.GET("/:id", appointmentHandler.Get)
				appointments.PUT("/:id", appointmentHandler.Update)
				appointments.DELETE("/:id", appointmentHandler.Delete)
			}

			secured.GET("/audit-logs", middleware.RequireRole(identity.RoleAdmin), auditLogsHandler.List)
		}
	}
}
