package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/dashboard-workspace/internal/api/docs"
	"github.com/99minutos/dashboard-workspace/internal/api/handler"
	"github.com/99minutos/dashboard-workspace/internal/api/middleware"
	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
	"github.com/99minutos/dashboard-workspace/internal/infrastructure/http/handlers"
	"github.com/99minutos/dashboard-workspace/internal/ui"
)

// Deps is everything the HTTP surface needs from the application.
type Deps struct {
	Logger        zerolog.Logger
	JWTSecret     string
	SessionSecret string

	Auth       ports.AuthService
	Revoker    ports.TokenRevoker
	Dashboards ports.DashboardService
	Workspace  ports.WorkspaceService
	Notifier   ports.SessionNotifier
	OAuth      handler.OAuthProvider
	Cookies    handler.CookieConfig

	HealthChecks map[string]handlers.Check

	// Registry receives the request metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(requestMetrics(d.Registry))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(d.SessionSecret))))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.OAuth, d.Cookies, d.Logger)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboards)
	workspaceHandler := handler.NewWorkspaceHandler(d.Workspace)
	uiHandler := handler.NewUIHandler(d.Dashboards, d.Workspace, d.Notifier, d.OAuth != nil && d.OAuth.Enabled(), d.Logger)

	requireAuth := middleware.Auth(d.JWTSecret, d.Revoker)
	optionalAuth := middleware.OptionalAuth(d.JWTSecret, d.Revoker)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/google/login", authHandler.GoogleLogin)
	e.GET("/auth/google/callback", authHandler.GoogleCallback)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	// --- API ---
	v1 := e.Group("/v1", requireAuth)
	v1.GET("/dashboards", dashboardHandler.List)
	v1.POST("/dashboards", dashboardHandler.Create)
	v1.GET("/dashboards/count", dashboardHandler.Count)
	v1.GET("/dashboards/:id", dashboardHandler.Get)
	v1.PATCH("/dashboards/:id", dashboardHandler.Update)
	v1.DELETE("/dashboards/:id", dashboardHandler.Delete)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboards/count", dashboardHandler.CountAll)

	v1.GET("/workspace/layout", workspaceHandler.GetLayout)
	v1.PUT("/workspace/layout", workspaceHandler.SaveLayout)
	v1.DELETE("/workspace/layout", workspaceHandler.ResetLayout)
	v1.POST("/workspace/tabs", workspaceHandler.NewTab)
	v1.GET("/workspace/palette", workspaceHandler.Palette)

	// --- Pages ---
	e.GET("/login", uiHandler.Login, optionalAuth)
	e.GET("/", uiHandler.Shell, optionalAuth)
	e.GET("/ui/live", uiHandler.Live, requireAuth)
	e.StaticFS("/static", echo.MustSubFS(ui.Static, "static"))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestMetrics(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "dashboards",
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/metrics", "/health", "/health/ready":
				return true
			}
			return false
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
