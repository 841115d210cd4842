package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/aexy/console-state/docs"
	"github.com/aexy/console-state/internal/api/handler"
	"github.com/aexy/console-state/internal/core/ports"
	"github.com/aexy/console-state/internal/infrastructure/navigation"
	"github.com/aexy/console-state/internal/infrastructure/scheme"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Sessions  ports.SessionService
	Access    ports.AccessService
	Prefs     ports.PreferenceService
	Dashboard ports.DashboardService
	Schemes   *scheme.Hub
	Nav       *navigation.Bus
	Redis     *redis.Client // nil when the memory cache is in use
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console_sidecar"))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	gateHandler := handler.NewGateHandler(d.Access)
	prefsHandler := handler.NewPreferencesHandler(d.Prefs, d.Dashboard)
	systemHandler := handler.NewSystemHandler(d.Schemes, d.Nav)

	// --- Session ---
	e.GET("/v1/session", sessionHandler.Current)
	e.PUT("/v1/session/token", sessionHandler.SetToken)
	e.POST("/v1/session/logout", sessionHandler.Logout)

	// --- Gates ---
	e.GET("/v1/gate/admin", gateHandler.Admin)
	e.GET("/v1/gate/apps/:app_id", gateHandler.App)

	// --- Local preferences ---
	e.GET("/v1/preferences/theme", prefsHandler.Theme)
	e.PUT("/v1/preferences/theme", prefsHandler.SetTheme)
	e.GET("/v1/preferences/sidebar", prefsHandler.Sidebar)
	e.PUT("/v1/preferences/sidebar", prefsHandler.SetSidebar)

	// --- Dashboard preferences ---
	e.GET("/v1/dashboard/preferences", prefsHandler.Dashboard)
	e.PUT("/v1/dashboard/preferences/preset", prefsHandler.SetPreset)
	e.POST("/v1/dashboard/preferences/widgets/:widget_id/toggle", prefsHandler.ToggleWidget)
	e.POST("/v1/dashboard/preferences/reset", prefsHandler.Reset)

	// --- Shell plumbing ---
	e.PUT("/v1/system/color-scheme", systemHandler.SetColorScheme)
	e.GET("/v1/navigation", systemHandler.Navigation)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
