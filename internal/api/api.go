// internal/api/api.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/datastore"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/logging"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/security"
)

// Controller manages the API routes and handlers.
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	DS       datastore.Interface
	Settings *conf.Settings
	Tokens   *security.TokenManager

	apiLogger *slog.Logger
	startTime time.Time
}

// New creates the API controller and registers all routes under /api.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings, tokens *security.TokenManager) *Controller {
	c := &Controller{
		Echo:      e,
		DS:        ds,
		Settings:  settings,
		Tokens:    tokens,
		apiLogger: logging.ForService("api"),
		startTime: time.Now(),
	}

	c.Group = e.Group("/api")
	c.initRoutes()
	return c
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.Group.GET("/health", c.HealthCheck)

	routeInitializers := []struct {
		name string
		fn   func()
	}{
		{"auth routes", c.initAuthRoutes},
		{"profile routes", c.initProfileRoutes},
		{"genre routes", c.initGenreRoutes},
		{"level routes", c.initLevelRoutes},
		{"source routes", c.initSourceRoutes},
		{"sheet routes", c.initSheetRoutes},
		{"stats routes", c.initStatsRoutes},
	}

	for _, initializer := range routeInitializers {
		initializer.fn()
		c.apiLogger.Debug("Initialized " + initializer.name)
	}
}

// authRateLimiter bounds per-IP request rates on the credential endpoints.
func (c *Controller) authRateLimiter() echo.MiddlewareFunc {
	perMin := c.Settings.RateLimit.PerMin
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMin) / 60.0),
			Burst:     perMin,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, Response{
				Success: false,
				Message: "Too many attempts, please try again later",
			})
		},
	})
}

// HealthCheck handles GET /api/health. Publicly accessible.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	environment := conf.EnvDevelopment
	if c.Settings.IsProduction() {
		environment = conf.EnvProduction
	}

	response := map[string]any{
		"status":      "healthy",
		"environment": environment,
		"timestamp":   time.Now().Format(time.RFC3339),
		"uptime":      time.Since(c.startTime).String(),
	}

	if err := c.DS.Ping(); err != nil {
		response["status"] = "degraded"
		response["database_status"] = "disconnected"
	} else {
		response["database_status"] = "connected"
	}

	return ctx.JSON(http.StatusOK, response)
}
