package stubapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewRouter builds the stub API's Echo instance.
func NewRouter(db *mongo.Database, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	repo := NewRepository(db)
	service := NewService(repo, jwtSecret, 24*time.Hour)
	handler := NewHandler(service)
	auth := Auth(jwtSecret)

	e.POST("/api/v1/auth/register", handler.Register)
	e.POST("/api/v1/auth/login", handler.Login)

	protected := e.Group("/api/v1", auth)
	protected.GET("/identity", handler.Identity)
	protected.GET("/identity/admin-check", handler.AdminCheck)
	protected.GET("/workspaces/apps/:app_id/access", handler.AppAccess)
	protected.GET("/dashboard/preferences", handler.GetPreferences)
	protected.PATCH("/dashboard/preferences", handler.PatchPreferences)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return e
}
