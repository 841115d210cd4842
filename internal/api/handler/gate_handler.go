package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aexy/console-state/internal/core/ports"
)

type GateHandler struct {
	access ports.AccessService
}

func NewGateHandler(access ports.AccessService) *GateHandler {
	return &GateHandler{access: access}
}

// Admin evaluates the admin-area gate. The response state is one of
// checking, denied, or granted; on denial the redirect route the shell
// must follow is included and has already been posted to the navigation bus.
//
// @Summary      Admin gate decision
// @Tags         gate
// @Produce      json
// @Success      200  {object}  domain.GateDecision
// @Router       /v1/gate/admin [get]
func (h *GateHandler) Admin(c echo.Context) error {
	return c.JSON(http.StatusOK, h.access.AdminGate(c.Request().Context()))
}

// App evaluates the per-application gate for the app_id path parameter.
// An optional fallback query parameter overrides the default redirect for
// authenticated users without access.
//
// @Summary      Application gate decision
// @Tags         gate
// @Produce      json
// @Param        app_id    path   string  true   "Application identifier"
// @Param        fallback  query  string  false  "Redirect for authenticated users without access"
// @Success      200  {object}  domain.GateDecision
// @Router       /v1/gate/apps/{app_id} [get]
func (h *GateHandler) App(c echo.Context) error {
	appID := c.Param("app_id")
	if appID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "app_id is required")
	}
	fallback := c.QueryParam("fallback")
	return c.JSON(http.StatusOK, h.access.AppGate(c.Request().Context(), appID, fallback))
}
