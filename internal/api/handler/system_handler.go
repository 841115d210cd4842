package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/infrastructure/navigation"
	"github.com/aexy/console-state/internal/infrastructure/scheme"
)

// SystemHandler covers the shell-facing plumbing endpoints: reporting OS
// color-scheme changes and polling the pending navigation destination.
type SystemHandler struct {
	schemes *scheme.Hub
	nav     *navigation.Bus
}

func NewSystemHandler(schemes *scheme.Hub, nav *navigation.Bus) *SystemHandler {
	return &SystemHandler{schemes: schemes, nav: nav}
}

type setSchemeRequest struct {
	Scheme string `json:"scheme" validate:"required,oneof=dark light"`
}

type navigationResponse struct {
	Route string `json:"route,omitempty"`
	Seq   uint64 `json:"seq"`
}

// SetColorScheme records the OS color scheme reported by the shell.
//
// @Summary      Report system color scheme
// @Tags         system
// @Accept       json
// @Param        body  body  setSchemeRequest  true  "dark or light"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /v1/system/color-scheme [put]
func (h *SystemHandler) SetColorScheme(c echo.Context) error {
	var req setSchemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.schemes.Set(domain.ColorScheme(req.Scheme))
	return c.NoContent(http.StatusNoContent)
}

// Navigation returns the latest requested destination. The shell compares
// seq against the last one it acted on.
//
// @Summary      Pending navigation
// @Tags         system
// @Produce      json
// @Success      200  {object}  navigationResponse
// @Router       /v1/navigation [get]
func (h *SystemHandler) Navigation(c echo.Context) error {
	route, seq := h.nav.Pending()
	return c.JSON(http.StatusOK, navigationResponse{Route: route, Seq: seq})
}
