package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

type PreferencesHandler struct {
	prefs     ports.PreferenceService
	dashboard ports.DashboardService
}

func NewPreferencesHandler(prefs ports.PreferenceService, dashboard ports.DashboardService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs, dashboard: dashboard}
}

type themeResponse struct {
	Theme    domain.Theme       `json:"theme"`
	Resolved domain.ColorScheme `json:"resolved"`
}

type setThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light system"`
}

type sidebarResponse struct {
	Layout domain.SidebarLayout `json:"layout"`
}

type setSidebarRequest struct {
	Layout string `json:"layout" validate:"required,oneof=grouped flat"`
}

type presetRequest struct {
	Preset string `json:"preset" validate:"required"`
}

// Theme returns the stored theme preference and its resolved scheme.
//
// @Summary      Theme preference
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  themeResponse
// @Router       /v1/preferences/theme [get]
func (h *PreferencesHandler) Theme(c echo.Context) error {
	return c.JSON(http.StatusOK, themeResponse{
		Theme:    h.prefs.Theme(),
		Resolved: h.prefs.ResolvedTheme(),
	})
}

// SetTheme stores a new theme preference.
//
// @Summary      Set theme preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body  setThemeRequest  true  "dark, light, or system"
// @Success      200  {object}  themeResponse
// @Failure      400  {object}  map[string]string
// @Router       /v1/preferences/theme [put]
func (h *PreferencesHandler) SetTheme(c echo.Context) error {
	var req setThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.prefs.SetTheme(domain.Theme(req.Theme)); err != nil {
		return err
	}
	return h.Theme(c)
}

// Sidebar returns the stored sidebar layout.
//
// @Summary      Sidebar layout preference
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  sidebarResponse
// @Router       /v1/preferences/sidebar [get]
func (h *PreferencesHandler) Sidebar(c echo.Context) error {
	return c.JSON(http.StatusOK, sidebarResponse{Layout: h.prefs.SidebarLayout()})
}

// SetSidebar stores a new sidebar layout.
//
// @Summary      Set sidebar layout
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body  setSidebarRequest  true  "grouped or flat"
// @Success      200  {object}  sidebarResponse
// @Failure      400  {object}  map[string]string
// @Router       /v1/preferences/sidebar [put]
func (h *PreferencesHandler) SetSidebar(c echo.Context) error {
	var req setSidebarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.prefs.SetSidebarLayout(domain.SidebarLayout(req.Layout)); err != nil {
		return err
	}
	return h.Sidebar(c)
}

// Dashboard returns the aggregated dashboard preference document.
//
// @Summary      Dashboard preferences
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardPreferences
// @Failure      401  {object}  map[string]string
// @Router       /v1/dashboard/preferences [get]
func (h *PreferencesHandler) Dashboard(c echo.Context) error {
	prefs, err := h.dashboard.Preferences(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// SetPreset switches the dashboard to a preset and its default widget set.
//
// @Summary      Set dashboard preset
// @Tags         dashboard
// @Accept       json
// @Param        body  body  presetRequest  true  "Preset identifier"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/dashboard/preferences/preset [put]
func (h *PreferencesHandler) SetPreset(c echo.Context) error {
	var req presetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.dashboard.SetPreset(c.Request().Context(), req.Preset); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleWidget adds or removes one widget from the visible set.
//
// @Summary      Toggle a dashboard widget
// @Tags         dashboard
// @Param        widget_id  path  string  true  "Widget identifier"
// @Success      204
// @Failure      422  {object}  map[string]string
// @Router       /v1/dashboard/preferences/widgets/{widget_id}/toggle [post]
func (h *PreferencesHandler) ToggleWidget(c echo.Context) error {
	widgetID := c.Param("widget_id")
	if widgetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "widget_id is required")
	}

	if err := h.dashboard.ToggleWidget(c.Request().Context(), widgetID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reset restores a preset's default configuration, discarding ad-hoc
// customization.
//
// @Summary      Reset dashboard to preset defaults
// @Tags         dashboard
// @Accept       json
// @Param        body  body  presetRequest  true  "Preset identifier"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /v1/dashboard/preferences/reset [post]
func (h *PreferencesHandler) Reset(c echo.Context) error {
	var req presetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.dashboard.ResetToPreset(c.Request().Context(), req.Preset); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
