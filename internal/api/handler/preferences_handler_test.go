package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aexy/console-state/internal/core/domain"
)

type stubPreferenceService struct {
	theme    domain.Theme
	resolved domain.ColorScheme
	sidebar  domain.SidebarLayout

	setThemeFn   func(t domain.Theme) error
	setSidebarFn func(l domain.SidebarLayout) error
}

func (s *stubPreferenceService) Theme() domain.Theme { return s.theme }

func (s *stubPreferenceService) SetTheme(t domain.Theme) error { return s.setThemeFn(t) }

func (s *stubPreferenceService) ResolvedTheme() domain.ColorScheme { return s.resolved }

func (s *stubPreferenceService) SidebarLayout() domain.SidebarLayout { return s.sidebar }

func (s *stubPreferenceService) SetSidebarLayout(l domain.SidebarLayout) error {
	return s.setSidebarFn(l)
}

type stubDashboardService struct {
	preferencesFn func(ctx context.Context) (domain.DashboardPreferences, error)
	setPresetFn   func(ctx context.Context, preset string) error
	toggleFn      func(ctx context.Context, widgetID string) error
	resetFn       func(ctx context.Context, preset string) error
}

func (s *stubDashboardService) Preferences(ctx context.Context) (domain.DashboardPreferences, error) {
	return s.preferencesFn(ctx)
}

func (s *stubDashboardService) SetPreset(ctx context.Context, preset string) error {
	return s.setPresetFn(ctx, preset)
}

func (s *stubDashboardService) ToggleWidget(ctx context.Context, widgetID string) error {
	return s.toggleFn(ctx, widgetID)
}

func (s *stubDashboardService) ResetToPreset(ctx context.Context, preset string) error {
	return s.resetFn(ctx, preset)
}

func TestPreferencesHandler_Theme(t *testing.T) {
	e := echo.New()
	prefs := &stubPreferenceService{theme: domain.ThemeSystem, resolved: domain.SchemeDark}
	h := NewPreferencesHandler(prefs, &stubDashboardService{})

	c, rec := newSessionContext(e, http.MethodGet, "/v1/preferences/theme", "")
	if err := h.Theme(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["theme"] != "system" || resp["resolved"] != "dark" {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestPreferencesHandler_SetTheme_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	prefs := &stubPreferenceService{theme: domain.ThemeDark, resolved: domain.SchemeDark}
	prefs.setThemeFn = func(th domain.Theme) error {
		if th != domain.ThemeDark {
			t.Fatalf("unexpected theme %s", th)
		}
		return nil
	}
	h := NewPreferencesHandler(prefs, &stubDashboardService{})

	c, rec := newSessionContext(e, http.MethodPut, "/v1/preferences/theme", `{"theme":"dark"}`)
	if err := h.SetTheme(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPreferencesHandler_SetTheme_RejectsUnknownValue(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	prefs := &stubPreferenceService{
		setThemeFn: func(domain.Theme) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewPreferencesHandler(prefs, &stubDashboardService{})

	c, _ := newSessionContext(e, http.MethodPut, "/v1/preferences/theme", `{"theme":"sepia"}`)
	err := h.SetTheme(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPreferencesHandler_SetSidebar_RejectsUnknownValue(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	prefs := &stubPreferenceService{
		setSidebarFn: func(domain.SidebarLayout) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewPreferencesHandler(prefs, &stubDashboardService{})

	c, _ := newSessionContext(e, http.MethodPut, "/v1/preferences/sidebar", `{"layout":"stacked"}`)
	err := h.SetSidebar(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPreferencesHandler_Dashboard(t *testing.T) {
	e := echo.New()
	dashboard := &stubDashboardService{
		preferencesFn: func(context.Context) (domain.DashboardPreferences, error) {
			prefs, _ := domain.PresetDefaults("manager")
			return prefs, nil
		},
	}
	h := NewPreferencesHandler(&stubPreferenceService{}, dashboard)

	c, rec := newSessionContext(e, http.MethodGet, "/v1/dashboard/preferences", "")
	if err := h.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp domain.DashboardPreferences
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.PresetType != "manager" || len(resp.VisibleWidgets) == 0 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestPreferencesHandler_SetPreset(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	var got string
	dashboard := &stubDashboardService{
		setPresetFn: func(_ context.Context, preset string) error {
			got = preset
			return nil
		},
	}
	h := NewPreferencesHandler(&stubPreferenceService{}, dashboard)

	c, rec := newSessionContext(e, http.MethodPut, "/v1/dashboard/preferences/preset", `{"preset":"support"}`)
	if err := h.SetPreset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got != "support" {
		t.Fatalf("preset not forwarded, got %q", got)
	}
}

func TestPreferencesHandler_ToggleWidget(t *testing.T) {
	e := echo.New()
	var got string
	dashboard := &stubDashboardService{
		toggleFn: func(_ context.Context, widgetID string) error {
			got = widgetID
			return nil
		},
	}
	h := NewPreferencesHandler(&stubPreferenceService{}, dashboard)

	c, rec := newSessionContext(e, http.MethodPost, "/v1/dashboard/preferences/widgets/open_prs/toggle", "")
	c.SetParamNames("widget_id")
	c.SetParamValues("open_prs")
	if err := h.ToggleWidget(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got != "open_prs" {
		t.Fatalf("widget not forwarded, got %q", got)
	}
}

func TestGateHandler_App_RequiresAppID(t *testing.T) {
	e := echo.New()
	h := NewGateHandler(nil)

	c, _ := newSessionContext(e, http.MethodGet, "/v1/gate/apps/", "")
	err := h.App(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
