package stubapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	Name      string   `json:"name"`
	IsAdmin   bool     `json:"is_admin"`
	AppGrants []string `json:"app_grants"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token,omitempty"`
	User  *User  `json:"user,omitempty"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.service.Register(c.Request().Context(), req.Email, req.Password, req.Name, req.IsAdmin, req.AppGrants)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrUserExists):
			status = http.StatusConflict
		case errors.Is(err, ErrInvalidCredentials):
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, ErrUserNotFound) {
			status = http.StatusNotFound
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Identity serves GET /api/v1/identity in the shape the sidecar expects.
func (h *Handler) Identity(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	user, err := h.service.Identity(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		return err
	}

	return c.JSON(http.StatusOK, domain.Session{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) AdminCheck(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	isAdmin, err := h.service.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"is_admin": isAdmin})
}

func (h *Handler) AppAccess(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	appID := c.Param("app_id")

	hasAccess, err := h.service.HasAppAccess(c.Request().Context(), userID, appID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"has_access": hasAccess})
}

func (h *Handler) GetPreferences(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	prefs, err := h.service.repo.FindPreferences(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "preferences not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

func (h *Handler) PatchPreferences(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)

	var patch ports.DashboardPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.service.repo.PatchPreferences(c.Request().Context(), userID, patch); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
