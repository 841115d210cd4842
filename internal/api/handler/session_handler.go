package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aexy/console-state/internal/core/domain"
	"github.com/aexy/console-state/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	User            *domain.Session `json:"user"`
	IsAuthenticated bool            `json:"is_authenticated"`
}

type setTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Current returns the cached session. A failed identity fetch is a closed
// decision, not an error: the response reports unauthenticated.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	sess, err := h.sessions.CurrentSession(c.Request().Context())
	if err != nil || sess == nil {
		return c.JSON(http.StatusOK, sessionResponse{IsAuthenticated: false})
	}
	return c.JSON(http.StatusOK, sessionResponse{User: sess, IsAuthenticated: true})
}

// SetToken stores a new credential. The token is durably persisted before
// any cached query is invalidated.
//
// @Summary      Store a credential token
// @Tags         session
// @Accept       json
// @Param        body  body  setTokenRequest  true  "Bearer token"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /v1/session/token [put]
func (h *SessionHandler) SetToken(c echo.Context) error {
	var req setTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.SetToken(req.Token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Logout removes the token, clears the whole query cache, and requests
// navigation to the unauthenticated landing route.
//
// @Summary      Log out
// @Tags         session
// @Success      204
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
