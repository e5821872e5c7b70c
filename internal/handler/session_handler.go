package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/session"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /sessionのHTTP
type SessionHandler struct {
	uc       *usecase.AuthUsecase
	sessions *session.Store
}

// DI
func NewSessionHandler(uc *usecase.AuthUsecase, sessions *session.Store) *SessionHandler {
	return &SessionHandler{uc: uc, sessions: sessions}
}

type StartSessionRequest struct {
	Name string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/session", h.start)
	e.DELETE("/session", h.logout, middleware.AuthJWT(cfg))
}

func (h *SessionHandler) start(c echo.Context) error {
	var req StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.StartSession(req.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SessionHandler) logout(c echo.Context) error {
	sid, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	h.uc.Logout(sid)
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// contextからセッションIDを取り出す
func getSessionID(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxSessionIDKey)
	sid, ok := raw.(string)
	if !ok || sid == "" {
		return "", false
	}
	return sid, true
}

// contextのセッションIDからストアのセッションを引く
func sessionFromContext(c echo.Context, store *session.Store) (*session.Session, bool) {
	sid, ok := getSessionID(c)
	if !ok {
		return nil, false
	}
	return store.Find(sid)
}
