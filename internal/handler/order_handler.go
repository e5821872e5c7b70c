package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/session"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc       *usecase.OrderUsecase
	sessions *session.Store
}

func NewOrderHandler(uc *usecase.OrderUsecase, sessions *session.Store) *OrderHandler {
	return &OrderHandler{uc: uc, sessions: sessions}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.list)
}

func (h *OrderHandler) create(c echo.Context) error {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Complete(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	sess, ok := sessionFromContext(c, h.sessions)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	return c.JSON(http.StatusOK, h.uc.ListHistory(sess))
}
