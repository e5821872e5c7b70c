package handler

import (
	"fmt"
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /managerのHTTP。集計とエクスポートは共有パスワードの先にある。
type ManagerHandler struct {
	auth    *usecase.AuthUsecase
	reports *usecase.ReportUsecase
}

func NewManagerHandler(auth *usecase.AuthUsecase, reports *usecase.ReportUsecase) *ManagerHandler {
	return &ManagerHandler{auth: auth, reports: reports}
}

type ManagerLoginRequest struct {
	Password string `json:"password"`
}

func (h *ManagerHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/manager/login", h.login)

	g := e.Group("/manager")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ManagerRoleGuard())

	g.GET("/summary", h.summary)
	g.GET("/orders", h.orders)
	g.GET("/orders/export", h.export)
}

func (h *ManagerHandler) login(c echo.Context) error {
	var req ManagerLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.auth.ManagerLogin(req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ManagerHandler) summary(c echo.Context) error {
	out, err := h.reports.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ManagerHandler) orders(c echo.Context) error {
	out, err := h.reports.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// ログと同じ列順のCSVをダウンロードさせる
func (h *ManagerHandler) export(c echo.Context) error {
	data, filename, err := h.reports.ExportCSV(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", data)
}
