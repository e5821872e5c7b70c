package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Session *handler.SessionHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
	Manager *handler.ManagerHandler
}

// Start はルートを登録してHTTPサーバを起動する。
func Start(addr string, cfg config.Config, hs Handlers) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	hs.Session.RegisterRoutes(e, cfg)
	hs.Catalog.RegisterRoutes(e, cfg)
	hs.Cart.RegisterRoutes(e, cfg)
	hs.Order.RegisterRoutes(e, cfg)
	hs.Manager.RegisterRoutes(e, cfg)

	return e.Start(addr)
}
