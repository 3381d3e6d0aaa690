package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
}

// New はecho本体を組み立てる。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	//リクエストログとpanic回収
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e, cfg, h)

	return e
}

// Start はブロックしてサーバーを動かす。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
