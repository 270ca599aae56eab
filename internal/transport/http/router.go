package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/handlers"
	authmw "github.com/bazaarnow/marketplace/internal/middleware/auth"
)

type Deps struct {
	Core            *app.Core
	JWTSecret       []byte
	AuthHandler     *handlers.AuthHandler
	CatalogHandler  *handlers.CatalogHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	OrderHandler    *handlers.OrderHandler
	SearchHandler   *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	v1.GET("/stores", d.CatalogHandler.ListStores)
	v1.GET("/stores/:id", d.CatalogHandler.GetStore)
	v1.GET("/stores/:id/products", d.CatalogHandler.StoreProducts)
	v1.GET("/products", d.CatalogHandler.ListProducts)
	v1.GET("/products/:id", d.CatalogHandler.GetProduct)
	v1.GET("/search", d.SearchHandler.Search)

	v1.POST("/login/:role", d.AuthHandler.Login)
	v1.POST("/logout/:role", d.AuthHandler.Logout)
	v1.GET("/session/:role", d.AuthHandler.Session)

	// guests may shop and check out without signing in
	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:productId", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:productId", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.Clear)

	v1.POST("/checkout", d.CheckoutHandler.Checkout)

	orders := v1.Group("/orders/:role", authmw.RequireRole(d.Core, d.JWTSecret))
	orders.GET("", d.OrderHandler.List)
	orders.POST("/:id/status", d.OrderHandler.Advance)
}
