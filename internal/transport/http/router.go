package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopper-api/internal/handlers"
	"shopper-api/internal/middleware"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	CartHandler    *handlers.CartHandler
	UploadHandler  *handlers.UploadHandler
	SearchHandler  *handlers.SearchHandler
}

// Register wires the public API. Paths are flat, they are consumed by
// storefront clients that predate this server.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Shopper API running")
	})

	e.Static("/images", handlers.UploadDir)
	e.POST("/upload", d.UploadHandler.Upload)

	e.POST("/addproduct", d.ProductHandler.AddProduct)
	e.POST("/deleteproduct", d.ProductHandler.DeleteProduct)
	e.GET("/allproducts", d.ProductHandler.AllProducts)
	e.GET("/searchproducts", d.SearchHandler.Search)

	e.POST("/signup", d.AuthHandler.Signup)
	e.POST("/login", d.AuthHandler.Login)

	authed := e.Group("", middleware.FetchUser())
	authed.POST("/addtocart", d.CartHandler.AddToCart)
	authed.POST("/removefromcart", d.CartHandler.RemoveFromCart)
	authed.POST("/clearcart", d.CartHandler.ClearCart)
	authed.POST("/getdataforcart", d.CartHandler.GetCart)
}
