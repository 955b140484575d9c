// Package storefront serves the visitor pages: menu browsing, the session
// cart, checkout and the contact page. Responses are JSON payloads consumed
// by the presentation layer.
package storefront

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/webserver"
)

// Register wires all visitor routes onto the web server.
func Register() {
	webserver.ApiGET("/", home)
	webserver.ApiGET("/menu", listMenu)
	webserver.ApiGET("/food/:id", foodDetails)
	webserver.ApiGET("/cart", viewCart)
	webserver.ApiPOST("/cart/add/:id", addToCart)
	webserver.ApiPOST("/cart/remove/:id", removeFromCart)
	webserver.ApiGET("/order", checkoutInfo)
	webserver.ApiPOST("/process_order", processOrder)
	webserver.ApiGET("/order_confirmation/:order_id", orderConfirmation)
	webserver.ApiGET("/contact", contact)
}

func getDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": "OK",
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
	})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
