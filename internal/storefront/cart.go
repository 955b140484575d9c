package storefront

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/internal/webserver"
	"github.com/remiedy/catering/pkg/money"
)

func viewCart(c echo.Context) error {
	crt := webserver.CurrentCart(c)
	subtotal := crt.Subtotal()
	return ok(c, map[string]interface{}{
		"lines":              crt.Lines(),
		"count":              crt.LineCount(),
		"subtotal":           subtotal,
		"subtotal_formatted": money.Format(subtotal),
	})
}

// addToCart looks the item up and adds one unit. An unknown id is a silent
// no-op: the visitor is sent back to the menu either way.
func addToCart(c echo.Context) error {
	crt := webserver.CurrentCart(c)
	id, err := parseIDParam(c, "id")
	if err == nil {
		var food domain.FoodItem
		lookupErr := getDB(c).Where("id = ?", id).First(&food).Error
		switch {
		case lookupErr == nil:
			crt.AddItem(&food)
		case errors.Is(lookupErr, gorm.ErrRecordNotFound):
			// fall through, nothing added
		default:
			zap.L().Error("cart add lookup failed",
				zap.String("session_id", webserver.SessionID(c)),
				zap.Int64("food_id", id),
				zap.Error(lookupErr))
		}
	}
	return ok(c, map[string]interface{}{
		"count":    crt.LineCount(),
		"redirect": "/menu",
	})
}

func removeFromCart(c echo.Context) error {
	crt := webserver.CurrentCart(c)
	if id, err := parseIDParam(c, "id"); err == nil {
		crt.RemoveItem(id)
	}
	return ok(c, map[string]interface{}{
		"count":    crt.LineCount(),
		"redirect": "/cart",
	})
}
