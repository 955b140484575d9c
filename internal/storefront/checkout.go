package storefront

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/remiedy/catering/internal/ordering"
	"github.com/remiedy/catering/internal/webserver"
	"github.com/remiedy/catering/pkg/money"
)

// checkoutInfo returns what the checkout form needs; an empty cart sends the
// visitor back to the cart page.
func checkoutInfo(c echo.Context) error {
	crt := webserver.CurrentCart(c)
	if crt.Empty() {
		return c.JSON(http.StatusSeeOther, map[string]interface{}{
			"code":     "EMPTY_CART",
			"redirect": "/cart",
		})
	}
	subtotal := crt.Subtotal()
	fee := money.ServiceFee(subtotal)
	return ok(c, map[string]interface{}{
		"lines":       crt.Lines(),
		"subtotal":    subtotal,
		"service_fee": fee,
		"total":       money.Total(subtotal, fee),
	})
}

func processOrder(c echo.Context) error {
	var form ordering.CheckoutForm
	if err := c.Bind(&form); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order form")
	}

	crt := webserver.CurrentCart(c)
	svc := ordering.NewService(getDB(c))
	orderID, err := svc.SubmitOrder(c.Request().Context(), form, crt)
	if errors.Is(err, ordering.ErrEmptyCart) {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Your cart is empty")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "ORDER_FAILED", "Order processing failed, please try again")
	}

	return ok(c, map[string]interface{}{
		"order_id": orderID,
		"redirect": "/order_confirmation/" + strconv.FormatInt(orderID, 10),
	})
}

func orderConfirmation(c echo.Context) error {
	id, err := parseIDParam(c, "order_id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}
	svc := ordering.NewService(getDB(c))
	order, err := svc.GetOrder(c.Request().Context(), id)
	if errors.Is(err, ordering.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load order")
	}
	items, err := svc.GetOrderItems(c.Request().Context(), order.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load order items")
	}
	return ok(c, map[string]interface{}{
		"order":           order,
		"items":           items,
		"total_formatted": money.Format(order.TotalAmount),
	})
}
