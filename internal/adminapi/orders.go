package adminapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shopspring/decimal"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/internal/ordering"
	"github.com/remiedy/catering/internal/webserver"
)

func registerOrderRoutes() {
	webserver.AdminGET("/dashboard", adminDashboard)
	webserver.AdminGET("/orders", listOrders)
	webserver.AdminGET("/orders/export", exportOrders)
	webserver.AdminGET("/orders/:id", getOrder)
	webserver.AdminPUT("/orders/:id/status", updateOrderStatus)
}

func listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	svc := ordering.NewService(GetDB(c))
	rows, total, err := svc.ListOrders(c.Request().Context(), page, pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	svc := ordering.NewService(GetDB(c))
	order, err := svc.GetOrder(c.Request().Context(), id)
	if errors.Is(err, ordering.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}
	items, err := svc.GetOrderItems(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order items", err.Error())
	}
	return ok(c, map[string]interface{}{
		"order": order,
		"items": items,
	})
}

type orderStatusPayload struct {
	Status        string `json:"status" form:"status"`
	PaymentStatus string `json:"payment_status" form:"payment_status"`
}

func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	if payload.Status == "" && payload.PaymentStatus == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Nothing to update", nil)
	}
	if payload.Status != "" && !contains(domain.OrderStatuses, payload.Status) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", nil)
	}
	if payload.PaymentStatus != "" && !contains(domain.PaymentStatuses, payload.PaymentStatus) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown payment status", nil)
	}

	svc := ordering.NewService(GetDB(c))
	err = svc.UpdateStatus(c.Request().Context(), id, payload.Status, payload.PaymentStatus)
	if errors.Is(err, ordering.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", err.Error())
	}
	writeOprLog(c, "admin", "update_order", "updated order status")
	return ok(c, map[string]interface{}{"id": id})
}

func exportOrders(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="orders-`+time.Now().Format("20060102")+`.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	svc := ordering.NewService(GetDB(c))
	return svc.ExportOrdersCSV(c.Request().Context(), c.Response())
}

func adminDashboard(c echo.Context) error {
	db := GetDB(c)

	var foodCount, orderCount, pendingCount int64
	db.Model(&domain.FoodItem{}).Count(&foodCount)
	db.Model(&domain.Order{}).Count(&orderCount)
	db.Model(&domain.Order{}).Where("status = ?", domain.OrderStatusPending).Count(&pendingCount)

	var revenue decimal.NullDecimal
	db.Model(&domain.Order{}).
		Where("status != ?", domain.OrderStatusCancelled).
		Select("SUM(total_amount)").Scan(&revenue)

	stats := map[string]interface{}{
		"food_count":     foodCount,
		"order_count":    orderCount,
		"pending_orders": pendingCount,
		"revenue":        revenue.Decimal,
	}

	// host health, best effort
	if cpuuse, err := cpu.Percent(0, false); err == nil && len(cpuuse) > 0 {
		stats["cpu_percent"] = cpuuse[0]
	}
	if meminfo, err := mem.VirtualMemory(); err == nil {
		stats["mem_used_mb"] = meminfo.Used / 1024 / 1024
		stats["mem_percent"] = meminfo.UsedPercent
	}

	return ok(c, stats)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
