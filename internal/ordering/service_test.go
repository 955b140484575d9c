package ordering

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/remiedy/catering/internal/cart"
	"github.com/remiedy/catering/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catering.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func testCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	a := &domain.FoodItem{ID: 1, Name: "Lechon Belly", Price: decimal.RequireFromString("100.00")}
	b := &domain.FoodItem{ID: 2, Name: "Halo-Halo", Price: decimal.RequireFromString("50.00")}
	c.AddItem(a)
	c.AddItem(a)
	c.AddItem(b)
	return c
}

func TestSubmitOrderPersistsAndClearsCart(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	crt := testCart(t)

	orderID, err := svc.SubmitOrder(context.Background(), CheckoutForm{
		CustomerName:    "  Maria <b>Santos</b> ",
		CustomerPhone:   "09171234567",
		CustomerEmail:   "maria@example.com",
		EventDate:       "2026-10-01",
		EventLocation:   "Tacloban City",
		GuestCount:      "120",
		SpecialRequests: "no peanuts",
	}, crt)
	require.NoError(t, err)
	require.NotZero(t, orderID)
	assert.True(t, crt.Empty(), "cart must be cleared after a successful order")

	order, err := svc.GetOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("250.00")), "subtotal = %s", order.Subtotal)
	assert.True(t, order.ServiceFee.Equal(decimal.RequireFromString("25.00")), "fee = %s", order.ServiceFee)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("275.00")), "total = %s", order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusUnpaid, order.PaymentStatus)
	assert.Equal(t, 120, order.GuestCount)
	assert.Equal(t, "Maria &lt;b&gt;Santos&lt;/b&gt;", order.CustomerName)

	items, err := svc.GetOrderItems(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal)
	}
	assert.True(t, sum.Equal(order.Subtotal), "order item subtotals must sum to the order subtotal")
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	svc := NewService(testDB(t))
	_, err := svc.SubmitOrder(context.Background(), CheckoutForm{CustomerName: "x"}, cart.New())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitOrderRollsBackOnItemFailure(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)
	crt := testCart(t)

	// make the order_items insert fail mid-transaction
	require.NoError(t, db.Migrator().DropTable(&domain.OrderItem{}))

	_, err := svc.SubmitOrder(context.Background(), CheckoutForm{CustomerName: "Maria"}, crt)
	require.Error(t, err)

	var orders int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&orders).Error)
	assert.Zero(t, orders, "no orphan order row may survive a failed item write")
	assert.False(t, crt.Empty(), "cart must be kept when the order did not persist")
}

func TestListOrdersJoinsCustomerAccount(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	require.NoError(t, db.Create(&domain.SysUser{
		ID: 42, Username: "maria", Role: domain.RoleCustomer, Status: "enabled",
	}).Error)

	crt := testCart(t)
	_, err := svc.SubmitOrder(context.Background(), CheckoutForm{UserID: 42, CustomerName: "Maria"}, crt)
	require.NoError(t, err)

	guest := cart.New()
	guest.AddItem(&domain.FoodItem{ID: 3, Name: "Pancit", Price: decimal.RequireFromString("75.00")})
	_, err = svc.SubmitOrder(context.Background(), CheckoutForm{CustomerName: "Walk-in"}, guest)
	require.NoError(t, err)

	rows, total, err := svc.ListOrders(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, rows, 2)

	accounts := map[string]string{}
	for _, row := range rows {
		accounts[row.CustomerName] = row.CustomerAccount
	}
	assert.Equal(t, "maria", accounts["Maria"])
	assert.Equal(t, "", accounts["Walk-in"], "guest orders have no account to join")
}

func TestUpdateStatus(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	crt := testCart(t)
	id, err := svc.SubmitOrder(context.Background(), CheckoutForm{CustomerName: "Maria"}, crt)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), id, domain.OrderStatusConfirmed, domain.PaymentStatusPaid))
	order, err := svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), 999999, domain.OrderStatusCancelled, ""), ErrNotFound)
}

func TestExportOrdersCSV(t *testing.T) {
	db := testDB(t)
	svc := NewService(db)

	crt := testCart(t)
	_, err := svc.SubmitOrder(context.Background(), CheckoutForm{
		CustomerName: "Maria", EventDate: "2026-10-01", GuestCount: "80",
	}, crt)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, svc.ExportOrdersCSV(context.Background(), &sb))

	out := sb.String()
	assert.Contains(t, out, "order_id")
	assert.Contains(t, out, "Maria")
	assert.Contains(t, out, "275.00")
}
