package storefront

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/remiedy/catering/internal/cart"
	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/internal/webserver"
	"github.com/remiedy/catering/pkg/common"
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

func seedFood(t *testing.T, db *gorm.DB, name, price string) *domain.FoodItem {
	t.Helper()
	cat := domain.Category{ID: common.UUIDint64(), Name: "Main Dishes " + name}
	require.NoError(t, db.Create(&cat).Error)
	food := domain.FoodItem{
		ID:          common.UUIDint64(),
		CategoryID:  cat.ID,
		Name:        name,
		Price:       decimal.RequireFromString(price),
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&food).Error)
	return &food
}

// newContext builds an echo context carrying the db handle and a session cart,
// the way the webserver middleware would.
func newContext(t *testing.T, db *gorm.DB, crt *cart.Cart, method, path string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(webserver.ContextDBKey, db)
	c.Set(webserver.ContextCartKey, crt)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	return c, rec
}

func TestAddToCartKnownItem(t *testing.T) {
	db := testDB(t)
	food := seedFood(t, db, "Lechon Belly", "1500.00")
	crt := cart.New()

	c, rec := newContext(t, db, crt, http.MethodPost, "/cart/add/1", "id", strconv.FormatInt(food.ID, 10))
	require.NoError(t, addToCart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, crt.LineCount())
	assert.True(t, crt.Subtotal().Equal(decimal.RequireFromString("1500.00")))
}

func TestAddToCartUnknownItemIsSilentNoop(t *testing.T) {
	db := testDB(t)
	crt := cart.New()

	c, rec := newContext(t, db, crt, http.MethodPost, "/cart/add/999", "id", "999")
	require.NoError(t, addToCart(c))

	assert.Equal(t, http.StatusOK, rec.Code, "unknown ids do not error")
	assert.True(t, crt.Empty())
}

func TestRemoveFromCartUnknownIsNoop(t *testing.T) {
	db := testDB(t)
	food := seedFood(t, db, "Pancit", "600.00")
	crt := cart.New()
	crt.AddItem(food)

	c, _ := newContext(t, db, crt, http.MethodPost, "/cart/remove/12345", "id", "12345")
	require.NoError(t, removeFromCart(c))
	assert.Equal(t, 1, crt.LineCount())
}

func TestViewCart(t *testing.T) {
	db := testDB(t)
	food := seedFood(t, db, "Halo-Halo", "50.00")
	crt := cart.New()
	crt.AddItem(food)
	crt.AddItem(food)

	c, rec := newContext(t, db, crt, http.MethodGet, "/cart")
	require.NoError(t, viewCart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
	assert.Contains(t, rec.Body.String(), "Halo-Halo")
}

func TestCheckoutInfoEmptyCartRedirects(t *testing.T) {
	db := testDB(t)
	c, rec := newContext(t, db, cart.New(), http.MethodGet, "/order")
	require.NoError(t, checkoutInfo(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Body.String(), "/cart")
}
