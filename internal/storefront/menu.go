package storefront

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/internal/webserver"
	"github.com/remiedy/catering/pkg/money"
)

func home(c echo.Context) error {
	return ok(c, map[string]interface{}{
		"title":      "Remiedy Event Catering Services",
		"tagline":    "Catching Hearts and Tantalizing Tastebuds",
		"cart_count": webserver.CurrentCart(c).LineCount(),
	})
}

// menuRow is a food item joined with its category name plus a formatted price.
type menuRow struct {
	domain.FoodItem
	CategoryName   string `json:"category_name"`
	PriceFormatted string `json:"price_formatted"`
}

func listMenu(c echo.Context) error {
	var rows []menuRow
	err := getDB(c).Model(&domain.FoodItem{}).
		Select("food_items.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = food_items.category_id").
		Where("food_items.is_available = ?", true).
		Order("categories.name, food_items.name").
		Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load menu")
	}
	for i := range rows {
		rows[i].PriceFormatted = money.Format(rows[i].Price)
	}
	return ok(c, map[string]interface{}{
		"foods":      rows,
		"cart_count": webserver.CurrentCart(c).LineCount(),
	})
}

func foodDetails(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid food ID")
	}
	var row menuRow
	err = getDB(c).Model(&domain.FoodItem{}).
		Select("food_items.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = food_items.category_id").
		Where("food_items.id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Food item not found")
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load food item")
	}
	row.PriceFormatted = money.Format(row.Price)
	return ok(c, row)
}

func contact(c echo.Context) error {
	return ok(c, map[string]interface{}{
		"address":  "Purok 4 Cogon San Jose, Tacloban City",
		"phone":    "+63 9461434687",
		"facebook": "Remiedy Event Catering Services",
		"hours":    "Mon - Sun: 8:00 AM - 8:00 PM",
	})
}
