package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/internal/webserver"
	"github.com/remiedy/catering/pkg/common"
)

type foodPayload struct {
	Name        string `json:"name" form:"name"`
	CategoryID  string `json:"category_id" form:"category_id"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	IsAvailable string `json:"is_available" form:"is_available"`
}

// registerFoodRoutes registers catalog management endpoints
func registerFoodRoutes() {
	webserver.AdminGET("/foods", listFoods)
	webserver.AdminGET("/foods/:id", getFood)
	webserver.AdminPOST("/foods", createFood)
	webserver.AdminPOST("/foods/:id", updateFood)
	webserver.AdminDELETE("/foods/:id", deleteFood)
}

// foodRow is a catalog entry joined with its category name.
type foodRow struct {
	domain.FoodItem
	CategoryName string `json:"category_name"`
}

func listFoods(c echo.Context) error {
	page, pageSize := parsePagination(c)

	// Sorting: whitelist columns to avoid SQL injection
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	allowed := map[string]string{
		"id":         "food_items.id",
		"name":       "food_items.name",
		"price":      "food_items.price",
		"created_at": "food_items.created_at",
	}
	sortCol, okcol := allowed[sortField]
	if !okcol {
		sortCol = "food_items.id"
	}

	db := GetDB(c).Model(&domain.FoodItem{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		db = db.Where("LOWER(food_items.name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query food items", err.Error())
	}

	var rows []foodRow
	err := db.
		Select("food_items.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = food_items.category_id").
		Order(sortCol + " " + order).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query food items", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getFood(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid food ID", nil)
	}
	var food domain.FoodItem
	if err := GetDB(c).Where("id = ?", id).First(&food).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Food item not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query food item", err.Error())
	}
	return ok(c, food)
}

func (p *foodPayload) validate() (categoryID int64, price decimal.Decimal, errCode, errMsg string) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return 0, decimal.Zero, "MISSING_NAME", "Food name is required"
	}
	categoryID = int64(common.ToInt(p.CategoryID))
	if categoryID == 0 {
		return 0, decimal.Zero, "MISSING_CATEGORY", "Category is required"
	}
	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil || price.IsNegative() {
		return 0, decimal.Zero, "INVALID_PRICE", "Price must be a non-negative amount"
	}
	return categoryID, price, "", ""
}

func createFood(c echo.Context) error {
	var payload foodPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse food item", err.Error())
	}
	categoryID, price, code, msg := payload.validate()
	if code != "" {
		return fail(c, http.StatusBadRequest, code, msg, nil)
	}

	var category domain.Category
	if err := GetDB(c).Where("id = ?", categoryID).First(&category).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Category does not exist", nil)
	}

	// image upload is optional; the store falls back to the placeholder
	fh, _ := c.FormFile("image")
	image, err := webserver.Instance().Images().SaveUpload(fh)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store image", err.Error())
	}

	now := time.Now()
	food := domain.FoodItem{
		ID:          common.UUIDint64(),
		CategoryID:  categoryID,
		Name:        payload.Name,
		Description: common.CleanText(payload.Description),
		Price:       price,
		Image:       image,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&food).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create food item", err.Error())
	}
	writeOprLog(c, "admin", "add_food", "created food item "+food.Name)
	return ok(c, food)
}

func updateFood(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid food ID", nil)
	}
	var food domain.FoodItem
	if err := GetDB(c).Where("id = ?", id).First(&food).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Food item not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query food item", err.Error())
	}

	var payload foodPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse food item", err.Error())
	}
	categoryID, price, code, msg := payload.validate()
	if code != "" {
		return fail(c, http.StatusBadRequest, code, msg, nil)
	}

	// replacement image is optional; keep the current one otherwise
	image := food.Image
	if fh, ferr := c.FormFile("image"); ferr == nil && fh != nil {
		image, err = webserver.Instance().Images().SaveUpload(fh)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store image", err.Error())
		}
	}

	food.Name = payload.Name
	food.CategoryID = categoryID
	food.Description = common.CleanText(payload.Description)
	food.Price = price
	food.Image = image
	if payload.IsAvailable != "" {
		food.IsAvailable = common.ToInt(payload.IsAvailable) != 0
	}
	food.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&food).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update food item", err.Error())
	}
	writeOprLog(c, "admin", "edit_food", "updated food item "+food.Name)
	return ok(c, food)
}

// deleteFood removes only the catalog row; order items referencing it keep
// their own snapshots and stay intact.
func deleteFood(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid food ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.FoodItem{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete food item", err.Error())
	}
	writeOprLog(c, "admin", "delete_food", "deleted food item")
	return ok(c, map[string]interface{}{"id": id})
}
