package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups food items on the menu.
type Category struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"uniqueIndex" json:"name" form:"name"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}

// FoodItem is a catalog entry managed by the admin and listed on the menu.
type FoodItem struct {
	ID          int64           `json:"id,string" form:"id"`
	CategoryID  int64           `gorm:"index;not null" json:"category_id,string" form:"category_id"`
	Name        string          `gorm:"index" json:"name" form:"name"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)" json:"price" form:"price"`
	Image       string          `gorm:"size:1024" json:"image" form:"image"`
	IsAvailable bool            `gorm:"default:true" json:"is_available" form:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (FoodItem) TableName() string {
	return "food_items"
}
