package app

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/remiedy/catering/internal/domain"
	"github.com/remiedy/catering/pkg/common"
	"github.com/remiedy/catering/pkg/imagestore"
)

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "catering"

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash default admin password", zap.Error(err))
		return
	}

	var user domain.SysUser
	err = a.gormDB.Where("username = ?", superUsername).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysUser{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  string(hashedPassword),
			Role:      domain.RoleAdmin,
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Warn("initialized default admin account, change the password",
				zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(user.Password) == ""
	resetRole := !strings.EqualFold(user.Role, domain.RoleAdmin)
	resetStatus := !strings.EqualFold(user.Status, common.ENABLED)

	if !resetPassword && !resetRole && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = string(hashedPassword)
	}
	if resetRole {
		updates["role"] = domain.RoleAdmin
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysUser{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("roleReset", resetRole),
		zap.Bool("statusEnabled", resetStatus))
}

// checkCategories initializes the default menu categories
func (a *Application) checkCategories() {
	defaultCategories := []domain.Category{
		{Name: "Appetizers", Remark: "Starters and finger food"},
		{Name: "Main Dishes", Remark: "Mains served per tray"},
		{Name: "Desserts", Remark: "Sweets and pastries"},
		{Name: "Beverages", Remark: "Drinks and refreshments"},
		{Name: "Party Packages", Remark: "Per-head event bundles"},
	}

	for _, cat := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.Category{}).Where("name = ?", cat.Name).Count(&count)
		if count == 0 {
			cat.ID = common.UUIDint64()
			cat.CreatedAt = time.Now()
			cat.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&cat).Error; err != nil {
				zap.L().Error("failed to create default category", zap.String("name", cat.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("name", cat.Name))
			}
		}
	}
}

// checkFoodItems initializes a small starter menu
func (a *Application) checkFoodItems() {
	var mains domain.Category
	if err := a.gormDB.Where("name = ?", "Main Dishes").First(&mains).Error; err != nil {
		return
	}

	defaultFoods := []domain.FoodItem{
		{Name: "Lechon Belly", Description: "Crispy roasted pork belly, per tray", Price: decimal.NewFromInt(1500)},
		{Name: "Pancit Canton", Description: "Stir fried noodles with vegetables, per tray", Price: decimal.NewFromInt(600)},
		{Name: "Kare-Kare", Description: "Oxtail in peanut sauce, per tray", Price: decimal.NewFromInt(1200)},
	}

	for _, food := range defaultFoods {
		var count int64
		a.gormDB.Model(&domain.FoodItem{}).Where("name = ?", food.Name).Count(&count)
		if count == 0 {
			food.ID = common.UUIDint64()
			food.CategoryID = mains.ID
			food.Image = imagestore.DefaultPlaceholder
			food.IsAvailable = true
			food.CreatedAt = time.Now()
			food.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&food).Error; err != nil {
				zap.L().Error("failed to create default food item", zap.String("name", food.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default food item", zap.String("name", food.Name))
			}
		}
	}
}
