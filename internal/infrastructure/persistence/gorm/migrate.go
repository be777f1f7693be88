package gorm

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every model
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&InventoryItemModel{},
		&MealHistoryModel{},
		&DayReviewModel{},
		&PreferenceModel{},
		&PlanSlotModel{},
		&ShoppingItemModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
