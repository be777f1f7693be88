package gorm

import (
	"github.com/mealforge/v1/internal/domain/meal"
)

// InventoryItemToModel converts a domain inventory item to its GORM model
func InventoryItemToModel(item meal.InventoryItem) *InventoryItemModel {
	return &InventoryItemModel{
		Name:       item.Name,
		NameFolded: meal.CaseFold(item.Name),
		Category:   string(item.Category),
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		LowStockAt: item.LowStockAt,
	}
}

// InventoryItemToDomain converts a GORM model to a domain inventory item
func InventoryItemToDomain(model InventoryItemModel) meal.InventoryItem {
	return meal.InventoryItem{
		Name:       model.Name,
		Category:   meal.InventoryCategory(model.Category),
		Quantity:   model.Quantity,
		Unit:       model.Unit,
		LowStockAt: model.LowStockAt,
	}
}

// HistoryEntryToModel converts a domain history entry to its GORM model
func HistoryEntryToModel(entry meal.HistoryEntry) *MealHistoryModel {
	return &MealHistoryModel{
		MealName: entry.MealName,
		Cuisine:  string(entry.Cuisine),
		MealType: string(entry.MealType),
		EatenAt:  entry.EatenAt,
		Rating:   entry.Rating,
		Calories: entry.Calories,
		Notes:    entry.Notes,
	}
}

// HistoryEntryToDomain converts a GORM model to a domain history entry
func HistoryEntryToDomain(model MealHistoryModel) meal.HistoryEntry {
	return meal.HistoryEntry{
		MealName: model.MealName,
		Cuisine:  meal.Cuisine(model.Cuisine),
		MealType: meal.MealType(model.MealType),
		EatenAt:  model.EatenAt,
		Rating:   model.Rating,
		Calories: model.Calories,
		Notes:    model.Notes,
	}
}

// DayReviewToDomain converts a GORM model to a domain day review
func DayReviewToDomain(model DayReviewModel) meal.DayReview {
	return meal.DayReview{
		Date:         model.Date,
		Variety:      model.Variety,
		Effort:       model.Effort,
		Satisfaction: model.Satisfaction,
		Notes:        model.Notes,
	}
}

// PlanSlotToDomain converts a GORM model to a domain plan slot
func PlanSlotToDomain(model PlanSlotModel) meal.PlanSlot {
	return meal.PlanSlot{
		Date:     model.Date,
		MealType: meal.MealType(model.MealType),
		Meal:     meal.Payload(model.Payload),
	}
}

// ShoppingItemToModel converts a domain shopping item to its GORM model
func ShoppingItemToModel(item meal.ShoppingItem) *ShoppingItemModel {
	return &ShoppingItemModel{
		Name:       item.Name,
		NameFolded: meal.CaseFold(item.Name),
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		Category:   string(item.Category),
		Purchased:  item.Purchased,
	}
}

// ShoppingItemToDomain converts a GORM model to a domain shopping item
func ShoppingItemToDomain(model ShoppingItemModel) meal.ShoppingItem {
	return meal.ShoppingItem{
		Name:      model.Name,
		Quantity:  model.Quantity,
		Unit:      model.Unit,
		Category:  meal.InventoryCategory(model.Category),
		Purchased: model.Purchased,
	}
}
