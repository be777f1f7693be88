package gorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository implements the inventory repository interface using GORM
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) outbound.InventoryRepository {
	return &InventoryRepository{db: db}
}

// List returns every pantry item ordered by category then name
func (r *InventoryRepository) List(ctx context.Context) ([]meal.InventoryItem, error) {
	var models []InventoryItemModel

	result := r.db.WithContext(ctx).
		Order("category ASC, name_folded ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]meal.InventoryItem, len(models))
	for i, model := range models {
		items[i] = InventoryItemToDomain(model)
	}
	return items, nil
}

// FindByName finds a pantry item by case-insensitive name
func (r *InventoryRepository) FindByName(ctx context.Context, name string) (*meal.InventoryItem, error) {
	var model InventoryItemModel

	result := r.db.WithContext(ctx).
		First(&model, "name_folded = ?", meal.CaseFold(name))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, meal.ErrInventoryItemNotFound
		}
		return nil, result.Error
	}

	item := InventoryItemToDomain(model)
	return &item, nil
}

// Upsert creates the item or replaces an existing row with the same
// case-folded name
func (r *InventoryRepository) Upsert(ctx context.Context, item meal.InventoryItem) error {
	model := InventoryItemToModel(item)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name_folded"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "quantity", "unit", "low_stock_at", "updated_at",
		}),
	}).Create(model)

	return result.Error
}

// AdjustQuantity adds delta to the stored quantity, clamping at zero
func (r *InventoryRepository) AdjustQuantity(ctx context.Context, name string, delta float64) error {
	result := r.db.WithContext(ctx).
		Model(&InventoryItemModel{}).
		Where("name_folded = ?", meal.CaseFold(name)).
		Update("quantity", gorm.Expr("CASE WHEN quantity + ? < 0 THEN 0 ELSE quantity + ? END", delta, delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return meal.ErrInventoryItemNotFound
	}
	return nil
}

// Delete removes a pantry item by case-insensitive name
func (r *InventoryRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).
		Delete(&InventoryItemModel{}, "name_folded = ?", meal.CaseFold(name))
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return meal.ErrInventoryItemNotFound
	}
	return nil
}
