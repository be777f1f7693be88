package gorm

import (
	"context"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// ShoppingRepository implements the shopping-list repository interface
// using GORM
type ShoppingRepository struct {
	db *gorm.DB
}

// NewShoppingRepository creates a new shopping repository
func NewShoppingRepository(db *gorm.DB) outbound.ShoppingRepository {
	return &ShoppingRepository{db: db}
}

// ListUnpurchased returns open list items ordered by category then name
func (r *ShoppingRepository) ListUnpurchased(ctx context.Context) ([]meal.ShoppingItem, error) {
	var models []ShoppingItemModel

	result := r.db.WithContext(ctx).
		Where("purchased = ?", false).
		Order("category ASC, name_folded ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]meal.ShoppingItem, len(models))
	for i, model := range models {
		items[i] = ShoppingItemToDomain(model)
	}
	return items, nil
}

// CreateBatch stores the given items in one insert
func (r *ShoppingRepository) CreateBatch(ctx context.Context, items []meal.ShoppingItem) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]*ShoppingItemModel, len(items))
	for i, item := range items {
		models[i] = ShoppingItemToModel(item)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

// SetPurchased flips the purchased flag on the open item with the given
// case-insensitive name
func (r *ShoppingRepository) SetPurchased(ctx context.Context, name string, purchased bool) error {
	result := r.db.WithContext(ctx).
		Model(&ShoppingItemModel{}).
		Where("name_folded = ? AND purchased = ?", meal.CaseFold(name), !purchased).
		Update("purchased", purchased)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return meal.ErrShoppingItemNotFound
	}
	return nil
}
