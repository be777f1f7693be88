package gorm

import (
	"context"
	"errors"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository implements the keyed-preference repository
// interface using GORM
type PreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) outbound.PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the stored value for key
func (r *PreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	var model PreferenceModel

	result := r.db.WithContext(ctx).First(&model, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", meal.ErrPreferenceNotFound
		}
		return "", result.Error
	}
	return model.Value, nil
}

// Set stores the value for key, replacing any existing value
func (r *PreferenceRepository) Set(ctx context.Context, key, value string) error {
	model := &PreferenceModel{Key: key, Value: value}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model)

	return result.Error
}
