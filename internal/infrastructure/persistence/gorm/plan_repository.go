package gorm

import (
	"context"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanRepository implements the weekly-plan repository interface using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// UpsertSlot stores the slot, overwriting any existing payload for the
// same (date, mealType) key. Dates are normalized to UTC midnight.
func (r *PlanRepository) UpsertSlot(ctx context.Context, slot meal.PlanSlot) error {
	model := &PlanSlotModel{
		Date:     slot.Date.UTC().Truncate(24 * time.Hour),
		MealType: string(slot.MealType),
		Payload:  PayloadColumn(slot.Meal),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "meal_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(model)

	return result.Error
}

// SlotsBetween returns slots dated in [from, to), ordered by date then
// meal type in breakfast, lunch, dinner, snack order
func (r *PlanRepository) SlotsBetween(ctx context.Context, from, to time.Time) ([]meal.PlanSlot, error) {
	var models []PlanSlotModel

	result := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC, CASE meal_type WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 WHEN 'dinner' THEN 2 ELSE 3 END").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	slots := make([]meal.PlanSlot, len(models))
	for i, model := range models {
		slots[i] = PlanSlotToDomain(model)
	}
	return slots, nil
}

// DeleteBetween removes every slot dated in [from, to)
func (r *PlanRepository) DeleteBetween(ctx context.Context, from, to time.Time) error {
	return r.db.WithContext(ctx).
		Delete(&PlanSlotModel{}, "date >= ? AND date < ?", from, to).Error
}
