package gorm

import (
	"context"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// HistoryRepository implements the meal-history repository interface using GORM
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) outbound.HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record stores one eaten meal
func (r *HistoryRepository) Record(ctx context.Context, entry meal.HistoryEntry) error {
	model := HistoryEntryToModel(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// DistinctNamesSince returns distinct meal names eaten at or after since
func (r *HistoryRepository) DistinctNamesSince(ctx context.Context, since time.Time) ([]string, error) {
	var names []string

	result := r.db.WithContext(ctx).
		Model(&MealHistoryModel{}).
		Where("eaten_at >= ?", since).
		Distinct("meal_name").
		Order("meal_name ASC").
		Pluck("meal_name", &names)
	if result.Error != nil {
		return nil, result.Error
	}
	return names, nil
}

// CuisinesSince returns the cuisines of meals eaten at or after since,
// in eaten order
func (r *HistoryRepository) CuisinesSince(ctx context.Context, since time.Time) ([]meal.Cuisine, error) {
	var raw []string

	result := r.db.WithContext(ctx).
		Model(&MealHistoryModel{}).
		Where("eaten_at >= ?", since).
		Order("eaten_at ASC").
		Pluck("cuisine", &raw)
	if result.Error != nil {
		return nil, result.Error
	}

	cuisines := make([]meal.Cuisine, len(raw))
	for i, c := range raw {
		cuisines[i] = meal.Cuisine(c)
	}
	return cuisines, nil
}

// RatedSince returns rated entries eaten at or after since
func (r *HistoryRepository) RatedSince(ctx context.Context, since time.Time) ([]meal.HistoryEntry, error) {
	var models []MealHistoryModel

	result := r.db.WithContext(ctx).
		Where("rating IS NOT NULL AND eaten_at >= ?", since).
		Order("eaten_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]meal.HistoryEntry, len(models))
	for i, model := range models {
		entries[i] = HistoryEntryToDomain(model)
	}
	return entries, nil
}

// CaloriesBetween sums the calories of meals eaten in [from, to)
func (r *HistoryRepository) CaloriesBetween(ctx context.Context, from, to time.Time) (int, error) {
	var total int64

	result := r.db.WithContext(ctx).
		Model(&MealHistoryModel{}).
		Where("eaten_at >= ? AND eaten_at < ?", from, to).
		Select("COALESCE(SUM(calories), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(total), nil
}

// EatenBetween returns entries eaten in [from, to), oldest first
func (r *HistoryRepository) EatenBetween(ctx context.Context, from, to time.Time) ([]meal.HistoryEntry, error) {
	var models []MealHistoryModel

	result := r.db.WithContext(ctx).
		Where("eaten_at >= ? AND eaten_at < ?", from, to).
		Order("eaten_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]meal.HistoryEntry, len(models))
	for i, model := range models {
		entries[i] = HistoryEntryToDomain(model)
	}
	return entries, nil
}
