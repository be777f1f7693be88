package gorm

import (
	"context"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository implements the day-review repository interface using GORM
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) outbound.ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert stores the review, replacing any existing review for the same
// day. Dates are normalized to UTC midnight before writing.
func (r *ReviewRepository) Upsert(ctx context.Context, review meal.DayReview) error {
	model := &DayReviewModel{
		Date:         review.Date.UTC().Truncate(24 * time.Hour),
		Variety:      review.Variety,
		Effort:       review.Effort,
		Satisfaction: review.Satisfaction,
		Notes:        review.Notes,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"variety", "effort", "satisfaction", "notes", "updated_at",
		}),
	}).Create(model)

	return result.Error
}

// RecentSince returns reviews dated at or after since, newest first,
// capped at limit
func (r *ReviewRepository) RecentSince(ctx context.Context, since time.Time, limit int) ([]meal.DayReview, error) {
	var models []DayReviewModel

	query := r.db.WithContext(ctx).
		Where("date >= ?", since).
		Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if result := query.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	reviews := make([]meal.DayReview, len(models))
	for i, model := range models {
		reviews[i] = DayReviewToDomain(model)
	}
	return reviews, nil
}
