// Package household implements the day-to-day record keeping around the
// planning engine: pantry inventory, meal history, daily reviews, stored
// preferences and the shopping list.
package household

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mealforge/v1/internal/application/planner"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

const calorieGoalKey = "dailyCalorieGoal"

// Service provides validated CRUD operations over the repositories.
type Service struct {
	inventory outbound.InventoryRepository
	history   outbound.HistoryRepository
	reviews   outbound.ReviewRepository
	prefs     outbound.PreferenceRepository
	plans     outbound.PlanRepository
	shopping  outbound.ShoppingRepository
	logger    *zap.Logger
}

// NewService creates the household service.
func NewService(
	inventory outbound.InventoryRepository,
	history outbound.HistoryRepository,
	reviews outbound.ReviewRepository,
	prefs outbound.PreferenceRepository,
	plans outbound.PlanRepository,
	shopping outbound.ShoppingRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		inventory: inventory,
		history:   history,
		reviews:   reviews,
		prefs:     prefs,
		plans:     plans,
		shopping:  shopping,
		logger:    logger.Named("household"),
	}
}

// ListInventory returns the full pantry snapshot.
func (s *Service) ListInventory(ctx context.Context) ([]meal.InventoryItem, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list inventory", err)
	}
	return items, nil
}

// UpsertInventoryItem stores a pantry item, replacing any existing item
// with the same case-insensitive name. A missing category is classified
// from the name.
func (s *Service) UpsertInventoryItem(ctx context.Context, item meal.InventoryItem) (meal.InventoryItem, error) {
	if meal.CaseFold(item.Name) == "" || len(item.Name) > 200 {
		return meal.InventoryItem{}, errors.NewValidationError("name: must be non-empty and at most 200 characters")
	}
	if item.Quantity < 0 {
		return meal.InventoryItem{}, errors.NewValidationError("quantity: must not be negative")
	}
	if item.Category == "" {
		item.Category = planner.ClassifyIngredient(item.Name)
	} else if !item.Category.IsValid() {
		return meal.InventoryItem{}, errors.NewValidationError(fmt.Sprintf("category: %q is not an allowed value", item.Category))
	}

	if err := s.inventory.Upsert(ctx, item); err != nil {
		return meal.InventoryItem{}, errors.NewDatabaseError("upsert inventory item", err)
	}
	return item, nil
}

// AdjustInventory adds delta to an item's quantity, clamped at zero.
func (s *Service) AdjustInventory(ctx context.Context, name string, delta float64) error {
	err := s.inventory.AdjustQuantity(ctx, name, delta)
	if stderrors.Is(err, meal.ErrInventoryItemNotFound) {
		return errors.NewNotFoundError("inventory item")
	}
	if err != nil {
		return errors.NewDatabaseError("adjust inventory quantity", err)
	}
	return nil
}

// DeleteInventoryItem removes an item by case-insensitive name.
func (s *Service) DeleteInventoryItem(ctx context.Context, name string) error {
	err := s.inventory.Delete(ctx, name)
	if stderrors.Is(err, meal.ErrInventoryItemNotFound) {
		return errors.NewNotFoundError("inventory item")
	}
	if err != nil {
		return errors.NewDatabaseError("delete inventory item", err)
	}
	return nil
}

// RecordMeal stores one eaten meal. EatenAt defaults to now.
func (s *Service) RecordMeal(ctx context.Context, entry meal.HistoryEntry) error {
	if meal.CaseFold(entry.MealName) == "" || len(entry.MealName) > 200 {
		return errors.NewValidationError("mealName: must be non-empty and at most 200 characters")
	}
	if !entry.Cuisine.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("cuisine: %q is not an allowed value", entry.Cuisine))
	}
	if !entry.MealType.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("mealType: %q is not an allowed value", entry.MealType))
	}
	if entry.Rating != nil && (*entry.Rating < 1 || *entry.Rating > 5) {
		return errors.NewValidationError("rating: must be between 1 and 5")
	}
	if entry.Calories != nil && (*entry.Calories < 0 || *entry.Calories > 5000) {
		return errors.NewValidationError("calories: must be between 0 and 5000")
	}
	if entry.EatenAt.IsZero() {
		entry.EatenAt = time.Now().UTC()
	}

	if err := s.history.Record(ctx, entry); err != nil {
		return errors.NewDatabaseError("record meal", err)
	}
	return nil
}

// HistoryBetween returns entries eaten in [from, to), oldest first.
func (s *Service) HistoryBetween(ctx context.Context, from, to time.Time) ([]meal.HistoryEntry, error) {
	entries, err := s.history.EatenBetween(ctx, from, to)
	if err != nil {
		return nil, errors.NewDatabaseError("list history", err)
	}
	return entries, nil
}

// UpsertReview stores the review for a day, replacing any earlier one.
func (s *Service) UpsertReview(ctx context.Context, review meal.DayReview) error {
	if err := review.Validate(); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if review.Date.IsZero() {
		return errors.NewValidationError("date: is required")
	}

	if err := s.reviews.Upsert(ctx, review); err != nil {
		return errors.NewDatabaseError("upsert review", err)
	}
	return nil
}

// RecentReviews returns reviews dated at or after since, newest first.
func (s *Service) RecentReviews(ctx context.Context, since time.Time, limit int) ([]meal.DayReview, error) {
	reviews, err := s.reviews.RecentSince(ctx, since, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list reviews", err)
	}
	return reviews, nil
}

// CalorieGoal returns the stored daily calorie goal, or fallback when
// none is set.
func (s *Service) CalorieGoal(ctx context.Context, fallback int) (int, error) {
	value, err := s.prefs.Get(ctx, calorieGoalKey)
	if stderrors.Is(err, meal.ErrPreferenceNotFound) {
		return fallback, nil
	}
	if err != nil {
		return 0, errors.NewDatabaseError("read calorie goal", err)
	}
	goal, err := strconv.Atoi(value)
	if err != nil || goal <= 0 {
		return fallback, nil
	}
	return goal, nil
}

// SetCalorieGoal stores the daily calorie goal.
func (s *Service) SetCalorieGoal(ctx context.Context, goal int) error {
	if goal <= 0 || goal > 10000 {
		return errors.NewValidationError("dailyCalorieGoal: must be between 1 and 10000")
	}
	if err := s.prefs.Set(ctx, calorieGoalKey, strconv.Itoa(goal)); err != nil {
		return errors.NewDatabaseError("store calorie goal", err)
	}
	return nil
}

// WeekPlan returns the stored slots for [weekStart, weekStart+7d).
func (s *Service) WeekPlan(ctx context.Context, weekStart time.Time) ([]meal.PlanSlot, error) {
	weekStart = weekStart.UTC().Truncate(24 * time.Hour)
	slots, err := s.plans.SlotsBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		return nil, errors.NewDatabaseError("list plan slots", err)
	}
	return slots, nil
}

// ClearWeek removes every stored slot for [weekStart, weekStart+7d).
func (s *Service) ClearWeek(ctx context.Context, weekStart time.Time) error {
	weekStart = weekStart.UTC().Truncate(24 * time.Hour)
	if err := s.plans.DeleteBetween(ctx, weekStart, weekStart.AddDate(0, 0, 7)); err != nil {
		return errors.NewDatabaseError("clear plan slots", err)
	}
	return nil
}

// ShoppingList returns the open shopping-list items.
func (s *Service) ShoppingList(ctx context.Context) ([]meal.ShoppingItem, error) {
	items, err := s.shopping.ListUnpurchased(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list shopping items", err)
	}
	return items, nil
}

// SetShoppingItemPurchased flips the purchased flag on a list item.
func (s *Service) SetShoppingItemPurchased(ctx context.Context, name string, purchased bool) error {
	err := s.shopping.SetPurchased(ctx, name, purchased)
	if stderrors.Is(err, meal.ErrShoppingItemNotFound) {
		return errors.NewNotFoundError("shopping item")
	}
	if err != nil {
		return errors.NewDatabaseError("update shopping item", err)
	}
	return nil
}
