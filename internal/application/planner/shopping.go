package planner

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// DeriveShoppingList aggregates the ingredients of every planned meal
// in [weekStart, weekStart+7d), subtracts current inventory and
// persists the resulting items. The model is never involved. A week
// with zero planned slots is an error, not an empty list.
func (s *Service) DeriveShoppingList(ctx context.Context, weekStart time.Time) ([]meal.ShoppingItem, error) {
	weekStart = weekStart.UTC().Truncate(24 * time.Hour)
	weekEnd := weekStart.AddDate(0, 0, 7)

	slots, err := s.plans.SlotsBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, errors.NewDatabaseError("load plan slots", err)
	}
	if len(slots) == 0 {
		return nil, errors.NewPlanEmptyError()
	}

	required := aggregateIngredients(slots)

	inventory, err := s.inventory.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load inventory", err)
	}
	onHand := make(map[string]float64, len(inventory))
	for _, item := range inventory {
		onHand[meal.CaseFold(item.Name)] += item.Quantity
	}

	items := make([]meal.ShoppingItem, 0, len(required))
	for _, req := range required {
		need := roundQuantity(req.Quantity - onHand[meal.CaseFold(req.Name)])
		if need <= 0 {
			continue
		}
		items = append(items, meal.ShoppingItem{
			Name:     req.Name,
			Quantity: need,
			Unit:     req.Unit,
			Category: ClassifyIngredient(req.Name),
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})

	if err := s.persistNewItems(ctx, items); err != nil {
		return nil, err
	}

	s.logger.Info("shopping list derived",
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int("items", len(items)))

	return items, nil
}

// aggregateIngredients sums ingredient quantities across slots, keyed
// by case-folded name. The first-seen spelling and unit are carried.
func aggregateIngredients(slots []meal.PlanSlot) []meal.ShoppingItem {
	index := make(map[string]int)
	var out []meal.ShoppingItem

	for _, slot := range slots {
		for _, ing := range slot.Meal.Ingredients {
			if ing.Name == "" {
				continue
			}
			key := meal.CaseFold(ing.Name)
			if i, ok := index[key]; ok {
				out[i].Quantity = roundQuantity(out[i].Quantity + ing.Quantity)
				continue
			}
			index[key] = len(out)
			out = append(out, meal.ShoppingItem{
				Name:     ing.Name,
				Quantity: roundQuantity(ing.Quantity),
				Unit:     ing.Unit,
			})
		}
	}
	return out
}

// persistNewItems stores items not already on the list unpurchased.
func (s *Service) persistNewItems(ctx context.Context, items []meal.ShoppingItem) error {
	existing, err := s.shopping.ListUnpurchased(ctx)
	if err != nil {
		return errors.NewDatabaseError("load shopping list", err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		present[meal.CaseFold(item.Name)] = struct{}{}
	}

	var fresh []meal.ShoppingItem
	for _, item := range items {
		if _, ok := present[meal.CaseFold(item.Name)]; ok {
			continue
		}
		fresh = append(fresh, item)
	}
	if len(fresh) == 0 {
		return nil
	}

	if err := s.shopping.CreateBatch(ctx, fresh); err != nil {
		return errors.NewDatabaseError("persist shopping items", err)
	}
	return nil
}

// roundQuantity keeps aggregate arithmetic stable to two decimals.
func roundQuantity(q float64) float64 {
	return math.Round(q*100) / 100
}
