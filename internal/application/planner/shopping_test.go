package planner

import (
	"context"
	"testing"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	apperrors "github.com/mealforge/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planSlot(date time.Time, mt meal.MealType, ingredients ...meal.Ingredient) meal.PlanSlot {
	return meal.PlanSlot{
		Date:     date,
		MealType: mt,
		Meal: meal.Payload{
			Name:              "Planned Meal",
			Cuisine:           meal.CuisineIndian,
			MealType:          mt,
			PrepTime:          30,
			EstimatedCalories: 400,
			Ingredients:       ingredients,
		},
	}
}

func TestDeriveShoppingListAggregatesAndSubtracts(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	deps := newTestDeps()
	deps.plans.slots = []meal.PlanSlot{
		planSlot(weekStart, meal.MealTypeLunch,
			meal.Ingredient{Name: "Rice", Quantity: 0.5, Unit: "kg"},
			meal.Ingredient{Name: "Toor Dal", Quantity: 0.25, Unit: "kg"},
		),
		planSlot(weekStart.AddDate(0, 0, 1), meal.MealTypeDinner,
			meal.Ingredient{Name: "rice", Quantity: 0.4, Unit: "kg"},
			meal.Ingredient{Name: "Paneer", Quantity: 1.1, Unit: "kg"},
		),
	}
	deps.inventory.items = []meal.InventoryItem{
		{Name: "Rice", Quantity: 0.5, Unit: "kg"},
		{Name: "Toor Dal", Quantity: 0.25, Unit: "kg"},
	}
	svc := newTestService(deps)

	items, err := svc.DeriveShoppingList(context.Background(), weekStart)

	require.NoError(t, err)
	require.Len(t, items, 2)

	// Sorted by category: dairy before grains.
	assert.Equal(t, "Paneer", items[0].Name)
	assert.Equal(t, meal.CategoryDairy, items[0].Category)
	assert.Equal(t, 1.1, items[0].Quantity)

	assert.Equal(t, "Rice", items[1].Name)
	assert.Equal(t, meal.CategoryGrains, items[1].Category)
	assert.Equal(t, 0.4, items[1].Quantity, "0.9 needed minus 0.5 on hand")

	assert.Equal(t, items, deps.shopping.created)
}

func TestDeriveShoppingListQuantityStability(t *testing.T) {
	// Seven 0.1 additions minus 0.5 on hand must come out at exactly 0.2.
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	deps := newTestDeps()
	for i := 0; i < 7; i++ {
		deps.plans.slots = append(deps.plans.slots, planSlot(
			weekStart.AddDate(0, 0, i), meal.MealTypeDinner,
			meal.Ingredient{Name: "Ghee", Quantity: 0.1, Unit: "kg"},
		))
	}
	deps.inventory.items = []meal.InventoryItem{{Name: "Ghee", Quantity: 0.5, Unit: "kg"}}
	svc := newTestService(deps)

	items, err := svc.DeriveShoppingList(context.Background(), weekStart)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0.2, items[0].Quantity)
}

func TestDeriveShoppingListEmptyWeekIsAnError(t *testing.T) {
	svc := newTestService(newTestDeps())

	_, err := svc.DeriveShoppingList(context.Background(), time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodePlanEmpty))
}

func TestDeriveShoppingListSkipsCoveredIngredients(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	deps := newTestDeps()
	deps.plans.slots = []meal.PlanSlot{
		planSlot(weekStart, meal.MealTypeLunch,
			meal.Ingredient{Name: "Rice", Quantity: 1, Unit: "kg"},
		),
	}
	deps.inventory.items = []meal.InventoryItem{{Name: "Rice", Quantity: 2, Unit: "kg"}}
	svc := newTestService(deps)

	items, err := svc.DeriveShoppingList(context.Background(), weekStart)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, deps.shopping.created)
}

func TestDeriveShoppingListSkipsItemsAlreadyOnList(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	deps := newTestDeps()
	deps.plans.slots = []meal.PlanSlot{
		planSlot(weekStart, meal.MealTypeLunch,
			meal.Ingredient{Name: "Paneer", Quantity: 0.5, Unit: "kg"},
			meal.Ingredient{Name: "Atta", Quantity: 1, Unit: "kg"},
		),
	}
	deps.shopping.unpurchased = []meal.ShoppingItem{{Name: "paneer", Quantity: 0.5, Unit: "kg"}}
	svc := newTestService(deps)

	items, err := svc.DeriveShoppingList(context.Background(), weekStart)

	require.NoError(t, err)
	require.Len(t, items, 2, "derivation still returns the full list")
	require.Len(t, deps.shopping.created, 1, "only the new item is persisted")
	assert.Equal(t, "Atta", deps.shopping.created[0].Name)
}

func TestAggregateIngredientsKeepsFirstSpelling(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	slots := []meal.PlanSlot{
		planSlot(weekStart, meal.MealTypeLunch,
			meal.Ingredient{Name: "Toor Dal", Quantity: 0.2, Unit: "kg"},
		),
		planSlot(weekStart, meal.MealTypeDinner,
			meal.Ingredient{Name: "toor  dal", Quantity: 0.15, Unit: "kg"},
		),
	}

	out := aggregateIngredients(slots)

	require.Len(t, out, 1)
	assert.Equal(t, "Toor Dal", out[0].Name)
	assert.Equal(t, 0.35, out[0].Quantity)
}
