package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	apperrors "github.com/mealforge/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAssembler(deps *testDeps) *ContextAssembler {
	return NewContextAssembler(
		deps.inventory, deps.history, deps.reviews, deps.prefs,
		2000, time.UTC, zap.NewNop(),
	)
}

func TestBuildAssemblesBundle(t *testing.T) {
	deps := newTestDeps()
	deps.inventory.items = []meal.InventoryItem{{Name: "Rice", Quantity: 2, Unit: "kg"}}
	deps.history.names = []string{"Dal Rice"}
	deps.history.cuisines = []meal.Cuisine{meal.CuisineIndian, meal.CuisineIndian, meal.CuisineChinese}
	deps.history.calories = 1200
	deps.prefs.values[calorieGoalKey] = "1800"

	bundle, err := newTestAssembler(deps).Build(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, []string{"Dal Rice"}, bundle.RecentMealNames)
	assert.Equal(t, []meal.Cuisine{meal.CuisineIndian, meal.CuisineChinese}, bundle.YesterdayCuisines,
		"yesterday cuisines are de-duplicated in eaten order")
	assert.Equal(t, CalorieBudget{Goal: 1800, Consumed: 1200, Remaining: 600}, bundle.Budget)
}

func TestBuildPartialFailuresUseEmptyValues(t *testing.T) {
	deps := newTestDeps()
	deps.inventory.items = []meal.InventoryItem{{Name: "Rice", Quantity: 2, Unit: "kg"}}
	deps.history.err = errors.New("table locked")

	bundle, err := newTestAssembler(deps).Build(context.Background(), time.Now())

	require.NoError(t, err, "partial failures are best effort")
	assert.Empty(t, bundle.RecentMealNames)
	assert.Len(t, bundle.Inventory, 1)
	assert.Equal(t, 2000, bundle.Budget.Goal, "default goal when history is down")
}

func TestBuildAllFailuresIsAnError(t *testing.T) {
	deps := newTestDeps()
	boom := errors.New("connection refused")
	deps.inventory.err = boom
	deps.history.err = boom
	deps.reviews.err = boom
	deps.prefs.err = boom

	_, err := newTestAssembler(deps).Build(context.Background(), time.Now())

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeDatabaseError))
}

func TestBuildRemainingClampsAtZero(t *testing.T) {
	deps := newTestDeps()
	deps.history.calories = 2600

	bundle, err := newTestAssembler(deps).Build(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 0, bundle.Budget.Remaining)
}

func TestBuildIgnoresUnparsableCalorieGoal(t *testing.T) {
	deps := newTestDeps()
	deps.prefs.values[calorieGoalKey] = "about two thousand"

	bundle, err := newTestAssembler(deps).Build(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 2000, bundle.Budget.Goal)
}
