package planner

import (
	"testing"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(name string, calories, prepTime int) meal.Payload {
	return meal.Payload{
		Name:              name,
		Cuisine:           meal.CuisineIndian,
		MealType:          meal.MealTypeLunch,
		PrepTime:          prepTime,
		EstimatedCalories: calories,
	}
}

func TestProcessDedupeKeepsFirst(t *testing.T) {
	payloads := []meal.Payload{
		payload("Dal  Rice", 400, 30),
		payload("dal rice", 350, 20),
		payload("Poha", 300, 15),
	}

	out := Process(payloads, &SuggestionContext{})

	require.Len(t, out, 2)
	names := []string{out[0].Name, out[1].Name}
	assert.Contains(t, names, "Dal  Rice")
	assert.NotContains(t, names, "dal rice")
}

func TestProcessSortOrder(t *testing.T) {
	payloads := []meal.Payload{
		payload("Heavy", 600, 20),
		payload("B Light", 300, 25),
		payload("A Light", 300, 25),
		payload("Quick Light", 300, 10),
	}

	out := Process(payloads, &SuggestionContext{})

	require.Len(t, out, 4)
	assert.Equal(t, "Quick Light", out[0].Name)
	assert.Equal(t, "A Light", out[1].Name)
	assert.Equal(t, "B Light", out[2].Name)
	assert.Equal(t, "Heavy", out[3].Name)
}

func TestProcessCalorieWarning(t *testing.T) {
	sctx := &SuggestionContext{Budget: CalorieBudget{Goal: 2000, Consumed: 1500, Remaining: 500}}

	out := Process([]meal.Payload{
		payload("Light", 400, 20),
		payload("Heavy", 700, 20),
	}, sctx)

	require.Len(t, out, 2)
	assert.Nil(t, out[0].CalorieWarning)
	require.NotNil(t, out[1].CalorieWarning)
	assert.Equal(t, "Exceeds remaining 500 kcal", *out[1].CalorieWarning)
}

func TestProcessNoWarningWhenBudgetExhausted(t *testing.T) {
	sctx := &SuggestionContext{Budget: CalorieBudget{Goal: 2000, Consumed: 2400, Remaining: 0}}

	out := Process([]meal.Payload{payload("Anything", 800, 20)}, sctx)

	require.Len(t, out, 1)
	assert.Nil(t, out[0].CalorieWarning)
}
