package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContext() *SuggestionContext {
	return &SuggestionContext{
		Inventory: []meal.InventoryItem{
			{Name: "Rice", Quantity: 2, Unit: "kg"},
			{Name: "Toor Dal", Quantity: 0.5, Unit: "kg"},
		},
		RecentMealNames:   []string{"Dal Rice", "Vegetable Pulao"},
		YesterdayCuisines: []meal.Cuisine{meal.CuisineNorthIndian},
		Budget:            CalorieBudget{Goal: 2000, Consumed: 1500, Remaining: 500},
		Review:            ReviewContext{},
	}
}

func TestComposeDeterministic(t *testing.T) {
	req := SuggestRequest{
		Mood:          "tired",
		TimeAvailable: "30",
		Cuisine:       meal.CuisineIndian,
		RejectedMeals: []RejectedMeal{{Name: "Khichdi", Reason: "had it recently"}},
	}

	first := Compose(req, sampleContext())
	second := Compose(req, sampleContext())

	assert.Equal(t, first.System, second.System)
	assert.Equal(t, first.User, second.User)
	assert.Equal(t, first.Schema, second.Schema)
}

func TestComposeSections(t *testing.T) {
	req := SuggestRequest{Mood: "lazy", TimeAvailable: "20"}
	prompt := Compose(req, sampleContext())

	assert.Contains(t, prompt.User, "CALORIE BUDGET\nDaily goal: 2000 kcal\nConsumed today: 1500 kcal\nRemaining: 500 kcal")
	assert.Contains(t, prompt.User, "NEVER suggest these recently eaten meals: Dal Rice, Vegetable Pulao")
	assert.Contains(t, prompt.User, "Avoid these cuisines eaten yesterday: north_indian")
	assert.Contains(t, prompt.User, "Mood: lazy")
	assert.Contains(t, prompt.User, "Rice (2 kg), Toor Dal (0.5 kg)")
	assert.Contains(t, prompt.User, "exactly 3 suggestions")

	// Sections render in a fixed order.
	budgetAt := strings.Index(prompt.User, "CALORIE BUDGET")
	constraintsAt := strings.Index(prompt.User, "HARD CONSTRAINTS")
	contextAt := strings.Index(prompt.User, "CONTEXT\n")
	inventoryAt := strings.Index(prompt.User, "PANTRY INVENTORY")
	outputAt := strings.Index(prompt.User, "OUTPUT\n")
	assert.True(t, budgetAt < constraintsAt && constraintsAt < contextAt &&
		contextAt < inventoryAt && inventoryAt < outputAt)
}

func TestComposePositiveIntentExtraction(t *testing.T) {
	req := SuggestRequest{
		RejectedMeals: []RejectedMeal{
			{Name: "Dal Rice", Reason: "I want chicken curry"},
			{Name: "Poha", Reason: "too bland"},
		},
	}
	prompt := Compose(req, sampleContext())

	require.Contains(t, prompt.User, "USER REQUEST — prioritize: I want chicken curry")
	assert.NotContains(t, prompt.User, "prioritize: too bland")
	// Both rejections stay blocked regardless of the extracted wish.
	assert.Contains(t, prompt.User, "NEVER suggest these rejected meals: Dal Rice, Poha")
}

func TestComposeEmptyContext(t *testing.T) {
	prompt := Compose(SuggestRequest{}, &SuggestionContext{})

	assert.NotContains(t, prompt.User, "CALORIE BUDGET")
	assert.Contains(t, prompt.User, "Mood: Not specified")
	assert.Contains(t, prompt.User, "PANTRY INVENTORY\nNot specified")
}

func TestComposeWeekPlan(t *testing.T) {
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC) // a Monday

	first := ComposeWeekPlan(weekStart, sampleContext())
	second := ComposeWeekPlan(weekStart, sampleContext())

	assert.Equal(t, first.User, second.User)
	assert.Contains(t, first.User, "week starting Monday 2025-06-16")
	assert.Contains(t, first.User, "NEVER plan these recently eaten meals: Dal Rice, Vegetable Pulao")
	assert.Contains(t, first.User, "exactly 7 day entries")
}
