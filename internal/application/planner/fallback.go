package planner

import (
	"strconv"

	"github.com/mealforge/v1/internal/domain/meal"
)

// Curated fallback meals, compiled into the binary. Returned whenever
// the LLM is unavailable or everything it produced was filtered out:
// a suggestion request always returns something.

const quickTimeCutoff = 25 // minutes

var quickFallback = []meal.Payload{
	{
		Name:              "Masala Oats",
		Cuisine:           meal.CuisineIndian,
		MealType:          meal.MealTypeBreakfast,
		PrepTime:          15,
		EstimatedCalories: 250,
		Ingredients: []meal.Ingredient{
			{Name: "Oats", Quantity: 0.5, Unit: "cup"},
			{Name: "Onion", Quantity: 0.5, Unit: "piece"},
			{Name: "Tomato", Quantity: 0.5, Unit: "piece"},
		},
		Reason:      "Quick, light and uses common pantry staples",
		Description: "Savory oats tempered with onion, tomato and spices",
	},
	{
		Name:              "Vegetable Poha",
		Cuisine:           meal.CuisineIndian,
		MealType:          meal.MealTypeBreakfast,
		PrepTime:          20,
		EstimatedCalories: 300,
		Ingredients: []meal.Ingredient{
			{Name: "Poha", Quantity: 1, Unit: "cup"},
			{Name: "Onion", Quantity: 0.5, Unit: "piece"},
			{Name: "Peanuts", Quantity: 2, Unit: "tbsp"},
		},
		Reason:      "Ready in twenty minutes with minimal cleanup",
		Description: "Flattened rice with onion, peanuts and curry leaves",
	},
	{
		Name:              "Curd Rice",
		Cuisine:           meal.CuisineSouthIndian,
		MealType:          meal.MealTypeLunch,
		PrepTime:          15,
		EstimatedCalories: 350,
		Ingredients: []meal.Ingredient{
			{Name: "Rice", Quantity: 1, Unit: "cup"},
			{Name: "Curd", Quantity: 1, Unit: "cup"},
		},
		Reason:      "Cooling, fast and easy on the stomach",
		Description: "Soft rice folded into curd with a mustard-seed tempering",
	},
}

var elaborateFallback = []meal.Payload{
	{
		Name:              "Vegetable Pulao",
		Cuisine:           meal.CuisineIndian,
		MealType:          meal.MealTypeLunch,
		PrepTime:          40,
		EstimatedCalories: 450,
		Ingredients: []meal.Ingredient{
			{Name: "Rice", Quantity: 1, Unit: "cup"},
			{Name: "Carrot", Quantity: 1, Unit: "piece"},
			{Name: "Beans", Quantity: 0.25, Unit: "cup"},
		},
		Reason:      "A complete one-pot meal from pantry staples",
		Description: "Fragrant rice cooked with mixed vegetables and whole spices",
	},
	{
		Name:              "Dal Tadka with Rice",
		Cuisine:           meal.CuisineNorthIndian,
		MealType:          meal.MealTypeDinner,
		PrepTime:          35,
		EstimatedCalories: 420,
		Ingredients: []meal.Ingredient{
			{Name: "Toor Dal", Quantity: 0.5, Unit: "cup"},
			{Name: "Rice", Quantity: 1, Unit: "cup"},
			{Name: "Ghee", Quantity: 1, Unit: "tbsp"},
		},
		Reason:      "Comforting protein-rich staple",
		Description: "Yellow lentils finished with a ghee and cumin tempering",
	},
	{
		Name:              "Paneer Bhurji with Roti",
		Cuisine:           meal.CuisineNorthIndian,
		MealType:          meal.MealTypeDinner,
		PrepTime:          30,
		EstimatedCalories: 500,
		Ingredients: []meal.Ingredient{
			{Name: "Paneer", Quantity: 0.2, Unit: "kg"},
			{Name: "Onion", Quantity: 1, Unit: "piece"},
			{Name: "Atta", Quantity: 1, Unit: "cup"},
		},
		Reason:      "High-protein dinner that comes together in half an hour",
		Description: "Crumbled paneer scrambled with onion, tomato and spices",
	},
}

// fallbackSet picks the curated set for the caller's available time.
// Unparsable or missing values get the elaborate set.
func fallbackSet(timeAvailable string) []meal.Payload {
	if minutes, err := strconv.Atoi(timeAvailable); err == nil && minutes <= quickTimeCutoff {
		return clonePayloads(quickFallback)
	}
	return clonePayloads(elaborateFallback)
}

func clonePayloads(in []meal.Payload) []meal.Payload {
	out := make([]meal.Payload, len(in))
	copy(out, in)
	return out
}
