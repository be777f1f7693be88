package planner

import (
	"strings"

	"github.com/mealforge/v1/internal/domain/meal"
)

// categoryKeywords is the fixed classification table. Categories are
// checked in declaration order and the first keyword hit wins, so the
// more specific produce entries come before the broad spice bucket.
var categoryKeywords = []struct {
	category meal.InventoryCategory
	keywords []string
}{
	{meal.CategoryVegetables, []string{
		"onion", "tomato", "potato", "carrot", "beans", "capsicum",
		"peas", "palak", "spinach", "gobi", "cauliflower", "bhindi",
		"okra", "cabbage", "brinjal", "cucumber", "garlic", "ginger",
		"chilli", "coriander leaves", "mint",
	}},
	{meal.CategoryDairy, []string{
		"milk", "curd", "paneer", "butter", "ghee", "cream", "cheese",
		"yogurt",
	}},
	{meal.CategoryGrains, []string{
		"rice", "atta", "maida", "besan", "rava", "poha", "bread",
		"oats", "pasta", "noodles", "flour",
	}},
	{meal.CategoryProteins, []string{
		"chicken", "mutton", "fish", "egg", "dal", "chana", "rajma",
		"tofu", "prawns", "soya",
	}},
	{meal.CategorySpices, []string{
		"haldi", "turmeric", "mirchi", "jeera", "cumin", "dhania",
		"garam masala", "hing", "masala", "salt", "pepper", "cardamom",
		"clove", "cinnamon", "mustard seeds",
	}},
	{meal.CategoryFruits, []string{
		"banana", "apple", "mango", "orange", "grapes", "lemon",
		"pomegranate",
	}},
}

// ClassifyIngredient maps an ingredient name to a pantry category by
// case-folded substring match. Unmatched names fall back to others.
func ClassifyIngredient(name string) meal.InventoryCategory {
	folded := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(folded, keyword) {
				return entry.category
			}
		}
	}
	return meal.CategoryOthers
}
