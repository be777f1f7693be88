// Package meal contains the core domain types for meal planning.
// Closed vocabularies live here so that validators and prompt building
// share a single source of truth.
package meal

import (
	"strings"
	"time"
)

// Cuisine represents the closed cuisine vocabulary.
type Cuisine string

const (
	CuisineIndian        Cuisine = "indian"
	CuisineSouthIndian   Cuisine = "south_indian"
	CuisineNorthIndian   Cuisine = "north_indian"
	CuisineChinese       Cuisine = "chinese"
	CuisineItalian       Cuisine = "italian"
	CuisineMexican       Cuisine = "mexican"
	CuisineThai          Cuisine = "thai"
	CuisineJapanese      Cuisine = "japanese"
	CuisineAmerican      Cuisine = "american"
	CuisineMediterranean Cuisine = "mediterranean"
	CuisineContinental   Cuisine = "continental"
	CuisineIndianFusion  Cuisine = "indian_fusion"
	CuisineOther         Cuisine = "other"
)

// Cuisines lists every allowed cuisine in declaration order.
func Cuisines() []Cuisine {
	return []Cuisine{
		CuisineIndian, CuisineSouthIndian, CuisineNorthIndian,
		CuisineChinese, CuisineItalian, CuisineMexican, CuisineThai,
		CuisineJapanese, CuisineAmerican, CuisineMediterranean,
		CuisineContinental, CuisineIndianFusion, CuisineOther,
	}
}

// IsValid reports whether the cuisine is part of the vocabulary.
func (c Cuisine) IsValid() bool {
	for _, known := range Cuisines() {
		if c == known {
			return true
		}
	}
	return false
}

// MealType represents when a meal is eaten.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// MealTypes lists every allowed meal type in declaration order.
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}
}

// IsValid reports whether the meal type is part of the vocabulary.
func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// InventoryCategory classifies pantry items.
type InventoryCategory string

const (
	CategoryGrains     InventoryCategory = "grains"
	CategorySpices     InventoryCategory = "spices"
	CategoryVegetables InventoryCategory = "vegetables"
	CategoryDairy      InventoryCategory = "dairy"
	CategoryProteins   InventoryCategory = "proteins"
	CategoryFruits     InventoryCategory = "fruits"
	CategoryOthers     InventoryCategory = "others"
)

// IsValid reports whether the category is part of the vocabulary.
func (c InventoryCategory) IsValid() bool {
	switch c {
	case CategoryGrains, CategorySpices, CategoryVegetables,
		CategoryDairy, CategoryProteins, CategoryFruits, CategoryOthers:
		return true
	}
	return false
}

// InventoryItem is a pantry inventory snapshot row.
type InventoryItem struct {
	Name       string
	Category   InventoryCategory
	Quantity   float64
	Unit       string
	LowStockAt *float64
}

// HistoryEntry records an eaten meal.
type HistoryEntry struct {
	MealName string
	Cuisine  Cuisine
	MealType MealType
	EatenAt  time.Time
	Rating   *int
	Calories *int
	Notes    string
}

// DayReview scores a single day 0-10 on three axes.
type DayReview struct {
	Date         time.Time
	Variety      int
	Effort       int
	Satisfaction int
	Notes        string
}

// Validate checks the review score bounds.
func (r DayReview) Validate() error {
	for _, score := range []int{r.Variety, r.Effort, r.Satisfaction} {
		if score < 0 || score > 10 {
			return ErrInvalidReviewScore
		}
	}
	return nil
}

// PlanSlot binds a meal payload to a (date, mealType) tuple.
type PlanSlot struct {
	Date     time.Time
	MealType MealType
	Meal     Payload
}

// ShoppingItem is a derived shopping-list row.
type ShoppingItem struct {
	Name      string
	Quantity  float64
	Unit      string
	Category  InventoryCategory
	Purchased bool
}

// CaseFold normalizes a name for case-insensitive comparison.
// Interior whitespace is collapsed so "Dal  Rice" and "dal rice" match.
func CaseFold(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
