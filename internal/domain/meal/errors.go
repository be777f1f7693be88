package meal

import "errors"

// Domain errors for meal planning

var (
	// Payload validation errors
	ErrInvalidMealName    = errors.New("meal name must be non-empty and at most 200 characters")
	ErrInvalidCuisine     = errors.New("cuisine is not part of the allowed vocabulary")
	ErrInvalidMealType    = errors.New("meal type must be breakfast, lunch, dinner or snack")
	ErrInvalidPrepTime    = errors.New("prep time must be between 1 and 480 minutes")
	ErrInvalidCalories    = errors.New("estimated calories must be between 0 and 5000")
	ErrTooManyIngredients = errors.New("a meal may list at most 50 ingredients")
	ErrInvalidIngredient  = errors.New("ingredient name is required")

	// Inventory rules
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrInvalidReviewScore = errors.New("review scores must be between 0 and 10")

	// Lookup failures surfaced by repositories
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrShoppingItemNotFound  = errors.New("shopping item not found")
	ErrPreferenceNotFound    = errors.New("preference not found")
)
