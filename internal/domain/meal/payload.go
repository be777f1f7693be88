package meal

// Payload is the unit of LLM output and plan-slot contents. It is the
// one shape that crosses the model boundary, so validation here is strict:
// anything that fails is dropped, never repaired.
type Payload struct {
	Name              string       `json:"name"`
	Cuisine           Cuisine      `json:"cuisine"`
	MealType          MealType     `json:"mealType"`
	PrepTime          int          `json:"prepTime"`
	EstimatedCalories int          `json:"estimatedCalories"`
	Ingredients       []Ingredient `json:"ingredients"`
	Reason            string       `json:"reason,omitempty"`
	Description       string       `json:"description,omitempty"`
}

// Ingredient is one required ingredient of a meal payload.
// Item is a legacy alias for Name and Quantity may arrive as a string;
// both shapes are accepted on decode via RawIngredient.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

const (
	maxNameLength  = 200
	maxPrepTime    = 480
	maxCalories    = 5000
	maxIngredients = 50
)

// Validate enforces the payload schema.
func (p Payload) Validate() error {
	if p.Name == "" || len(p.Name) > maxNameLength {
		return ErrInvalidMealName
	}
	if !p.Cuisine.IsValid() {
		return ErrInvalidCuisine
	}
	if !p.MealType.IsValid() {
		return ErrInvalidMealType
	}
	if p.PrepTime < 1 || p.PrepTime > maxPrepTime {
		return ErrInvalidPrepTime
	}
	if p.EstimatedCalories < 0 || p.EstimatedCalories > maxCalories {
		return ErrInvalidCalories
	}
	if len(p.Ingredients) > maxIngredients {
		return ErrTooManyIngredients
	}
	for _, ing := range p.Ingredients {
		if ing.Name == "" {
			return ErrInvalidIngredient
		}
	}
	return nil
}
