package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
)

// SuggestRequest carries the caller's parameters for one suggestion
// request. Empty fields mean "no constraint".
type SuggestRequest struct {
	Mood          string         `json:"mood,omitempty" validate:"max=50"`
	TimeAvailable string         `json:"timeAvailable,omitempty" validate:"max=10"`
	Cuisine       meal.Cuisine   `json:"cuisine,omitempty"`
	MealType      meal.MealType  `json:"mealType,omitempty"`
	RejectedMeals []RejectedMeal `json:"rejectedMeals,omitempty" validate:"max=20,dive"`
}

// RejectedMeal is a previously suggested meal the user turned down,
// optionally with a free-text reason.
type RejectedMeal struct {
	Name   string `json:"name" validate:"required,max=200"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// Prompt is a fully rendered chat request: system persona, user message
// and the JSON schema the model must produce.
type Prompt struct {
	System string
	User   string
	Schema string
}

// positiveIntent extracts forward-looking wishes from rejection reasons.
// Small and domain-specific on purpose; this never grows into NLP.
var positiveIntent = regexp.MustCompile(`(?i)\b(want|prefer|need|give|craving|looking for|in the mood for)\b`)

const suggestSystem = `You are a household meal-planning assistant for a home kitchen. You suggest realistic, home-cookable meals that respect the pantry, the calorie budget and the stated constraints. You respond with ONLY a valid JSON object in the exact schema you are given. No markdown, no code fences, no text outside the JSON.`

const weekPlanSystem = `You are a household meal-planning assistant. You produce a full seven-day meal plan of realistic, home-cookable meals with variety across days. You respond with ONLY a valid JSON object in the exact schema you are given. No markdown, no code fences, no text outside the JSON.`

// suggestionSchema enumerates the allowed vocabularies inline so the
// model cannot invent cuisines or meal types.
func suggestionSchema() string {
	var b strings.Builder
	b.WriteString(`{
  "suggestions": [
    {
      "name": "string (max 200 chars)",
      "cuisine": "` + joinCuisines() + `",
      "mealType": "` + joinMealTypes() + `",
      "prepTime": "integer minutes, 1-480",
      "estimatedCalories": "integer, 0-5000",
      "ingredients": [{"name": "string", "quantity": "number", "unit": "string"}],
      "reason": "short string",
      "description": "short string"
    }
  ]
}`)
	return b.String()
}

func weekPlanSchema() string {
	return `{
  "weekPlan": [
    {
      "day": "Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday",
      "meals": {
        "breakfast": <meal object>,
        "lunch": <meal object>,
        "dinner": <meal object>
      }
    }
  ]
}
where <meal object> is:
{
  "name": "string (max 200 chars)",
  "cuisine": "` + joinCuisines() + `",
  "mealType": "breakfast|lunch|dinner",
  "prepTime": "integer minutes, 1-480",
  "estimatedCalories": "integer, 0-5000",
  "ingredients": [{"name": "string", "quantity": "number", "unit": "string"}],
  "reason": "short string",
  "description": "short string"
}`
}

func joinCuisines() string {
	parts := make([]string, 0, len(meal.Cuisines()))
	for _, c := range meal.Cuisines() {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, "|")
}

func joinMealTypes() string {
	parts := make([]string, 0, len(meal.MealTypes()))
	for _, m := range meal.MealTypes() {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, "|")
}

// Compose renders the suggestion prompt. Identical (request, context)
// inputs yield byte-identical prompts, so responses can be cached and
// tests are deterministic.
func Compose(req SuggestRequest, sctx *SuggestionContext) Prompt {
	var b strings.Builder

	// 1. Calorie block
	if sctx.Budget.Goal > 0 {
		fmt.Fprintf(&b, "CALORIE BUDGET\nDaily goal: %d kcal\nConsumed today: %d kcal\nRemaining: %d kcal\n",
			sctx.Budget.Goal, sctx.Budget.Consumed, sctx.Budget.Remaining)
		b.WriteString("Rule: if remaining is below 500 kcal prefer lighter options; still include variety.\n\n")
	}

	// 2. Hard constraints
	b.WriteString("HARD CONSTRAINTS\n")
	if len(sctx.RecentMealNames) > 0 {
		fmt.Fprintf(&b, "NEVER suggest these recently eaten meals: %s\n", strings.Join(sctx.RecentMealNames, ", "))
	}
	if len(sctx.YesterdayCuisines) > 0 {
		fmt.Fprintf(&b, "Avoid these cuisines eaten yesterday: %s\n", joinCuisineList(sctx.YesterdayCuisines))
	}
	if len(req.RejectedMeals) > 0 {
		names := make([]string, 0, len(req.RejectedMeals))
		for _, rej := range req.RejectedMeals {
			names = append(names, rej.Name)
		}
		fmt.Fprintf(&b, "NEVER suggest these rejected meals: %s\n", strings.Join(names, ", "))
	}
	if req.Cuisine != "" {
		fmt.Fprintf(&b, "ALL suggestions must be %s cuisine.\n", req.Cuisine)
	}
	if req.MealType != "" {
		fmt.Fprintf(&b, "ALL suggestions must be %s meals.\n", req.MealType)
	}
	b.WriteString("\n")

	// 3. Positive-preference extraction from rejection reasons
	var wishes []string
	for _, rej := range req.RejectedMeals {
		if rej.Reason != "" && positiveIntent.MatchString(rej.Reason) {
			wishes = append(wishes, rej.Reason)
		}
	}
	if len(wishes) > 0 {
		fmt.Fprintf(&b, "USER REQUEST — prioritize: %s\n\n", strings.Join(wishes, "; "))
	}

	// 4. Review insights
	review := sctx.Review
	if len(review.HighRated) > 0 || len(review.LowRated) > 0 || len(review.CuisinePrefs) > 0 || len(review.Insights) > 0 {
		b.WriteString("PREFERENCES FROM HISTORY\n")
		if names := entryNames(review.HighRated); len(names) > 0 {
			fmt.Fprintf(&b, "Highly rated (prefer similar): %s\n", strings.Join(names, ", "))
		}
		if names := entryNames(review.LowRated); len(names) > 0 {
			fmt.Fprintf(&b, "Poorly rated (avoid similar): %s\n", strings.Join(names, ", "))
		}
		if favorites := favoriteCuisines(review.CuisinePrefs); len(favorites) > 0 {
			fmt.Fprintf(&b, "Favorite cuisines: %s\n", strings.Join(favorites, ", "))
		}
		for _, insight := range review.Insights {
			fmt.Fprintf(&b, "Insight: %s\n", insight)
		}
		b.WriteString("\n")
	}

	// 5. User context echo
	b.WriteString("CONTEXT\n")
	fmt.Fprintf(&b, "Mood: %s\n", orNotSpecified(req.Mood))
	fmt.Fprintf(&b, "Time available: %s\n", orNotSpecified(req.TimeAvailable))
	fmt.Fprintf(&b, "Cuisine: %s\n", orNotSpecified(string(req.Cuisine)))
	fmt.Fprintf(&b, "Meal type: %s\n\n", orNotSpecified(string(req.MealType)))

	// 6. Inventory
	fmt.Fprintf(&b, "PANTRY INVENTORY\n%s\n\n", formatInventory(sctx.Inventory))

	// 7. Output contract
	schema := suggestionSchema()
	fmt.Fprintf(&b, "OUTPUT\nRespond with ONLY valid JSON, exactly this schema, with exactly 3 suggestions:\n%s\n", schema)

	return Prompt{System: suggestSystem, User: b.String(), Schema: schema}
}

// ComposeWeekPlan renders the week-plan prompt for the week starting at
// weekStart (Monday). Deterministic like Compose.
func ComposeWeekPlan(weekStart time.Time, sctx *SuggestionContext) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan all meals for the week starting Monday %s: 7 days, each with breakfast, lunch and dinner.\n\n",
		weekStart.Format("2006-01-02"))

	if sctx.Budget.Goal > 0 {
		fmt.Fprintf(&b, "Daily calorie goal: %d kcal across the three meals.\n\n", sctx.Budget.Goal)
	}

	if len(sctx.RecentMealNames) > 0 {
		fmt.Fprintf(&b, "NEVER plan these recently eaten meals: %s\n\n", strings.Join(sctx.RecentMealNames, ", "))
	}

	review := sctx.Review
	if names := entryNames(review.HighRated); len(names) > 0 {
		fmt.Fprintf(&b, "Highly rated (prefer similar): %s\n", strings.Join(names, ", "))
	}
	if names := entryNames(review.LowRated); len(names) > 0 {
		fmt.Fprintf(&b, "Poorly rated (avoid similar): %s\n", strings.Join(names, ", "))
	}
	if favorites := favoriteCuisines(review.CuisinePrefs); len(favorites) > 0 {
		fmt.Fprintf(&b, "Favorite cuisines: %s\n", strings.Join(favorites, ", "))
	}
	for _, insight := range review.Insights {
		fmt.Fprintf(&b, "Insight: %s\n", insight)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "PANTRY INVENTORY\n%s\n\n", formatInventory(sctx.Inventory))

	schema := weekPlanSchema()
	fmt.Fprintf(&b, "OUTPUT\nRespond with ONLY valid JSON, exactly this schema, with exactly 7 day entries:\n%s\n", schema)

	return Prompt{System: weekPlanSystem, User: b.String(), Schema: schema}
}

func formatInventory(items []meal.InventoryItem) string {
	if len(items) == 0 {
		return "Not specified"
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%s %s)",
			item.Name, strconv.FormatFloat(item.Quantity, 'f', -1, 64), item.Unit))
	}
	return strings.Join(parts, ", ")
}

func joinCuisineList(cuisines []meal.Cuisine) string {
	parts := make([]string, 0, len(cuisines))
	for _, c := range cuisines {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

func entryNames(entries []meal.HistoryEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.MealName)
	}
	return names
}

// favoriteCuisines returns cuisines with a mean rating of 4 or higher.
func favoriteCuisines(prefs []CuisinePreference) []string {
	var out []string
	for _, pref := range prefs {
		if pref.Mean >= 4 {
			out = append(out, string(pref.Cuisine))
		}
	}
	return out
}

func orNotSpecified(value string) string {
	if value == "" {
		return "Not specified"
	}
	return value
}
