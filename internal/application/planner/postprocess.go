package planner

import (
	"fmt"
	"sort"

	"github.com/mealforge/v1/internal/domain/meal"
)

// Suggestion is a meal payload annotated for the caller.
type Suggestion struct {
	meal.Payload
	CalorieWarning *string `json:"calorieWarning"`
}

// Process de-duplicates, orders and annotates validated payloads.
// Pure: the input slice is not modified.
func Process(payloads []meal.Payload, sctx *SuggestionContext) []Suggestion {
	// De-duplicate by case-folded name, keeping the first occurrence.
	seen := make(map[string]struct{}, len(payloads))
	deduped := make([]meal.Payload, 0, len(payloads))
	for _, p := range payloads {
		key := meal.CaseFold(p.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, p)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].EstimatedCalories != deduped[j].EstimatedCalories {
			return deduped[i].EstimatedCalories < deduped[j].EstimatedCalories
		}
		if deduped[i].PrepTime != deduped[j].PrepTime {
			return deduped[i].PrepTime < deduped[j].PrepTime
		}
		return deduped[i].Name < deduped[j].Name
	})

	remaining := sctx.Budget.Remaining
	out := make([]Suggestion, 0, len(deduped))
	for _, p := range deduped {
		s := Suggestion{Payload: p}
		if remaining > 0 && p.EstimatedCalories > remaining {
			warning := fmt.Sprintf("Exceeds remaining %d kcal", remaining)
			s.CalorieWarning = &warning
		}
		out = append(out, s)
	}
	return out
}
