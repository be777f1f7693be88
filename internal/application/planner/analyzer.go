package planner

import (
	"sort"

	"github.com/mealforge/v1/internal/domain/meal"
)

const (
	highRatedFloor = 4
	highRatedCap   = 10
	lowRatedCeil   = 2
	lowRatedCap    = 5
	insightWindow  = 3

	// Hint strings consumed verbatim by the prompt composer.
	hintPreferSimpler = "prefer simpler options"
	hintPreferNovelty = "prefer novelty"
)

// Analyze reduces rated history and day reviews into a ReviewContext.
// Pure: no I/O, deterministic for identical inputs.
func Analyze(rated []meal.HistoryEntry, reviews []meal.DayReview) ReviewContext {
	rc := ReviewContext{
		CuisinePrefs:  cuisinePreferences(rated),
		HighRated:     rankedMeals(rated, func(r int) bool { return r >= highRatedFloor }, highRatedCap),
		LowRated:      rankedMeals(rated, func(r int) bool { return r <= lowRatedCeil }, lowRatedCap),
		RecentReviews: reviews,
	}

	recent := reviews
	if len(recent) > insightWindow {
		recent = recent[:insightWindow]
	}
	var simpler, novelty bool
	for _, review := range recent {
		if review.Effort >= 4 && review.Satisfaction <= 2 {
			simpler = true
		}
		if review.Variety <= 2 {
			novelty = true
		}
	}
	if simpler {
		rc.Insights = append(rc.Insights, hintPreferSimpler)
	}
	if novelty {
		rc.Insights = append(rc.Insights, hintPreferNovelty)
	}

	return rc
}

// cuisinePreferences groups rated entries by cuisine and sorts by mean
// rating descending, ties broken by sample count descending then
// cuisine lexicographic.
func cuisinePreferences(rated []meal.HistoryEntry) []CuisinePreference {
	type acc struct {
		sum   int
		count int
	}
	byCuisine := make(map[meal.Cuisine]*acc)
	for _, entry := range rated {
		if entry.Rating == nil {
			continue
		}
		a := byCuisine[entry.Cuisine]
		if a == nil {
			a = &acc{}
			byCuisine[entry.Cuisine] = a
		}
		a.sum += *entry.Rating
		a.count++
	}

	prefs := make([]CuisinePreference, 0, len(byCuisine))
	for cuisine, a := range byCuisine {
		prefs = append(prefs, CuisinePreference{
			Cuisine: cuisine,
			Mean:    float64(a.sum) / float64(a.count),
			Count:   a.count,
		})
	}

	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Mean != prefs[j].Mean {
			return prefs[i].Mean > prefs[j].Mean
		}
		if prefs[i].Count != prefs[j].Count {
			return prefs[i].Count > prefs[j].Count
		}
		return prefs[i].Cuisine < prefs[j].Cuisine
	})

	return prefs
}

// rankedMeals filters rated entries, sorts by rating descending then
// recency descending, and truncates to limit.
func rankedMeals(rated []meal.HistoryEntry, keep func(int) bool, limit int) []meal.HistoryEntry {
	var out []meal.HistoryEntry
	for _, entry := range rated {
		if entry.Rating != nil && keep(*entry.Rating) {
			out = append(out, entry)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if *out[i].Rating != *out[j].Rating {
			return *out[i].Rating > *out[j].Rating
		}
		return out[i].EatenAt.After(out[j].EatenAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
