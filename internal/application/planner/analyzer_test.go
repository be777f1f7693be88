package planner

import (
	"testing"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratedEntry(name string, cuisine meal.Cuisine, rating int, eatenAt time.Time) meal.HistoryEntry {
	return meal.HistoryEntry{
		MealName: name,
		Cuisine:  cuisine,
		MealType: meal.MealTypeDinner,
		EatenAt:  eatenAt,
		Rating:   &rating,
	}
}

func TestAnalyzeCuisinePreferences(t *testing.T) {
	base := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	rated := []meal.HistoryEntry{
		ratedEntry("Dal Tadka", meal.CuisineNorthIndian, 5, base),
		ratedEntry("Rajma Chawal", meal.CuisineNorthIndian, 3, base.AddDate(0, 0, 1)),
		ratedEntry("Dosa", meal.CuisineSouthIndian, 4, base.AddDate(0, 0, 2)),
		ratedEntry("Fried Rice", meal.CuisineChinese, 4, base.AddDate(0, 0, 3)),
		ratedEntry("Noodles", meal.CuisineChinese, 4, base.AddDate(0, 0, 4)),
	}

	rc := Analyze(rated, nil)

	require.Len(t, rc.CuisinePrefs, 3)
	// All three means are 4.0: count breaks the south_indian tie, the
	// cuisine name breaks the chinese/north_indian tie.
	assert.Equal(t, meal.CuisineChinese, rc.CuisinePrefs[0].Cuisine)
	assert.Equal(t, meal.CuisineNorthIndian, rc.CuisinePrefs[1].Cuisine)
	assert.Equal(t, meal.CuisineSouthIndian, rc.CuisinePrefs[2].Cuisine)
	assert.InDelta(t, 4.0, rc.CuisinePrefs[0].Mean, 1e-9)
}

func TestAnalyzeHighAndLowRated(t *testing.T) {
	base := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	var rated []meal.HistoryEntry
	for i := 0; i < 12; i++ {
		rated = append(rated, ratedEntry("Good Meal", meal.CuisineIndian, 5, base.AddDate(0, 0, i)))
	}
	rated = append(rated,
		ratedEntry("Bad Meal", meal.CuisineIndian, 1, base),
		ratedEntry("Meh Meal", meal.CuisineIndian, 3, base),
	)

	rc := Analyze(rated, nil)

	assert.Len(t, rc.HighRated, 10, "high-rated list is capped")
	require.Len(t, rc.LowRated, 1)
	assert.Equal(t, "Bad Meal", rc.LowRated[0].MealName)
	// Newest first within equal ratings.
	assert.True(t, rc.HighRated[0].EatenAt.After(rc.HighRated[9].EatenAt))
}

func TestAnalyzeHighRatedTiesKeepInputOrder(t *testing.T) {
	at := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	rated := []meal.HistoryEntry{
		ratedEntry("First", meal.CuisineIndian, 5, at),
		ratedEntry("Second", meal.CuisineIndian, 5, at),
		ratedEntry("Third", meal.CuisineIndian, 5, at),
	}

	// Identical rating and timestamp must order the same on every run,
	// or the composed prompt stops being deterministic.
	for i := 0; i < 10; i++ {
		rc := Analyze(rated, nil)
		require.Len(t, rc.HighRated, 3)
		assert.Equal(t, "First", rc.HighRated[0].MealName)
		assert.Equal(t, "Second", rc.HighRated[1].MealName)
		assert.Equal(t, "Third", rc.HighRated[2].MealName)
	}
}

func TestAnalyzeInsights(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("simpler and novelty", func(t *testing.T) {
		reviews := []meal.DayReview{
			{Date: day, Variety: 2, Effort: 5, Satisfaction: 1},
		}
		rc := Analyze(nil, reviews)
		assert.Contains(t, rc.Insights, "prefer simpler options")
		assert.Contains(t, rc.Insights, "prefer novelty")
	})

	t.Run("only newest three reviews count", func(t *testing.T) {
		reviews := []meal.DayReview{
			{Date: day, Variety: 8, Effort: 2, Satisfaction: 8},
			{Date: day.AddDate(0, 0, -1), Variety: 8, Effort: 2, Satisfaction: 8},
			{Date: day.AddDate(0, 0, -2), Variety: 8, Effort: 2, Satisfaction: 8},
			{Date: day.AddDate(0, 0, -3), Variety: 1, Effort: 9, Satisfaction: 1},
		}
		rc := Analyze(nil, reviews)
		assert.Empty(t, rc.Insights)
	})

	t.Run("content days yield no insights", func(t *testing.T) {
		reviews := []meal.DayReview{
			{Date: day, Variety: 7, Effort: 3, Satisfaction: 9},
		}
		rc := Analyze(nil, reviews)
		assert.Empty(t, rc.Insights)
	})
}
