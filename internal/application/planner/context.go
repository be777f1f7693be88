// Package planner implements the suggestion and planning engine: it
// assembles request-scoped context from user state, drives the chat
// completion endpoint for constrained meal suggestions and week plans,
// and derives shopping lists from planned weeks.
package planner

import (
	"context"
	stderrors "errors"
	"strconv"
	"sync"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

const (
	recentMealsWindow  = 14 * 24 * time.Hour
	yesterdayWindow    = 24 * time.Hour
	ratedHistoryWindow = 30 * 24 * time.Hour
	recentReviewsLimit = 7

	calorieGoalKey = "dailyCalorieGoal"
)

// CalorieBudget is the (goal, consumed, remaining) triple for the
// current local day. Remaining is clamped at zero.
type CalorieBudget struct {
	Goal      int `json:"dailyGoal"`
	Consumed  int `json:"consumed"`
	Remaining int `json:"remaining"`
}

// CuisinePreference is the mean rating of one cuisine over the rated
// history window.
type CuisinePreference struct {
	Cuisine meal.Cuisine
	Mean    float64
	Count   int
}

// ReviewContext is the reduced view of rated history and day reviews.
type ReviewContext struct {
	CuisinePrefs  []CuisinePreference
	HighRated     []meal.HistoryEntry
	LowRated      []meal.HistoryEntry
	Insights      []string
	RecentReviews []meal.DayReview
}

// SuggestionContext is the request-scoped bundle every suggestion and
// week-plan request is built from. It is assembled once per request and
// discarded with the response.
type SuggestionContext struct {
	Inventory         []meal.InventoryItem
	RecentMealNames   []string
	YesterdayCuisines []meal.Cuisine
	Budget            CalorieBudget
	Review            ReviewContext
}

// ContextAssembler gathers the suggestion context from storage. Each
// sub-fetch is best effort: a failed fetch contributes its empty value
// and the request proceeds. Only a fully unreachable store is an error.
type ContextAssembler struct {
	inventory   outbound.InventoryRepository
	history     outbound.HistoryRepository
	reviews     outbound.ReviewRepository
	preferences outbound.PreferenceRepository
	defaultGoal int
	zone        *time.Location
	logger      *zap.Logger
}

// NewContextAssembler creates a context assembler. A nil zone means the
// server's local timezone; day windows are computed against it.
func NewContextAssembler(
	inventory outbound.InventoryRepository,
	history outbound.HistoryRepository,
	reviews outbound.ReviewRepository,
	preferences outbound.PreferenceRepository,
	defaultGoal int,
	zone *time.Location,
	logger *zap.Logger,
) *ContextAssembler {
	if zone == nil {
		zone = time.Local
	}
	if defaultGoal <= 0 {
		defaultGoal = 2000
	}
	return &ContextAssembler{
		inventory:   inventory,
		history:     history,
		reviews:     reviews,
		preferences: preferences,
		defaultGoal: defaultGoal,
		zone:        zone,
		logger:      logger.Named("assembler"),
	}
}

// startOfDay truncates an instant to local midnight in the assembler's zone.
func (a *ContextAssembler) startOfDay(now time.Time) time.Time {
	local := now.In(a.zone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.zone)
}

// Build assembles the suggestion context for the given instant. The
// sub-fetches run in parallel; completion order does not affect the
// result.
func (a *ContextAssembler) Build(ctx context.Context, now time.Time) (*SuggestionContext, error) {
	bundle := &SuggestionContext{}

	dayStart := a.startOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		failures   int
		subFetches int

		consumed int
		goal     = a.defaultGoal
		rated    []meal.HistoryEntry
		reviews  []meal.DayReview
	)

	fetch := func(name string, fn func() error) {
		subFetches++
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				a.logger.Warn("context sub-fetch failed, using empty value",
					zap.String("fetch", name),
					zap.Error(err),
				)
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}

	fetch("inventory", func() error {
		items, err := a.inventory.List(ctx)
		if err != nil {
			return err
		}
		bundle.Inventory = items
		return nil
	})

	fetch("recent_meals", func() error {
		names, err := a.history.DistinctNamesSince(ctx, now.Add(-recentMealsWindow))
		if err != nil {
			return err
		}
		bundle.RecentMealNames = names
		return nil
	})

	fetch("yesterday_cuisines", func() error {
		cuisines, err := a.history.CuisinesSince(ctx, now.Add(-yesterdayWindow))
		if err != nil {
			return err
		}
		bundle.YesterdayCuisines = dedupeCuisines(cuisines)
		return nil
	})

	fetch("calorie_goal", func() error {
		value, err := a.preferences.Get(ctx, calorieGoalKey)
		if stderrors.Is(err, meal.ErrPreferenceNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			goal = parsed
		}
		return nil
	})

	fetch("consumed_today", func() error {
		total, err := a.history.CaloriesBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return err
		}
		consumed = total
		return nil
	})

	fetch("rated_history", func() error {
		entries, err := a.history.RatedSince(ctx, now.Add(-ratedHistoryWindow))
		if err != nil {
			return err
		}
		rated = entries
		return nil
	})

	fetch("day_reviews", func() error {
		recent, err := a.reviews.RecentSince(ctx, now.Add(-ratedHistoryWindow), recentReviewsLimit)
		if err != nil {
			return err
		}
		reviews = recent
		return nil
	})

	wg.Wait()

	if failures == subFetches {
		return nil, errors.NewDatabaseError("assemble suggestion context", nil)
	}

	remaining := goal - consumed
	if remaining < 0 {
		remaining = 0
	}
	bundle.Budget = CalorieBudget{Goal: goal, Consumed: consumed, Remaining: remaining}
	bundle.Review = Analyze(rated, reviews)

	return bundle, nil
}

func dedupeCuisines(cuisines []meal.Cuisine) []meal.Cuisine {
	seen := make(map[meal.Cuisine]struct{}, len(cuisines))
	out := make([]meal.Cuisine, 0, len(cuisines))
	for _, c := range cuisines {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
