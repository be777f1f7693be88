package planner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// dayOffsets maps the model's day labels to offsets from the Monday
// week start. Unknown labels mean the day entry is dropped.
var dayOffsets = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// plannedMealTypes are the three slots generated per day, in order.
var plannedMealTypes = []meal.MealType{
	meal.MealTypeBreakfast,
	meal.MealTypeLunch,
	meal.MealTypeDinner,
}

// WeekPlanResult is the outcome of one week generation.
type WeekPlanResult struct {
	Slots   []meal.PlanSlot
	Created int
}

// GenerateWeek drives the model for a full week of meals and persists
// each valid slot. The pipeline is assemble, prompt, complete, validate,
// persist; writes happen only after validation, per-slot upsert with
// last-writer-wins. Unlike single suggestions there is no fallback: an
// unusable model is an error.
func (s *Service) GenerateWeek(ctx context.Context, weekStart time.Time) (*WeekPlanResult, error) {
	weekStart = weekStart.UTC().Truncate(24 * time.Hour)

	bundle, err := s.assembler.Build(ctx, s.now())
	if err != nil {
		return nil, err
	}

	prompt := ComposeWeekPlan(weekStart, bundle)
	messages := []outbound.ChatMessage{
		{Role: "system", Content: prompt.System},
		{Role: "user", Content: prompt.User},
	}

	var slots []meal.PlanSlot
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		content, err := s.chat.Complete(ctx, messages)
		if err != nil {
			lastErr = err
			s.logger.Warn("week-plan completion failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		slots, err = parseWeekPlan(content, weekStart)
		if err != nil {
			lastErr = err
			s.logger.Warn("week-plan completion was malformed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, errors.NewLLMUnavailableError(lastErr)
	}
	if len(slots) == 0 {
		return nil, errors.NewLLMUnavailableError(nil)
	}

	for _, slot := range slots {
		if err := s.plans.UpsertSlot(ctx, slot); err != nil {
			return nil, errors.NewDatabaseError("persist plan slot", err)
		}
	}

	s.logger.Info("week plan generated",
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int("slots", len(slots)))

	return &WeekPlanResult{Slots: slots, Created: len(slots)}, nil
}

// parseWeekPlan validates the model's week shape. Malformed day entries
// and malformed meal entries are dropped; the remainder is kept.
func parseWeekPlan(content string, weekStart time.Time) ([]meal.PlanSlot, error) {
	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		WeekPlan []struct {
			Day   string                     `json:"day"`
			Meals map[string]json.RawMessage `json:"meals"`
		} `json:"weekPlan"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &envelope); err != nil {
		return nil, err
	}

	var slots []meal.PlanSlot
	for _, day := range envelope.WeekPlan {
		offset, ok := dayOffsets[day.Day]
		if !ok {
			continue
		}
		date := weekStart.AddDate(0, 0, offset)

		for _, mealType := range plannedMealTypes {
			raw, ok := day.Meals[string(mealType)]
			if !ok {
				continue
			}
			var payload meal.Payload
			if err := json.Unmarshal(raw, &payload); err != nil {
				continue
			}
			// The slot key is authoritative for the meal type.
			payload.MealType = mealType
			if err := payload.Validate(); err != nil {
				continue
			}
			slots = append(slots, meal.PlanSlot{
				Date:     date,
				MealType: mealType,
				Meal:     payload,
			})
		}
	}
	return slots, nil
}
