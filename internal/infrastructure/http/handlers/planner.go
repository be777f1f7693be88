package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mealforge/v1/internal/application/planner"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// PlannerHandlers handles the suggestion and planning endpoints
type PlannerHandlers struct {
	planner  *planner.Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPlannerHandlers creates a new planner handlers instance
func NewPlannerHandlers(plannerService *planner.Service, logger *zap.Logger) *PlannerHandlers {
	return &PlannerHandlers{
		planner:  plannerService,
		validate: validator.New(),
		logger:   logger,
	}
}

// Suggest handles POST /api/v1/suggestions
func (h *PlannerHandlers) Suggest(w http.ResponseWriter, r *http.Request) {
	var req planner.SuggestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(err.Error()))
		return
	}

	resp, err := h.planner.Suggest(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": resp.Suggestions,
		"calorieInfo": resp.CalorieInfo,
	})
}

// GenerateWeekRequest represents a week-plan generation request
type GenerateWeekRequest struct {
	WeekStart string `json:"weekStart,omitempty"`
}

// weekPlanDay is one rendered day of a generated or stored week plan
type weekPlanDay struct {
	Date  string                  `json:"date"`
	Day   string                  `json:"day"`
	Meals map[string]meal.Payload `json:"meals"`
}

// GenerateWeek handles POST /api/v1/plan/week
func (h *PlannerHandlers) GenerateWeek(w http.ResponseWriter, r *http.Request) {
	var req GenerateWeekRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	}

	weekStart, err := resolveWeekStart(req.WeekStart)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.planner.GenerateWeek(r.Context(), weekStart)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"weekPlan":     renderWeekPlan(result.Slots),
		"createdPlans": result.Created,
	})
}

// GenerateShoppingRequest represents a shopping-list derivation request
type GenerateShoppingRequest struct {
	Week string `json:"week,omitempty"`
}

// GenerateShopping handles POST /api/v1/shopping-list/generate
func (h *PlannerHandlers) GenerateShopping(w http.ResponseWriter, r *http.Request) {
	var req GenerateShoppingRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
	}

	weekStart, err := resolveWeekStart(req.Week)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	items, err := h.planner.DeriveShoppingList(r.Context(), weekStart)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"shoppingList": renderShoppingItems(items),
	})
}

// resolveWeekStart parses an optional YYYY-MM-DD value and anchors it to
// the Monday of its week. Empty input means the current week.
func resolveWeekStart(value string) (time.Time, error) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if value != "" {
		parsed, err := time.Parse("2006-01-02", value)
		if err != nil {
			return time.Time{}, errors.NewValidationError(fmt.Sprintf("weekStart: %q is not a valid YYYY-MM-DD date", value))
		}
		day = parsed.UTC()
	}

	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset), nil
}

// renderWeekPlan groups slots into day entries ordered by date.
func renderWeekPlan(slots []meal.PlanSlot) []weekPlanDay {
	index := make(map[string]int)
	days := make([]weekPlanDay, 0, 7)

	for _, slot := range slots {
		key := slot.Date.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, weekPlanDay{
				Date:  key,
				Day:   slot.Date.Weekday().String(),
				Meals: make(map[string]meal.Payload, 3),
			})
		}
		days[i].Meals[string(slot.MealType)] = slot.Meal
	}
	return days
}

// shoppingItemView is the wire shape of one shopping-list row
type shoppingItemView struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	Category  string  `json:"category"`
	Purchased bool    `json:"purchased"`
}

func renderShoppingItems(items []meal.ShoppingItem) []shoppingItemView {
	views := make([]shoppingItemView, len(items))
	for i, item := range items {
		views[i] = shoppingItemView{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Category:  string(item.Category),
			Purchased: item.Purchased,
		}
	}
	return views
}
