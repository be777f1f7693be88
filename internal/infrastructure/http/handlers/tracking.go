package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mealforge/v1/internal/application/household"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// TrackingHandlers handles meal history, day reviews and preferences
type TrackingHandlers struct {
	household          *household.Service
	defaultCalorieGoal int
	logger             *zap.Logger
}

// NewTrackingHandlers creates a new tracking handlers instance
func NewTrackingHandlers(householdService *household.Service, defaultCalorieGoal int, logger *zap.Logger) *TrackingHandlers {
	return &TrackingHandlers{
		household:          householdService,
		defaultCalorieGoal: defaultCalorieGoal,
		logger:             logger,
	}
}

// RecordMealRequest represents a history entry
type RecordMealRequest struct {
	MealName string `json:"mealName"`
	Cuisine  string `json:"cuisine"`
	MealType string `json:"mealType"`
	EatenAt  string `json:"eatenAt,omitempty"`
	Rating   *int   `json:"rating,omitempty"`
	Calories *int   `json:"calories,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// historyEntryView is the wire shape of one history row
type historyEntryView struct {
	MealName string `json:"mealName"`
	Cuisine  string `json:"cuisine"`
	MealType string `json:"mealType"`
	EatenAt  string `json:"eatenAt"`
	Rating   *int   `json:"rating,omitempty"`
	Calories *int   `json:"calories,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// RecordMeal handles POST /api/v1/history
func (h *TrackingHandlers) RecordMeal(w http.ResponseWriter, r *http.Request) {
	var req RecordMealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	entry := meal.HistoryEntry{
		MealName: req.MealName,
		Cuisine:  meal.Cuisine(req.Cuisine),
		MealType: meal.MealType(req.MealType),
		Rating:   req.Rating,
		Calories: req.Calories,
		Notes:    req.Notes,
	}
	if req.EatenAt != "" {
		eatenAt, err := time.Parse(time.RFC3339, req.EatenAt)
		if err != nil {
			writeError(w, r, h.logger, errors.NewValidationError(
				fmt.Sprintf("eatenAt: %q is not a valid RFC 3339 timestamp", req.EatenAt)))
			return
		}
		entry.EatenAt = eatenAt
	}

	if err := h.household.RecordMeal(r.Context(), entry); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, APIResponse{Success: true, Message: "Meal recorded"})
}

// ListHistory handles GET /api/v1/history?from=...&to=...
func (h *TrackingHandlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, r, h.logger, errors.NewValidationError(fmt.Sprintf("from: %q is not a valid YYYY-MM-DD date", v)))
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, r, h.logger, errors.NewValidationError(fmt.Sprintf("to: %q is not a valid YYYY-MM-DD date", v)))
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	entries, err := h.household.HistoryBetween(r.Context(), from, to)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views := make([]historyEntryView, len(entries))
	for i, entry := range entries {
		views[i] = historyEntryView{
			MealName: entry.MealName,
			Cuisine:  string(entry.Cuisine),
			MealType: string(entry.MealType),
			EatenAt:  entry.EatenAt.UTC().Format(time.RFC3339),
			Rating:   entry.Rating,
			Calories: entry.Calories,
			Notes:    entry.Notes,
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: views})
}

// UpsertReviewRequest represents a day review
type UpsertReviewRequest struct {
	Date         string `json:"date"`
	Variety      int    `json:"variety"`
	Effort       int    `json:"effort"`
	Satisfaction int    `json:"satisfaction"`
	Notes        string `json:"notes,omitempty"`
}

// UpsertReview handles PUT /api/v1/reviews
func (h *TrackingHandlers) UpsertReview(w http.ResponseWriter, r *http.Request) {
	var req UpsertReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, r, h.logger, errors.NewValidationError(fmt.Sprintf("date: %q is not a valid YYYY-MM-DD date", req.Date)))
		return
	}

	review := meal.DayReview{
		Date:         date,
		Variety:      req.Variety,
		Effort:       req.Effort,
		Satisfaction: req.Satisfaction,
		Notes:        req.Notes,
	}
	if err := h.household.UpsertReview(r.Context(), review); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Review saved"})
}

// ListReviews handles GET /api/v1/reviews
func (h *TrackingHandlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	since := time.Now().UTC().AddDate(0, 0, -30)
	reviews, err := h.household.RecentReviews(r.Context(), since, 30)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	type reviewView struct {
		Date         string `json:"date"`
		Variety      int    `json:"variety"`
		Effort       int    `json:"effort"`
		Satisfaction int    `json:"satisfaction"`
		Notes        string `json:"notes,omitempty"`
	}
	views := make([]reviewView, len(reviews))
	for i, review := range reviews {
		views[i] = reviewView{
			Date:         review.Date.Format("2006-01-02"),
			Variety:      review.Variety,
			Effort:       review.Effort,
			Satisfaction: review.Satisfaction,
			Notes:        review.Notes,
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: views})
}

// CalorieGoalRequest represents a calorie goal update
type CalorieGoalRequest struct {
	DailyCalorieGoal int `json:"dailyCalorieGoal"`
}

// GetCalorieGoal handles GET /api/v1/preferences/calorie-goal
func (h *TrackingHandlers) GetCalorieGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.household.CalorieGoal(r.Context(), h.defaultCalorieGoal)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    CalorieGoalRequest{DailyCalorieGoal: goal},
	})
}

// SetCalorieGoal handles PUT /api/v1/preferences/calorie-goal
func (h *TrackingHandlers) SetCalorieGoal(w http.ResponseWriter, r *http.Request) {
	var req CalorieGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.household.SetCalorieGoal(r.Context(), req.DailyCalorieGoal); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Calorie goal saved"})
}
