package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mealforge/v1/internal/application/household"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// PlanHandlers handles stored week-plan reads and the shopping list
type PlanHandlers struct {
	household *household.Service
	logger    *zap.Logger
}

// NewPlanHandlers creates a new plan handlers instance
func NewPlanHandlers(householdService *household.Service, logger *zap.Logger) *PlanHandlers {
	return &PlanHandlers{household: householdService, logger: logger}
}

// GetWeek handles GET /api/v1/plan/week?weekStart=YYYY-MM-DD
func (h *PlanHandlers) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, err := resolveWeekStart(r.URL.Query().Get("weekStart"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	slots, err := h.household.WeekPlan(r.Context(), weekStart)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"weekStart": weekStart.Format("2006-01-02"),
		"weekPlan":  renderWeekPlan(slots),
	})
}

// ClearWeek handles DELETE /api/v1/plan/week?weekStart=YYYY-MM-DD
func (h *PlanHandlers) ClearWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, err := resolveWeekStart(r.URL.Query().Get("weekStart"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.household.ClearWeek(r.Context(), weekStart); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Week plan cleared"})
}

// ListShopping handles GET /api/v1/shopping-list
func (h *PlanHandlers) ListShopping(w http.ResponseWriter, r *http.Request) {
	items, err := h.household.ShoppingList(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: renderShoppingItems(items)})
}

// SetPurchasedRequest represents a purchased-flag update
type SetPurchasedRequest struct {
	Purchased bool `json:"purchased"`
}

// SetPurchased handles POST /api/v1/shopping-list/{name}/purchased
func (h *PlanHandlers) SetPurchased(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, r, h.logger, errors.NewValidationError("name: is required"))
		return
	}

	var req SetPurchasedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.household.SetShoppingItemPurchased(r.Context(), name, req.Purchased); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Shopping item updated"})
}
