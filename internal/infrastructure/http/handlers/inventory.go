package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mealforge/v1/internal/application/household"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// InventoryHandlers handles pantry inventory endpoints
type InventoryHandlers struct {
	household *household.Service
	logger    *zap.Logger
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(householdService *household.Service, logger *zap.Logger) *InventoryHandlers {
	return &InventoryHandlers{household: householdService, logger: logger}
}

// inventoryItemView is the wire shape of one pantry row
type inventoryItemView struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Quantity   float64  `json:"quantity"`
	Unit       string   `json:"unit,omitempty"`
	LowStockAt *float64 `json:"lowStockAt,omitempty"`
}

// UpsertInventoryRequest represents a pantry create-or-replace request
type UpsertInventoryRequest struct {
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	Quantity   float64  `json:"quantity"`
	Unit       string   `json:"unit,omitempty"`
	LowStockAt *float64 `json:"lowStockAt,omitempty"`
}

// AdjustInventoryRequest represents a quantity adjustment request
type AdjustInventoryRequest struct {
	Delta float64 `json:"delta"`
}

// List handles GET /api/v1/inventory
func (h *InventoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.household.ListInventory(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views := make([]inventoryItemView, len(items))
	for i, item := range items {
		views[i] = inventoryItemView{
			Name:       item.Name,
			Category:   string(item.Category),
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			LowStockAt: item.LowStockAt,
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: views})
}

// Upsert handles PUT /api/v1/inventory
func (h *InventoryHandlers) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	item, err := h.household.UpsertInventoryItem(r.Context(), meal.InventoryItem{
		Name:       req.Name,
		Category:   meal.InventoryCategory(req.Category),
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		LowStockAt: req.LowStockAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: inventoryItemView{
			Name:       item.Name,
			Category:   string(item.Category),
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			LowStockAt: item.LowStockAt,
		},
	})
}

// Adjust handles POST /api/v1/inventory/{name}/adjust
func (h *InventoryHandlers) Adjust(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, r, h.logger, errors.NewValidationError("name: is required"))
		return
	}

	var req AdjustInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.household.AdjustInventory(r.Context(), name, req.Delta); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Quantity adjusted"})
}

// Delete handles DELETE /api/v1/inventory/{name}
func (h *InventoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, r, h.logger, errors.NewValidationError("name: is required"))
		return
	}

	if err := h.household.DeleteInventoryItem(r.Context(), name); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Item deleted"})
}
