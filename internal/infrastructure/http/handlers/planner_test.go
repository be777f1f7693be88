package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mealforge/v1/internal/application/planner"
	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInventory struct{ items []meal.InventoryItem }

func (f *fakeInventory) List(ctx context.Context) ([]meal.InventoryItem, error) { return f.items, nil }
func (f *fakeInventory) FindByName(ctx context.Context, name string) (*meal.InventoryItem, error) {
	return nil, meal.ErrInventoryItemNotFound
}
func (f *fakeInventory) Upsert(ctx context.Context, item meal.InventoryItem) error { return nil }
func (f *fakeInventory) AdjustQuantity(ctx context.Context, name string, delta float64) error {
	return nil
}
func (f *fakeInventory) Delete(ctx context.Context, name string) error { return nil }

type fakeHistory struct{}

func (fakeHistory) Record(ctx context.Context, entry meal.HistoryEntry) error { return nil }
func (fakeHistory) DistinctNamesSince(ctx context.Context, since time.Time) ([]string, error) {
	return nil, nil
}
func (fakeHistory) CuisinesSince(ctx context.Context, since time.Time) ([]meal.Cuisine, error) {
	return nil, nil
}
func (fakeHistory) RatedSince(ctx context.Context, since time.Time) ([]meal.HistoryEntry, error) {
	return nil, nil
}
func (fakeHistory) CaloriesBetween(ctx context.Context, from, to time.Time) (int, error) {
	return 400, nil
}
func (fakeHistory) EatenBetween(ctx context.Context, from, to time.Time) ([]meal.HistoryEntry, error) {
	return nil, nil
}

type fakeReviews struct{}

func (fakeReviews) Upsert(ctx context.Context, review meal.DayReview) error { return nil }
func (fakeReviews) RecentSince(ctx context.Context, since time.Time, limit int) ([]meal.DayReview, error) {
	return nil, nil
}

type fakePrefs struct{}

func (fakePrefs) Get(ctx context.Context, key string) (string, error) {
	return "", meal.ErrPreferenceNotFound
}
func (fakePrefs) Set(ctx context.Context, key, value string) error { return nil }

type fakePlans struct{ slots []meal.PlanSlot }

func (f *fakePlans) UpsertSlot(ctx context.Context, slot meal.PlanSlot) error { return nil }
func (f *fakePlans) SlotsBetween(ctx context.Context, from, to time.Time) ([]meal.PlanSlot, error) {
	return f.slots, nil
}
func (f *fakePlans) DeleteBetween(ctx context.Context, from, to time.Time) error { return nil }

type fakeShopping struct{}

func (fakeShopping) ListUnpurchased(ctx context.Context) ([]meal.ShoppingItem, error) {
	return nil, nil
}
func (fakeShopping) CreateBatch(ctx context.Context, items []meal.ShoppingItem) error { return nil }
func (fakeShopping) SetPurchased(ctx context.Context, name string, purchased bool) error {
	return nil
}

type fakeChat struct{ content string }

func (f *fakeChat) Complete(ctx context.Context, messages []outbound.ChatMessage) (string, error) {
	return f.content, nil
}

func newTestPlannerService(chatContent string, plans *fakePlans) *planner.Service {
	logger := zap.NewNop()
	assembler := planner.NewContextAssembler(
		&fakeInventory{}, fakeHistory{}, fakeReviews{}, fakePrefs{},
		2000, time.UTC, logger,
	)
	return planner.NewService(
		assembler, &fakeChat{content: chatContent}, plans, fakeShopping{}, &fakeInventory{}, nil,
		planner.Options{Now: func() time.Time { return time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC) }},
		logger,
	)
}

func TestSuggestResponseShape(t *testing.T) {
	content := `{"suggestions":[
		{"name":"Dal Fry","cuisine":"indian","mealType":"dinner","prepTime":30,"estimatedCalories":400,"ingredients":[]},
		{"name":"Lemon Rice","cuisine":"indian","mealType":"dinner","prepTime":25,"estimatedCalories":350,"ingredients":[]}
	]}`
	h := NewPlannerHandlers(newTestPlannerService(content, &fakePlans{}), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.NotContains(t, body, "data", "suggestions and calorieInfo live at the top level")
	require.Contains(t, body, "suggestions")
	require.Contains(t, body, "calorieInfo")

	var suggestions []planner.Suggestion
	require.NoError(t, json.Unmarshal(body["suggestions"], &suggestions))
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Lemon Rice", suggestions[0].Name, "calorie order survives serialization")

	var budget planner.CalorieBudget
	require.NoError(t, json.Unmarshal(body["calorieInfo"], &budget))
	assert.Equal(t, planner.CalorieBudget{Goal: 2000, Consumed: 400, Remaining: 1600}, budget)
}

func TestGenerateShoppingResponseShape(t *testing.T) {
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	plans := &fakePlans{slots: []meal.PlanSlot{{
		Date:     monday,
		MealType: meal.MealTypeLunch,
		Meal: meal.Payload{
			Name: "Dal Rice", Cuisine: meal.CuisineIndian, MealType: meal.MealTypeLunch,
			PrepTime: 30, EstimatedCalories: 400,
			Ingredients: []meal.Ingredient{{Name: "Rice", Quantity: 0.5, Unit: "kg"}},
		},
	}}}
	h := NewPlannerHandlers(newTestPlannerService("", plans), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-list/generate", strings.NewReader(`{"week":"2025-06-16"}`))
	rec := httptest.NewRecorder()
	h.GenerateShopping(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.NotContains(t, body, "data", "the list lives at the top level")
	require.Contains(t, body, "shoppingList")

	var items []shoppingItemView
	require.NoError(t, json.Unmarshal(body["shoppingList"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, 0.5, items[0].Quantity)
}
