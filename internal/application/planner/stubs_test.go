package planner

import (
	"context"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// Hand-rolled stubs: the repository surface is small and the tests need
// per-call control that a mock framework would only obscure.

type stubInventory struct {
	items []meal.InventoryItem
	err   error
}

func (s *stubInventory) List(ctx context.Context) ([]meal.InventoryItem, error) {
	return s.items, s.err
}

func (s *stubInventory) FindByName(ctx context.Context, name string) (*meal.InventoryItem, error) {
	for i := range s.items {
		if meal.CaseFold(s.items[i].Name) == meal.CaseFold(name) {
			return &s.items[i], nil
		}
	}
	return nil, meal.ErrInventoryItemNotFound
}

func (s *stubInventory) Upsert(ctx context.Context, item meal.InventoryItem) error { return s.err }

func (s *stubInventory) AdjustQuantity(ctx context.Context, name string, delta float64) error {
	return s.err
}

func (s *stubInventory) Delete(ctx context.Context, name string) error { return s.err }

type stubHistory struct {
	names    []string
	cuisines []meal.Cuisine
	rated    []meal.HistoryEntry
	eaten    []meal.HistoryEntry
	calories int
	err      error
}

func (s *stubHistory) Record(ctx context.Context, entry meal.HistoryEntry) error { return s.err }

func (s *stubHistory) DistinctNamesSince(ctx context.Context, since time.Time) ([]string, error) {
	return s.names, s.err
}

func (s *stubHistory) CuisinesSince(ctx context.Context, since time.Time) ([]meal.Cuisine, error) {
	return s.cuisines, s.err
}

func (s *stubHistory) RatedSince(ctx context.Context, since time.Time) ([]meal.HistoryEntry, error) {
	return s.rated, s.err
}

func (s *stubHistory) CaloriesBetween(ctx context.Context, from, to time.Time) (int, error) {
	return s.calories, s.err
}

func (s *stubHistory) EatenBetween(ctx context.Context, from, to time.Time) ([]meal.HistoryEntry, error) {
	return s.eaten, s.err
}

type stubReviews struct {
	reviews []meal.DayReview
	err     error
}

func (s *stubReviews) Upsert(ctx context.Context, review meal.DayReview) error { return s.err }

func (s *stubReviews) RecentSince(ctx context.Context, since time.Time, limit int) ([]meal.DayReview, error) {
	return s.reviews, s.err
}

type stubPrefs struct {
	values map[string]string
	err    error
}

func (s *stubPrefs) Get(ctx context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	value, ok := s.values[key]
	if !ok {
		return "", meal.ErrPreferenceNotFound
	}
	return value, nil
}

func (s *stubPrefs) Set(ctx context.Context, key, value string) error { return s.err }

type stubPlans struct {
	slots    []meal.PlanSlot
	upserted []meal.PlanSlot
	err      error
}

func (s *stubPlans) UpsertSlot(ctx context.Context, slot meal.PlanSlot) error {
	if s.err != nil {
		return s.err
	}
	s.upserted = append(s.upserted, slot)
	return nil
}

func (s *stubPlans) SlotsBetween(ctx context.Context, from, to time.Time) ([]meal.PlanSlot, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []meal.PlanSlot
	for _, slot := range s.slots {
		if !slot.Date.Before(from) && slot.Date.Before(to) {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *stubPlans) DeleteBetween(ctx context.Context, from, to time.Time) error { return s.err }

type stubShopping struct {
	unpurchased []meal.ShoppingItem
	created     []meal.ShoppingItem
	err         error
}

func (s *stubShopping) ListUnpurchased(ctx context.Context) ([]meal.ShoppingItem, error) {
	return s.unpurchased, s.err
}

func (s *stubShopping) CreateBatch(ctx context.Context, items []meal.ShoppingItem) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, items...)
	return nil
}

func (s *stubShopping) SetPurchased(ctx context.Context, name string, purchased bool) error {
	return s.err
}

// stubChat serves canned completions in order; calls past the end repeat
// the last entry.
type stubChat struct {
	responses []string
	errs      []error
	calls     int
}

func (s *stubChat) Complete(ctx context.Context, messages []outbound.ChatMessage) (string, error) {
	i := s.calls
	s.calls++

	var err error
	if len(s.errs) > 0 {
		j := i
		if j >= len(s.errs) {
			j = len(s.errs) - 1
		}
		err = s.errs[j]
	}
	if err != nil {
		return "", err
	}

	if len(s.responses) == 0 {
		return "", nil
	}
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

type testDeps struct {
	inventory *stubInventory
	history   *stubHistory
	reviews   *stubReviews
	prefs     *stubPrefs
	plans     *stubPlans
	shopping  *stubShopping
	chat      *stubChat
}

func newTestDeps() *testDeps {
	return &testDeps{
		inventory: &stubInventory{},
		history:   &stubHistory{},
		reviews:   &stubReviews{},
		prefs:     &stubPrefs{values: map[string]string{}},
		plans:     &stubPlans{},
		shopping:  &stubShopping{},
		chat:      &stubChat{},
	}
}

func newTestService(deps *testDeps) *Service {
	logger := zap.NewNop()
	assembler := NewContextAssembler(
		deps.inventory, deps.history, deps.reviews, deps.prefs,
		2000, time.UTC, logger,
	)
	return NewService(
		assembler, deps.chat, deps.plans, deps.shopping, deps.inventory, nil,
		Options{Now: func() time.Time { return time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC) }},
		logger,
	)
}
