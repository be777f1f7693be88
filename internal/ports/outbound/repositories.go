// Package outbound defines the interfaces for outbound ports (driven adapters).
// The planning engine holds read snapshots only; ownership of persisted state
// stays behind these interfaces.
package outbound

import (
	"context"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
)

// InventoryRepository defines the interface for pantry persistence
type InventoryRepository interface {
	List(ctx context.Context) ([]meal.InventoryItem, error)
	FindByName(ctx context.Context, name string) (*meal.InventoryItem, error)
	Upsert(ctx context.Context, item meal.InventoryItem) error
	AdjustQuantity(ctx context.Context, name string, delta float64) error
	Delete(ctx context.Context, name string) error
}

// HistoryRepository defines the interface for meal-history persistence
type HistoryRepository interface {
	Record(ctx context.Context, entry meal.HistoryEntry) error
	// DistinctNamesSince returns distinct meal names eaten at or after the
	// given instant.
	DistinctNamesSince(ctx context.Context, since time.Time) ([]string, error)
	// CuisinesSince returns the cuisines of meals eaten at or after the
	// given instant, in eaten order.
	CuisinesSince(ctx context.Context, since time.Time) ([]meal.Cuisine, error)
	// RatedSince returns entries with a rating eaten at or after the given
	// instant.
	RatedSince(ctx context.Context, since time.Time) ([]meal.HistoryEntry, error)
	// CaloriesBetween sums the calories of meals eaten in [from, to).
	CaloriesBetween(ctx context.Context, from, to time.Time) (int, error)
	// EatenBetween returns entries eaten in [from, to), oldest first.
	EatenBetween(ctx context.Context, from, to time.Time) ([]meal.HistoryEntry, error)
}

// ReviewRepository defines the interface for day-review persistence
type ReviewRepository interface {
	Upsert(ctx context.Context, review meal.DayReview) error
	// RecentSince returns reviews dated at or after the given day, newest
	// first, capped at limit.
	RecentSince(ctx context.Context, since time.Time, limit int) ([]meal.DayReview, error)
}

// PreferenceRepository defines the interface for keyed preferences
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// PlanRepository defines the interface for weekly plan persistence.
// Upsert is per-slot last-writer-wins; a duplicate (date, mealType) key
// overwrites the existing payload.
type PlanRepository interface {
	UpsertSlot(ctx context.Context, slot meal.PlanSlot) error
	SlotsBetween(ctx context.Context, from, to time.Time) ([]meal.PlanSlot, error)
	DeleteBetween(ctx context.Context, from, to time.Time) error
}

// ShoppingRepository defines the interface for shopping-list persistence
type ShoppingRepository interface {
	ListUnpurchased(ctx context.Context) ([]meal.ShoppingItem, error)
	CreateBatch(ctx context.Context, items []meal.ShoppingItem) error
	SetPurchased(ctx context.Context, name string, purchased bool) error
}

// ChatMessage is one role-tagged message of a chat completion request
type ChatMessage struct {
	Role    string
	Content string
}

// ChatService defines the interface to the external chat-completions
// endpoint. Complete returns the raw content of the first choice.
type ChatService interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// CacheRepository defines the byte-cache interface used for suggestion
// response caching
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
