// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mealforge/v1/internal/domain/meal"
	"gorm.io/gorm"
)

// InventoryItemModel represents the GORM model for pantry items.
// NameFolded carries the case-folded name for case-insensitive lookups.
type InventoryItemModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name       string    `gorm:"type:varchar(200);not null"`
	NameFolded string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	Category   string    `gorm:"type:varchar(50);not null;index"`
	Quantity   float64   `gorm:"not null;default:0"`
	Unit       string    `gorm:"type:varchar(50)"`
	LowStockAt *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for InventoryItemModel
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// MealHistoryModel represents the GORM model for eaten meals
type MealHistoryModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	MealName  string    `gorm:"type:varchar(200);not null;index"`
	Cuisine   string    `gorm:"type:varchar(50);not null;index"`
	MealType  string    `gorm:"type:varchar(20);not null"`
	EatenAt   time.Time `gorm:"not null;index"`
	Rating    *int
	Calories  *int
	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName overrides the table name for MealHistoryModel
func (MealHistoryModel) TableName() string {
	return "meal_history"
}

// DayReviewModel represents the GORM model for daily reviews.
// Date is stored at UTC midnight, one review per day.
type DayReviewModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Date         time.Time `gorm:"uniqueIndex;not null"`
	Variety      int       `gorm:"not null;check:variety >= 0 AND variety <= 10"`
	Effort       int       `gorm:"not null;check:effort >= 0 AND effort <= 10"`
	Satisfaction int       `gorm:"not null;check:satisfaction >= 0 AND satisfaction <= 10"`
	Notes        string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for DayReviewModel
func (DayReviewModel) TableName() string {
	return "day_reviews"
}

// PreferenceModel represents the GORM model for keyed preferences
type PreferenceModel struct {
	Key       string `gorm:"type:varchar(100);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName overrides the table name for PreferenceModel
func (PreferenceModel) TableName() string {
	return "preferences"
}

// PlanSlotModel represents the GORM model for weekly plan slots.
// The meal payload is stored as one opaque JSON column; only this
// adapter serializes or parses it.
type PlanSlotModel struct {
	ID        uuid.UUID     `gorm:"type:char(36);primaryKey"`
	Date      time.Time     `gorm:"not null;uniqueIndex:idx_plan_slot"`
	MealType  string        `gorm:"type:varchar(20);not null;uniqueIndex:idx_plan_slot"`
	Payload   PayloadColumn `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for PlanSlotModel
func (PlanSlotModel) TableName() string {
	return "plan_slots"
}

// ShoppingItemModel represents the GORM model for shopping-list rows
type ShoppingItemModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name       string    `gorm:"type:varchar(200);not null"`
	NameFolded string    `gorm:"type:varchar(200);not null;index"`
	Quantity   float64   `gorm:"not null;default:0"`
	Unit       string    `gorm:"type:varchar(50)"`
	Category   string    `gorm:"type:varchar(50);not null;index"`
	Purchased  bool      `gorm:"default:false;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for ShoppingItemModel
func (ShoppingItemModel) TableName() string {
	return "shopping_items"
}

// PayloadColumn stores a meal payload as serialized JSON
type PayloadColumn meal.Payload

// Scan implements the sql.Scanner interface
func (p *PayloadColumn) Scan(value interface{}) error {
	if value == nil {
		*p = PayloadColumn{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PayloadColumn", value)
	}
}

// Value implements the driver.Valuer interface
func (p PayloadColumn) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// BeforeCreate hook for InventoryItemModel
func (i *InventoryItemModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MealHistoryModel
func (m *MealHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for DayReviewModel
func (d *DayReviewModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PlanSlotModel
func (p *PlanSlotModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for ShoppingItemModel
func (s *ShoppingItemModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
