// Package gorm provides the GORM-backed persistence gateway. Every
// query is scoped to the caller's user id; rows never leak across users.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vothanhthong/yummyai/internal/domain/recipe"
	"gorm.io/gorm"
)

// RecipeData stores a recipe as a JSON column.
type RecipeData recipe.Recipe

// Value implements driver.Valuer.
func (d RecipeData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *RecipeData) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("cannot scan %T into RecipeData", value)
	}
}

// ChatMessageModel is one chat_history row.
type ChatMessageModel struct {
	ID         uuid.UUID   `gorm:"type:char(36);primaryKey"`
	UserID     string      `gorm:"type:varchar(255);not null;index:idx_chat_user_created,priority:1"`
	Role       string      `gorm:"type:varchar(20);not null"`
	Content    string      `gorm:"type:text;not null"`
	RecipeData *RecipeData `gorm:"type:json"`
	CreatedAt  time.Time   `gorm:"index:idx_chat_user_created,priority:2"`
}

// CookbookEntryModel is one saved recipe. RecipeName is denormalized
// for the id-or-name duplicate check.
type CookbookEntryModel struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID     string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_cookbook_user_recipe,priority:1"`
	RecipeID   string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_cookbook_user_recipe,priority:2"`
	RecipeName string     `gorm:"type:varchar(500);not null;index"`
	RecipeData RecipeData `gorm:"type:json;not null"`
	SavedAt    time.Time  `gorm:"index"`
}

// QuickSuggestionModel is one quick-suggestion chip.
type QuickSuggestionModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID     string    `gorm:"type:varchar(255);not null;index"`
	Label      string    `gorm:"type:varchar(255);not null"`
	Prompt     string    `gorm:"type:text;not null"`
	OrderIndex int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MealPlanModel is one planner slot; (user, date, meal type) is unique.
type MealPlanModel struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID     string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_mealplan_slot,priority:1"`
	Date       string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_mealplan_slot,priority:2"`
	MealType   string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_mealplan_slot,priority:3"`
	RecipeData RecipeData `gorm:"type:json;not null"`
	Notes      string     `gorm:"type:text"`
	CreatedAt  time.Time
}

// BeforeCreate hooks assign ids when the caller did not.

func (m *ChatMessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *CookbookEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *QuickSuggestionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (ChatMessageModel) TableName() string    { return "chat_history" }
func (CookbookEntryModel) TableName() string  { return "cookbook" }
func (QuickSuggestionModel) TableName() string { return "quick_suggestions" }
func (MealPlanModel) TableName() string       { return "meal_plans" }
