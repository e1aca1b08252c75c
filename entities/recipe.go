// File: entities/recipe.go
package entities

import (
	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	TimeMinutes   int             `gorm:"not null" json:"time_minutes"`
	Price         decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"price"`
	Description   string          `gorm:"type:text" json:"description"`
	Link          string          `gorm:"size:255" json:"link"`
	ImageKey      string          `gorm:"size:255" json:"image_key,omitempty"`
	ImageBlurHash string          `gorm:"size:64" json:"image_blurhash,omitempty"`

	User        *User        `gorm:"foreignKey:UserID"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
	Timestamp
}

// Tag names are unique per owner; reconciliation relies on the index.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"user_id"`
	Name   string `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`

	User *User `gorm:"foreignKey:UserID"`
}

type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_ingredients_user_name" json:"user_id"`
	Name   string `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`

	User *User `gorm:"foreignKey:UserID"`
}
