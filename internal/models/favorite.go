package models

import (
	"time"
)

// FavoriteRecipe marks a dataset recipe as saved by a client. There are
// no accounts; ClientID is an opaque identifier supplied by the caller.
type FavoriteRecipe struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ClientID  string    `gorm:"size:64;not null;index:idx_favorite_client_recipe,unique" json:"client_id"`
	RecipeID  string    `gorm:"size:64;not null;index:idx_favorite_client_recipe,unique" json:"recipe_id"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}

// RecipeRating is a 1-5 rating a client gave a recipe.
type RecipeRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ClientID  string    `gorm:"size:64;not null;index:idx_rating_client_recipe,unique" json:"client_id"`
	RecipeID  string    `gorm:"size:64;not null;index:idx_rating_client_recipe,unique" json:"recipe_id"`
	Score     int       `gorm:"not null" json:"score"`
}

func (RecipeRating) TableName() string {
	return "recipe_ratings"
}
