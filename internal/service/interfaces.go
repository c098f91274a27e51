package service

import (
	"context"

	"github.com/pantrypilot/backend/internal/models"
)

// LLMServiceInterface is the generation collaborator contract consumed
// by the suggestion pipeline.
type LLMServiceInterface interface {
	Configured() bool
	GenerateRecipes(ctx context.Context, ingredients []string, criteria FilterCriteria, servings, n int) ([]models.Recipe, error)
	ExtractIngredients(ctx context.Context, image []byte, mediaType string) ([]string, error)
}

// FavoriteServiceInterface defines the per-client favorites, ratings
// and recommendation operations.
type FavoriteServiceInterface interface {
	Favorite(ctx context.Context, clientID, recipeID string) error
	Unfavorite(ctx context.Context, clientID, recipeID string) error
	Rate(ctx context.Context, clientID, recipeID string, score int) error
	ListFavorites(ctx context.Context, clientID string) ([]models.Recipe, error)
	Recommend(ctx context.Context, clientID string, dietaryPrefs []string, limit int) ([]models.Recipe, error)
}
