package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/pantrypilot/backend/internal/database"
	"github.com/pantrypilot/backend/internal/dataset"
	"github.com/pantrypilot/backend/internal/models"
	"github.com/pantrypilot/backend/internal/service"
)

func newTestStore(t *testing.T, recipes []models.Recipe) *dataset.Store {
	t.Helper()
	data, err := json.Marshal(recipes)
	assert.NoError(t, err)
	store, err := dataset.Load(bytes.NewReader(data))
	assert.NoError(t, err)
	return store
}

func newFavoriteService(t *testing.T, recipes []models.Recipe) (*service.FavoriteService, *dataset.Store) {
	t.Helper()
	db, err := database.New(":memory:")
	assert.NoError(t, err)
	store := newTestStore(t, recipes)
	return service.NewFavoriteService(db, store), store
}

func TestFavoriteAndList(t *testing.T) {
	svc, _ := newFavoriteService(t, recipeFixtures())
	ctx := context.Background()

	assert.NoError(t, svc.Favorite(ctx, "client-1", "pasta-primavera"))
	assert.NoError(t, svc.Favorite(ctx, "client-1", "green-salad"))
	// Saving twice is a no-op
	assert.NoError(t, svc.Favorite(ctx, "client-1", "pasta-primavera"))

	favorites, err := svc.ListFavorites(ctx, "client-1")
	assert.NoError(t, err)
	assert.Len(t, favorites, 2)

	// Another client sees nothing
	favorites, err = svc.ListFavorites(ctx, "client-2")
	assert.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteUnknownRecipe(t *testing.T) {
	svc, _ := newFavoriteService(t, recipeFixtures())

	err := svc.Favorite(context.Background(), "client-1", "no-such-recipe")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestFavoriteRequiresClientID(t *testing.T) {
	svc, _ := newFavoriteService(t, recipeFixtures())

	err := svc.Favorite(context.Background(), "  ", "pasta-primavera")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestUnfavorite(t *testing.T) {
	svc, _ := newFavoriteService(t, recipeFixtures())
	ctx := context.Background()

	assert.NoError(t, svc.Favorite(ctx, "client-1", "pasta-primavera"))
	assert.NoError(t, svc.Unfavorite(ctx, "client-1", "pasta-primavera"))

	favorites, err := svc.ListFavorites(ctx, "client-1")
	assert.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestRateValidation(t *testing.T) {
	svc, _ := newFavoriteService(t, recipeFixtures())
	ctx := context.Background()

	for _, score := range []int{0, 6, -1} {
		err := svc.Rate(ctx, "client-1", "pasta-primavera", score)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidInput))
	}

	assert.NoError(t, svc.Rate(ctx, "client-1", "pasta-primavera", 5))
	// Re-rating replaces the earlier score
	assert.NoError(t, svc.Rate(ctx, "client-1", "pasta-primavera", 2))
}

func TestRecommendWithoutFavorites(t *testing.T) {
	svc, _ := newFavoriteService(t, recipeFixtures())

	recs, err := svc.Recommend(context.Background(), "client-1", nil, 3)
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendPrefersAffineRecipes(t *testing.T) {
	recipes := []models.Recipe{
		{
			ID: "fav-pasta", Name: "Fav Pasta", Cuisine: "italian", Difficulty: "easy", Servings: 2,
			Dietary:     []string{"vegetarian"},
			Ingredients: []models.IngredientEntry{{Name: "pasta", Quantity: 100, Unit: "g"}},
		},
		{
			ID: "other-pasta", Name: "Other Pasta", Cuisine: "italian", Difficulty: "easy", Servings: 2,
			Dietary:     []string{"vegetarian"},
			Ingredients: []models.IngredientEntry{{Name: "pasta", Quantity: 100, Unit: "g"}},
		},
		{
			ID: "stew", Name: "Stew", Cuisine: "french", Difficulty: "hard", Servings: 4,
			Ingredients: []models.IngredientEntry{{Name: "beef", Quantity: 500, Unit: "g"}},
		},
	}
	svc, _ := newFavoriteService(t, recipes)
	ctx := context.Background()

	assert.NoError(t, svc.Favorite(ctx, "client-1", "fav-pasta"))
	assert.NoError(t, svc.Rate(ctx, "client-1", "fav-pasta", 5))

	recs, err := svc.Recommend(ctx, "client-1", nil, 3)
	assert.NoError(t, err)
	// The favorite itself is excluded; the affine italian vegetarian
	// recipe wins, the unrelated stew scores zero and is dropped.
	assert.Len(t, recs, 1)
	assert.Equal(t, "other-pasta", recs[0].ID)
}

func TestRecommendHonorsLimit(t *testing.T) {
	svc, _ := newFavoriteService(t, recipeFixtures())
	ctx := context.Background()

	assert.NoError(t, svc.Favorite(ctx, "client-1", "pasta-primavera"))

	recs, err := svc.Recommend(ctx, "client-1", []string{"vegetarian"}, 1)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(recs), 1)
}
