package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantrypilot/backend/internal/models"
)

func TestLoadFile(t *testing.T) {
	store, err := LoadFile("testdata/recipes.json")
	assert.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	recipe, ok := store.Get("pasta-primavera")
	assert.True(t, ok)
	assert.Equal(t, "Pasta Primavera", recipe.Name)
	assert.Equal(t, "easy", recipe.Difficulty)

	// Ingredient names and tags are normalized at load
	assert.Equal(t, "pasta", recipe.Ingredients[0].Name)
	assert.Equal(t, "tomato", recipe.Ingredients[2].Name)
	assert.Equal(t, []string{"vegetarian"}, recipe.Dietary)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json")
	assert.Error(t, err)
}

func TestLoadPreservesOrder(t *testing.T) {
	store, err := LoadFile("testdata/recipes.json")
	assert.NoError(t, err)

	all := store.All()
	assert.Equal(t, "pasta-primavera", all[0].ID)
	assert.Equal(t, "lentil-soup", all[1].ID)
}

func TestLoadRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "zero base servings",
			json: `[{"id":"x","name":"X","difficulty":"easy","servings":0,"ingredients":[{"name":"a","quantity":1}]}]`,
		},
		{
			name: "missing id",
			json: `[{"id":"","name":"X","difficulty":"easy","servings":2,"ingredients":[{"name":"a","quantity":1}]}]`,
		},
		{
			name: "missing name",
			json: `[{"id":"x","name":"","difficulty":"easy","servings":2,"ingredients":[{"name":"a","quantity":1}]}]`,
		},
		{
			name: "unknown difficulty",
			json: `[{"id":"x","name":"X","difficulty":"impossible","servings":2,"ingredients":[{"name":"a","quantity":1}]}]`,
		},
		{
			name: "negative quantity",
			json: `[{"id":"x","name":"X","difficulty":"easy","servings":2,"ingredients":[{"name":"a","quantity":-1}]}]`,
		},
		{
			name: "no ingredients",
			json: `[{"id":"x","name":"X","difficulty":"easy","servings":2,"ingredients":[]}]`,
		},
		{
			name: "negative prep time",
			json: `[{"id":"x","name":"X","difficulty":"easy","servings":2,"prep_time":-5,"ingredients":[{"name":"a","quantity":1}]}]`,
		},
		{
			name: "duplicate id",
			json: `[{"id":"x","name":"X","difficulty":"easy","servings":2,"ingredients":[{"name":"a","quantity":1}]},
			        {"id":"x","name":"Y","difficulty":"easy","servings":2,"ingredients":[{"name":"b","quantity":1}]}]`,
		},
		{
			name: "not json",
			json: `{{{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.json))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrDataIntegrity), "expected data integrity error, got %v", err)
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	store, err := LoadFile("testdata/recipes.json")
	assert.NoError(t, err)

	all := store.All()
	all[0] = models.Recipe{}

	again, ok := store.Get("pasta-primavera")
	assert.True(t, ok)
	assert.Equal(t, "Pasta Primavera", again.Name)
}

func TestNormalizeIngredient(t *testing.T) {
	assert.Equal(t, "olive oil", NormalizeIngredient("  Olive   OIL "))
	assert.Equal(t, "", NormalizeIngredient("   "))
}
