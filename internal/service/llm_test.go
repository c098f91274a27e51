package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pantrypilot/backend/internal/models"
	"github.com/pantrypilot/backend/internal/service"
)

// chatResponse wraps content the way a chat-completions API does.
func chatResponse(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	assert.NoError(t, err)
	return body
}

func TestGenerateRecipesParsesResponse(t *testing.T) {
	var gotAuth string
	var gotReq service.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		content := `{"recipes":[{"name":"Zucchini Fritters","cuisine":"greek","difficulty":"Easy","prep_time":10,"ingredients":[{"name":"  Zucchini ","quantity":2}],"steps":["grate","fry"]}]}`
		w.Write(chatResponse(t, content))
	}))
	defer server.Close()

	svc := service.NewLLMService("test-key", server.URL, "text-model", "vision-model")
	assert.True(t, svc.Configured())

	recipes, err := svc.GenerateRecipes(context.Background(), []string{"zucchini"}, service.FilterCriteria{}, 2, 3)
	assert.NoError(t, err)
	assert.Len(t, recipes, 1)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "text-model", gotReq.Model)

	r := recipes[0]
	assert.Equal(t, "zucchini-fritters", r.ID)
	assert.Equal(t, "easy", r.Difficulty)
	assert.Equal(t, 2, r.Servings)
	assert.Equal(t, "zucchini", r.Ingredients[0].Name)
}

func TestGenerateRecipesDropsUnusableEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := `{"recipes":[{"name":"","ingredients":[{"name":"salt"}]},{"name":"No Ingredients"}]}`
		w.Write(chatResponse(t, content))
	}))
	defer server.Close()

	svc := service.NewLLMService("test-key", server.URL, "text-model", "vision-model")
	recipes, err := svc.GenerateRecipes(context.Background(), nil, service.FilterCriteria{}, 2, 3)
	assert.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestGenerateRecipesUnconfigured(t *testing.T) {
	svc := service.NewLLMService("", "", "text-model", "vision-model")
	assert.False(t, svc.Configured())

	_, err := svc.GenerateRecipes(context.Background(), []string{"pasta"}, service.FilterCriteria{}, 2, 3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestGenerateRecipesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream overloaded", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := service.NewLLMService("test-key", server.URL, "text-model", "vision-model")
	_, err := svc.GenerateRecipes(context.Background(), []string{"pasta"}, service.FilterCriteria{}, 2, 3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestGenerateRecipesUnreachable(t *testing.T) {
	svc := service.NewLLMService("test-key", "http://127.0.0.1:1", "text-model", "vision-model")
	_, err := svc.GenerateRecipes(context.Background(), []string{"pasta"}, service.FilterCriteria{}, 2, 3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
}

func TestExtractIngredientsNormalizesAndDeduplicates(t *testing.T) {
	var gotReq service.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(chatResponse(t, `{"ingredients":["Tomato","  tomato ","Bell  Pepper",""]}`))
	}))
	defer server.Close()

	svc := service.NewLLMService("test-key", server.URL, "text-model", "vision-model")
	ingredients, err := svc.ExtractIngredients(context.Background(), []byte{0xff, 0xd8}, "image/jpeg")
	assert.NoError(t, err)
	assert.Equal(t, []string{"tomato", "bell pepper"}, ingredients)
	assert.Equal(t, "vision-model", gotReq.Model)
}
