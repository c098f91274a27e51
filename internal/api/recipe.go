package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pantrypilot/backend/internal/models"
	"github.com/pantrypilot/backend/internal/service"
)

// RecipeHandler serves the dataset pipeline: filtered and ranked
// listings, single recipes, serving-scaled copies, favorites, ratings
// and personalized recommendations.
type RecipeHandler struct {
	recipes   *service.RecipeService
	favorites service.FavoriteServiceInterface
}

// NewRecipeHandler creates a new RecipeHandler instance.
func NewRecipeHandler(recipes *service.RecipeService, favorites service.FavoriteServiceInterface) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, favorites: favorites}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/scaled", h.GetScaledRecipe)
		recipes.POST("/:id/favorite", h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", h.UnfavoriteRecipe)
		recipes.PUT("/:id/rating", h.RateRecipe)
	}
	router.GET("/favorites", h.ListFavorites)
	router.GET("/recommendations", h.Recommendations)
}

// ListRecipes filters the dataset by the query criteria and, when an
// ingredients parameter is present, ranks the survivors by ingredient
// overlap.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	criteria := service.FilterCriteria{
		MaxDifficulty: c.Query("difficulty"),
	}
	if dietary := c.Query("dietary"); dietary != "" {
		criteria.Dietary = strings.Split(dietary, ",")
	}
	if raw := c.Query("max_prep_time"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid max_prep_time %q", raw)})
			return
		}
		criteria.MaxPrepTime = &v
	}

	filtered, warnings := h.recipes.Filter(criteria)

	if ingredients := c.Query("ingredients"); ingredients != "" {
		ranked := service.Rank(filtered, strings.Split(ingredients, ","))
		c.JSON(http.StatusOK, gin.H{
			"results":  ranked,
			"warnings": warnings,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":  filtered,
		"warnings": warnings,
	})
}

// GetRecipe returns a single dataset recipe.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, ok := h.recipes.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GetScaledRecipe returns a copy of a recipe scaled to the requested
// serving count.
func (h *RecipeHandler) GetScaledRecipe(c *gin.Context) {
	recipe, ok := h.recipes.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	raw := c.Query("servings")
	servings, err := strconv.Atoi(raw)
	if err != nil {
		c.Error(fmt.Errorf("invalid servings %q: %w", raw, models.ErrInvalidInput))
		return
	}

	scaled, err := service.Scale(recipe, servings)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, scaled)
}

// FavoriteRecipe saves a recipe for a client.
func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.favorites.Favorite(c.Request.Context(), req.ClientID, c.Param("id")); err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe favorited successfully", "id": c.Param("id")})
}

// UnfavoriteRecipe removes a saved recipe for a client.
func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.favorites.Unfavorite(c.Request.Context(), req.ClientID, c.Param("id")); err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe unfavorited successfully", "id": c.Param("id")})
}

// RateRecipe records a 1-5 rating.
func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.favorites.Rate(c.Request.Context(), req.ClientID, c.Param("id"), req.Score); err != nil {
		if service.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating saved", "id": c.Param("id")})
}

// ListFavorites returns a client's saved recipes.
func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	clientID := c.Query("client_id")
	favorites, err := h.favorites.ListFavorites(c.Request.Context(), clientID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// Recommendations returns personalized suggestions derived from the
// client's favorites and ratings.
func (h *RecipeHandler) Recommendations(c *gin.Context) {
	clientID := c.Query("client_id")

	limit := 3
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid limit %q", raw)})
			return
		}
		limit = v
	}

	var dietary []string
	if raw := c.Query("dietary"); raw != "" {
		dietary = strings.Split(raw, ",")
	}

	recommendations, err := h.favorites.Recommend(c.Request.Context(), clientID, dietary, limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}
