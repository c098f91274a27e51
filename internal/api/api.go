package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pantrypilot/backend/internal/dataset"
	"github.com/pantrypilot/backend/internal/service"
)

// SetupAPI wires the services and registers every route group under
// /api/v1. The llm and redis clients may be nil.
func SetupAPI(router *gin.Engine, store *dataset.Store, db *gorm.DB, llm service.LLMServiceInterface, redisClient *redis.Client) {
	v1 := router.Group("/api/v1")
	{
		// Initialize services
		recipeService := service.NewRecipeService(store)
		favoriteService := service.NewFavoriteService(db, store)
		suggestionService := service.NewSuggestionService(recipeService, llm, redisClient)

		// Initialize handlers
		recipeHandler := NewRecipeHandler(recipeService, favoriteService)
		suggestHandler := NewSuggestHandler(suggestionService, llm)

		// Register routes
		recipeHandler.RegisterRoutes(v1)
		suggestHandler.RegisterRoutes(v1)
	}
}
