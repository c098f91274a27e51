package api

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrypilot/backend/internal/service"
)

// SuggestHandler serves the generative endpoints: merged recipe
// suggestions and vision-based ingredient detection.
type SuggestHandler struct {
	suggestions *service.SuggestionService
	llm         service.LLMServiceInterface
}

// NewSuggestHandler creates a new SuggestHandler instance.
func NewSuggestHandler(suggestions *service.SuggestionService, llm service.LLMServiceInterface) *SuggestHandler {
	return &SuggestHandler{suggestions: suggestions, llm: llm}
}

// RegisterRoutes registers the suggestion routes.
func (h *SuggestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/suggest", h.Suggest)
	router.POST("/ingredients/detect", h.DetectIngredients)
}

// Suggest runs one suggestion round over the available ingredients.
func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.suggestions.Suggest(c.Request.Context(), service.SuggestRequest{
		Ingredients: req.Ingredients,
		Criteria: service.FilterCriteria{
			Dietary:       req.Dietary,
			MaxDifficulty: req.MaxDifficulty,
			MaxPrepTime:   req.MaxPrepTime,
		},
		Servings: req.Servings,
		Limit:    req.Limit,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DetectIngredients forwards a base64-encoded image to the
// collaborator's vision model and returns the detected ingredient
// names. Without a configured collaborator this responds 503 and the
// caller keeps working from typed ingredients.
func (h *SuggestHandler) DetectIngredients(c *gin.Context) {
	var req DetectIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be base64 encoded"})
		return
	}

	ingredients, err := h.llm.ExtractIngredients(c.Request.Context(), image, req.MediaType)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
