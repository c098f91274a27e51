package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pantrypilot/backend/internal/dataset"
	"github.com/pantrypilot/backend/internal/models"
)

// MaxSuggestions caps the merged result list of a suggestion request.
const MaxSuggestions = 6

const generatedCacheTTL = 24 * time.Hour

// SuggestRequest carries the inputs of one suggestion round.
type SuggestRequest struct {
	Ingredients []string
	Criteria    FilterCriteria
	// Servings > 0 scales every returned recipe to that serving count.
	Servings int
	// Limit overrides MaxSuggestions when set to a smaller value.
	Limit int
}

// Suggestion is one merged result. Source is "generated" for
// collaborator output and "dataset" for the local pipeline; Score is
// only meaningful for dataset results.
type Suggestion struct {
	Recipe models.Recipe `json:"recipe"`
	Score  float64       `json:"score"`
	Source string        `json:"source"`
}

// SuggestResponse is the outcome of one suggestion round.
type SuggestResponse struct {
	BatchID     string       `json:"batch_id"`
	Suggestions []Suggestion `json:"suggestions"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// SuggestionService merges collaborator-generated recipes with the
// local dataset pipeline. The collaborator is consulted first; when it
// is unavailable the dataset pipeline serves alone. Generated batches
// are cached in Redis so repeated requests skip the collaborator.
type SuggestionService struct {
	recipes *RecipeService
	llm     LLMServiceInterface
	redis   *redis.Client
}

// NewSuggestionService creates a new SuggestionService instance. Both
// llm and redisClient may be nil; the pipeline degrades to dataset-only
// and uncached operation.
func NewSuggestionService(recipes *RecipeService, llm LLMServiceInterface, redisClient *redis.Client) *SuggestionService {
	return &SuggestionService{recipes: recipes, llm: llm, redis: redisClient}
}

// Suggest runs one suggestion round: generated recipes first, dataset
// ranking as fallback and filler, deduplicated by id and capped.
func (s *SuggestionService) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	if req.Servings < 0 {
		return nil, fmt.Errorf("servings must not be negative, got %d: %w", req.Servings, models.ErrInvalidInput)
	}
	limit := MaxSuggestions
	if req.Limit > 0 && req.Limit < limit {
		limit = req.Limit
	}

	generated, genWarnings := s.generate(ctx, req)

	candidates, warnings := s.recipes.Filter(req.Criteria)
	ranked := Rank(candidates, req.Ingredients)
	warnings = append(warnings, genWarnings...)

	merged := make([]Suggestion, 0, limit)
	seen := make(map[string]bool)
	for _, r := range generated {
		if len(merged) == limit {
			break
		}
		key := suggestionKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, Suggestion{Recipe: r, Source: "generated"})
	}
	for _, rr := range ranked {
		if len(merged) == limit {
			break
		}
		key := suggestionKey(rr.Recipe)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, Suggestion{Recipe: rr.Recipe, Score: rr.Score, Source: "dataset"})
	}

	if req.Servings > 0 {
		for i := range merged {
			scaled, err := Scale(merged[i].Recipe, req.Servings)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("could not scale %s: %v", merged[i].Recipe.ID, err))
				continue
			}
			merged[i].Recipe = scaled
		}
	}

	return &SuggestResponse{
		BatchID:     uuid.New().String(),
		Suggestions: merged,
		Warnings:    warnings,
	}, nil
}

// generate consults the cache, then the collaborator. Unavailability is
// the designed fallback path and is not an error of the round.
func (s *SuggestionService) generate(ctx context.Context, req SuggestRequest) ([]models.Recipe, []string) {
	if s.llm == nil || !s.llm.Configured() {
		return nil, nil
	}

	key := generatedCacheKey(req)
	if cached := s.cachedBatch(ctx, key); cached != nil {
		return cached, nil
	}

	generated, err := s.llm.GenerateRecipes(ctx, req.Ingredients, req.Criteria, req.Servings, MaxSuggestions)
	if err != nil {
		if errors.Is(err, models.ErrServiceUnavailable) {
			log.Printf("collaborator unavailable, using dataset only: %v", err)
			return nil, nil
		}
		return nil, []string{fmt.Sprintf("recipe generation failed: %v", err)}
	}

	s.storeBatch(ctx, key, generated)
	return generated, nil
}

func (s *SuggestionService) cachedBatch(ctx context.Context, key string) []models.Recipe {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil
	}
	return recipes
}

func (s *SuggestionService) storeBatch(ctx context.Context, key string, recipes []models.Recipe) {
	if s.redis == nil || len(recipes) == 0 {
		return
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, generatedCacheTTL).Err(); err != nil {
		log.Printf("failed to cache generated batch: %v", err)
	}
}

func generatedCacheKey(req SuggestRequest) string {
	maxPrep := -1
	if req.Criteria.MaxPrepTime != nil {
		maxPrep = *req.Criteria.MaxPrepTime
	}
	ingredients := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if n := dataset.NormalizeIngredient(ing); n != "" {
			ingredients = append(ingredients, n)
		}
	}
	sort.Strings(ingredients)
	raw := fmt.Sprintf("%s|%s|%s|%d|%d",
		strings.Join(ingredients, ","),
		strings.Join(req.Criteria.Dietary, ","),
		req.Criteria.MaxDifficulty,
		maxPrep,
		req.Servings,
	)
	return fmt.Sprintf("suggest:generated:%x", sha256.Sum256([]byte(raw)))
}

func suggestionKey(r models.Recipe) string {
	if r.ID != "" {
		return r.ID
	}
	return strings.ToLower(r.Name)
}
