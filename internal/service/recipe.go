package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pantrypilot/backend/internal/dataset"
	"github.com/pantrypilot/backend/internal/models"
)

// FilterCriteria narrows the candidate set. Zero values impose no
// constraint; all set criteria are combined with AND.
type FilterCriteria struct {
	// Dietary tags the recipe must all carry.
	Dietary []string
	// MaxDifficulty is an upper bound: easy < medium < hard.
	MaxDifficulty string
	// MaxPrepTime is an upper bound on prep minutes; nil means unset.
	MaxPrepTime *int
}

// RankResult pairs a recipe with its ingredient-overlap score in [0,1].
type RankResult struct {
	Recipe models.Recipe `json:"recipe"`
	Score  float64       `json:"score"`
}

// RecipeService implements the local recommendation pipeline over the
// read-only dataset: filtering, similarity ranking and serving scaling.
type RecipeService struct {
	store *dataset.Store
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(store *dataset.Store) *RecipeService {
	return &RecipeService{store: store}
}

// Store exposes the underlying dataset store.
func (s *RecipeService) Store() *dataset.Store {
	return s.store
}

// Get looks up a single recipe by id.
func (s *RecipeService) Get(id string) (models.Recipe, bool) {
	return s.store.Get(id)
}

// Filter applies the criteria to the full dataset, preserving dataset
// order. Malformed criteria are dropped and reported in the returned
// warnings, never fatal.
func (s *RecipeService) Filter(criteria FilterCriteria) ([]models.Recipe, []string) {
	return FilterRecipes(s.store.All(), criteria)
}

// FilterRecipes applies the criteria to an explicit candidate set.
func FilterRecipes(recipes []models.Recipe, criteria FilterCriteria) ([]models.Recipe, []string) {
	var warnings []string

	var maxDifficulty models.Difficulty
	if criteria.MaxDifficulty != "" {
		d, err := models.ParseDifficulty(criteria.MaxDifficulty)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring difficulty filter: %v", err))
		} else {
			maxDifficulty = d
		}
	}

	maxPrep := -1
	if criteria.MaxPrepTime != nil {
		if *criteria.MaxPrepTime < 0 {
			warnings = append(warnings, fmt.Sprintf("ignoring negative max prep time %d", *criteria.MaxPrepTime))
		} else {
			maxPrep = *criteria.MaxPrepTime
		}
	}

	tags := make([]string, 0, len(criteria.Dietary))
	for _, t := range criteria.Dietary {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, strings.ToLower(t))
		}
	}

	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !hasAllTags(&r, tags) {
			continue
		}
		if maxDifficulty != 0 {
			d, err := models.ParseDifficulty(r.Difficulty)
			if err != nil || d > maxDifficulty {
				continue
			}
		}
		if maxPrep >= 0 && r.PrepTime > maxPrep {
			continue
		}
		out = append(out, r)
	}
	return out, warnings
}

func hasAllTags(r *models.Recipe, tags []string) bool {
	for _, t := range tags {
		if !r.HasDietaryTag(t) {
			return false
		}
	}
	return true
}

// Rank orders the candidates by the fraction of their required
// ingredients present in the user's list, descending. Ties go to the
// recipe with the shorter ingredient list, then to dataset order. An
// empty user list yields zero scores for every candidate.
func Rank(candidates []models.Recipe, available []string) []RankResult {
	have := make(map[string]bool, len(available))
	for _, a := range available {
		if n := dataset.NormalizeIngredient(a); n != "" {
			have[n] = true
		}
	}

	results := make([]RankResult, len(candidates))
	for i, r := range candidates {
		results[i] = RankResult{Recipe: r, Score: overlapScore(&r, have)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return len(results[i].Recipe.Ingredients) < len(results[j].Recipe.Ingredients)
	})
	return results
}

func overlapScore(r *models.Recipe, have map[string]bool) float64 {
	if len(r.Ingredients) == 0 || len(have) == 0 {
		return 0
	}
	matched := 0
	for _, ing := range r.Ingredients {
		if have[ing.Name] {
			matched++
		}
	}
	return float64(matched) / float64(len(r.Ingredients))
}

// Scale returns a copy of the recipe with every ingredient quantity
// and nutrition amount multiplied by target/base, rounded to two
// decimals. The stored recipe is never mutated.
func Scale(r models.Recipe, targetServings int) (models.Recipe, error) {
	if targetServings <= 0 {
		return models.Recipe{}, fmt.Errorf("target servings must be positive, got %d: %w", targetServings, models.ErrInvalidInput)
	}
	if r.Servings <= 0 {
		return models.Recipe{}, fmt.Errorf("recipe %s has base servings %d: %w", r.ID, r.Servings, models.ErrDataIntegrity)
	}

	factor := float64(targetServings) / float64(r.Servings)
	out := r.Clone()
	out.Servings = targetServings
	for i := range out.Ingredients {
		out.Ingredients[i].Quantity = round2(out.Ingredients[i].Quantity * factor)
	}
	for k, v := range out.Nutrition {
		out.Nutrition[k] = round2(v * factor)
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
