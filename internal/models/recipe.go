package models

import (
	"fmt"
	"strings"
)

// Difficulty is an ordered cooking difficulty level.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyMedium
	DifficultyHard
)

// ParseDifficulty converts a textual difficulty into its level.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// IngredientEntry is a single required ingredient of a recipe.
// Name is stored normalized (lowercase, collapsed whitespace) so that
// overlap matching against user input is exact.
type IngredientEntry struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

// Recipe is one record of the recommendation dataset. Recipes are
// immutable after load; scaling produces derived copies.
type Recipe struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Cuisine       string             `json:"cuisine,omitempty"`
	Category      string             `json:"category,omitempty"`
	Difficulty    string             `json:"difficulty"`
	PrepTime      int                `json:"prep_time"`
	CookTime      int                `json:"cook_time"`
	Servings      int                `json:"servings"`
	Dietary       []string           `json:"dietary"`
	Ingredients   []IngredientEntry  `json:"ingredients"`
	Steps         []string           `json:"steps"`
	Nutrition     map[string]float64 `json:"nutrition,omitempty"`
	Substitutions []string           `json:"substitutions,omitempty"`
}

// TotalTime returns prep plus cook time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// HasDietaryTag reports whether the recipe carries the given tag,
// case-insensitively.
func (r *Recipe) HasDietaryTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range r.Dietary {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the recipe.
func (r *Recipe) Clone() Recipe {
	out := *r
	out.Dietary = append([]string(nil), r.Dietary...)
	out.Ingredients = append([]IngredientEntry(nil), r.Ingredients...)
	out.Steps = append([]string(nil), r.Steps...)
	out.Substitutions = append([]string(nil), r.Substitutions...)
	if r.Nutrition != nil {
		out.Nutrition = make(map[string]float64, len(r.Nutrition))
		for k, v := range r.Nutrition {
			out.Nutrition[k] = v
		}
	}
	return out
}
