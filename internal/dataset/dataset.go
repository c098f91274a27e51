// Package dataset loads the static recipe collection into an immutable
// in-memory store. Loading happens once at startup; the store only
// exposes read access afterwards.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pantrypilot/backend/internal/models"
)

// Store holds the loaded recipe collection in dataset order.
type Store struct {
	recipes []models.Recipe
	byID    map[string]int
}

// Load parses and validates a JSON array of recipe records.
func Load(r io.Reader) (*Store, error) {
	var recipes []models.Recipe
	dec := json.NewDecoder(r)
	if err := dec.Decode(&recipes); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", models.ErrDataIntegrity)
	}

	s := &Store{
		recipes: recipes,
		byID:    make(map[string]int, len(recipes)),
	}
	for i := range s.recipes {
		if err := validateRecord(&s.recipes[i]); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, s.recipes[i].ID, err)
		}
		normalizeRecord(&s.recipes[i])
		if _, dup := s.byID[s.recipes[i].ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %q: %w", i, s.recipes[i].ID, models.ErrDataIntegrity)
		}
		s.byID[s.recipes[i].ID] = i
	}
	return s, nil
}

// LoadFile loads the dataset from a local JSON file.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return s, nil
}

func validateRecord(r *models.Recipe) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("missing id: %w", models.ErrDataIntegrity)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("missing name: %w", models.ErrDataIntegrity)
	}
	if r.Servings <= 0 {
		return fmt.Errorf("base servings must be positive, got %d: %w", r.Servings, models.ErrDataIntegrity)
	}
	if _, err := models.ParseDifficulty(r.Difficulty); err != nil {
		return fmt.Errorf("%v: %w", err, models.ErrDataIntegrity)
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return fmt.Errorf("negative prep or cook time: %w", models.ErrDataIntegrity)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("no ingredients: %w", models.ErrDataIntegrity)
	}
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("ingredient with empty name: %w", models.ErrDataIntegrity)
		}
		if ing.Quantity < 0 {
			return fmt.Errorf("ingredient %q has negative quantity: %w", ing.Name, models.ErrDataIntegrity)
		}
	}
	return nil
}

func normalizeRecord(r *models.Recipe) {
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	for i := range r.Ingredients {
		r.Ingredients[i].Name = NormalizeIngredient(r.Ingredients[i].Name)
		r.Ingredients[i].Unit = strings.TrimSpace(r.Ingredients[i].Unit)
	}
	for i, tag := range r.Dietary {
		r.Dietary[i] = strings.ToLower(strings.TrimSpace(tag))
	}
}

// NormalizeIngredient lowercases an ingredient name and collapses
// internal whitespace, so dataset entries and user input compare equal.
func NormalizeIngredient(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// All returns the recipes in dataset order. The returned slice is a
// copy; the underlying records must be treated as read-only.
func (s *Store) All() []models.Recipe {
	out := make([]models.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Get looks up a recipe by id.
func (s *Store) Get(id string) (models.Recipe, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Recipe{}, false
	}
	return s.recipes[i], true
}

// Len returns the number of loaded recipes.
func (s *Store) Len() int {
	return len(s.recipes)
}
