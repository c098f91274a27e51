package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pantrypilot/backend/internal/dataset"
	"github.com/pantrypilot/backend/internal/models"
)

// FavoriteService persists per-client favorites and ratings and derives
// personalized recommendations from them. Clients are opaque ids; there
// are no accounts.
type FavoriteService struct {
	db    *gorm.DB
	store *dataset.Store
}

// NewFavoriteService creates a new FavoriteService instance.
func NewFavoriteService(db *gorm.DB, store *dataset.Store) *FavoriteService {
	return &FavoriteService{db: db, store: store}
}

// Favorite saves a dataset recipe for a client. Saving twice is a
// no-op.
func (s *FavoriteService) Favorite(ctx context.Context, clientID, recipeID string) error {
	if err := s.validateIDs(clientID, recipeID); err != nil {
		return err
	}

	fav := models.FavoriteRecipe{ClientID: clientID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// Unfavorite removes a saved recipe for a client.
func (s *FavoriteService) Unfavorite(ctx context.Context, clientID, recipeID string) error {
	if err := s.validateIDs(clientID, recipeID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).
		Where("client_id = ? AND recipe_id = ?", clientID, recipeID).
		Delete(&models.FavoriteRecipe{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// Rate records a 1-5 rating, replacing an earlier one.
func (s *FavoriteService) Rate(ctx context.Context, clientID, recipeID string, score int) error {
	if err := s.validateIDs(clientID, recipeID); err != nil {
		return err
	}
	if score < 1 || score > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d: %w", score, models.ErrInvalidInput)
	}

	rating := models.RecipeRating{ClientID: clientID, RecipeID: recipeID, Score: score}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(&rating).Error
	if err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}
	return nil
}

// ListFavorites returns the client's saved dataset recipes in save
// order.
func (s *FavoriteService) ListFavorites(ctx context.Context, clientID string) ([]models.Recipe, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("client id is required: %w", models.ErrInvalidInput)
	}

	var favs []models.FavoriteRecipe
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at").
		Find(&favs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := make([]models.Recipe, 0, len(favs))
	for _, f := range favs {
		if r, ok := s.store.Get(f.RecipeID); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Recommend ranks unfavorited dataset recipes by affinity with the
// client's rated favorites: cuisine and dietary-tag scores accumulate
// the ratings of favorites sharing them, and direct dietary-preference
// matches count double. Unrated favorites count as a neutral 3. A
// client with no favorites gets no recommendations.
func (s *FavoriteService) Recommend(ctx context.Context, clientID string, dietaryPrefs []string, limit int) ([]models.Recipe, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("client id is required: %w", models.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 3
	}

	favorites, err := s.ListFavorites(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []models.Recipe{}, nil
	}

	ratings, err := s.ratingsByRecipe(ctx, clientID)
	if err != nil {
		return nil, err
	}

	prefSet := make(map[string]bool, len(dietaryPrefs))
	for _, p := range dietaryPrefs {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			prefSet[p] = true
		}
	}

	cuisineScores := make(map[string]int)
	dietaryScores := make(map[string]int)
	favored := make(map[string]bool, len(favorites))
	for _, f := range favorites {
		favored[f.ID] = true
		score, ok := ratings[f.ID]
		if !ok {
			score = 3
		}
		if c := strings.ToLower(f.Cuisine); c != "" {
			cuisineScores[c] += score
		}
		for _, tag := range f.Dietary {
			dietaryScores[strings.ToLower(tag)] += score
		}
	}

	type scored struct {
		total  int
		recipe models.Recipe
	}
	var candidates []scored
	for _, r := range s.store.All() {
		if favored[r.ID] {
			continue
		}
		total := cuisineScores[strings.ToLower(r.Cuisine)]
		for _, tag := range r.Dietary {
			tag = strings.ToLower(tag)
			total += dietaryScores[tag]
			if prefSet[tag] {
				total += 2
			}
		}
		if total > 0 {
			candidates = append(candidates, scored{total: total, recipe: r})
		}
	}

	// Stable on dataset order for equal totals.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].total > candidates[j].total
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Recipe, len(candidates))
	for i, c := range candidates {
		out[i] = c.recipe
	}
	return out, nil
}

func (s *FavoriteService) ratingsByRecipe(ctx context.Context, clientID string) (map[string]int, error) {
	var ratings []models.RecipeRating
	err := s.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	out := make(map[string]int, len(ratings))
	for _, r := range ratings {
		out[r.RecipeID] = r.Score
	}
	return out, nil
}

func (s *FavoriteService) validateIDs(clientID, recipeID string) error {
	if strings.TrimSpace(clientID) == "" {
		return fmt.Errorf("client id is required: %w", models.ErrInvalidInput)
	}
	if _, ok := s.store.Get(recipeID); !ok {
		return fmt.Errorf("recipe %s not found: %w", recipeID, gorm.ErrRecordNotFound)
	}
	return nil
}

// IsNotFound reports whether an error means the recipe does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
