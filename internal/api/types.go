package api

// SuggestRequest is the body of POST /recipes/suggest.
type SuggestRequest struct {
	Ingredients   []string `json:"ingredients" binding:"required"`
	Dietary       []string `json:"dietary"`
	MaxDifficulty string   `json:"max_difficulty"`
	MaxPrepTime   *int     `json:"max_prep_time"`
	Servings      int      `json:"servings"`
	Limit         int      `json:"limit"`
}

// DetectIngredientsRequest is the body of POST /ingredients/detect.
// The image travels base64-encoded; there is no upload pipeline.
type DetectIngredientsRequest struct {
	Image     string `json:"image" binding:"required"`
	MediaType string `json:"media_type"`
}

// RateRequest is the body of PUT /recipes/:id/rating.
type RateRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Score    int    `json:"score" binding:"required"`
}

// FavoriteRequest is the body of favorite/unfavorite calls.
type FavoriteRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}
