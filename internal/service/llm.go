package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pantrypilot/backend/internal/dataset"
	"github.com/pantrypilot/backend/internal/models"
)

// LLMService talks to the external generation collaborator: a
// chat-completions style multimodal API that generates structured
// recipes from ingredients and detects ingredients in images. With no
// API key configured every call fails with ErrServiceUnavailable and
// callers fall back to the dataset pipeline.
type LLMService struct {
	apiKey      string
	apiURL      string
	textModel   string
	visionModel string
	client      *http.Client
}

// NewLLMService creates a new LLMService instance. An empty apiKey is
// allowed; the service then reports itself unconfigured.
func NewLLMService(apiKey, apiURL, textModel, visionModel string) *LLMService {
	return &LLMService{
		apiKey:      apiKey,
		apiURL:      apiURL,
		textModel:   textModel,
		visionModel: visionModel,
		client:      &http.Client{Timeout: 60 * time.Second},
	}
}

// Configured reports whether the collaborator can be consulted.
func (s *LLMService) Configured() bool {
	return s.apiKey != "" && s.apiURL != ""
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

// Message represents a message in the chat. Content is either a plain
// string or a []contentPart for multimodal requests.
type Message struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// Request represents a chat-completions request to the collaborator.
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature,omitempty"`
}

const generateSystemPrompt = `You generate structured recipes. Always return pure JSON with a top-level "recipes" array.
Each recipe must include: id (slug), name, cuisine, difficulty (easy/medium/hard), servings, prep_time, cook_time,
dietary (array of strings), ingredients (array of {name, quantity, unit}), steps (array of strings),
nutrition ({calories, protein, fat, carbs}), substitutions (array of strings).
Quantities must be numeric. Times are in minutes.`

const detectSystemPrompt = `You are an expert ingredient detector. Identify visible food ingredients in the photo.
Return JSON only in this exact shape: { "ingredients": ["ingredient1", "ingredient2"] }.
Use common grocery names (singular), lowercase. Exclude utensils, packaging, or background items.`

// GenerateRecipes asks the collaborator for n structured recipe
// suggestions built around the available ingredients and criteria.
func (s *LLMService) GenerateRecipes(ctx context.Context, ingredients []string, criteria FilterCriteria, servings, n int) ([]models.Recipe, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("generation collaborator is not configured: %w", models.ErrServiceUnavailable)
	}

	dietary := "none"
	if len(criteria.Dietary) > 0 {
		dietary = strings.Join(criteria.Dietary, ", ")
	}
	difficulty := "any"
	if criteria.MaxDifficulty != "" {
		difficulty = criteria.MaxDifficulty
	}
	maxPrep := "no limit"
	if criteria.MaxPrepTime != nil && *criteria.MaxPrepTime >= 0 {
		maxPrep = fmt.Sprintf("%d minutes", *criteria.MaxPrepTime)
	}

	prompt := fmt.Sprintf(`Ingredients available: %s
Dietary preferences: %s
Target difficulty: %s
Max prep time: %s
Target servings: %d
Generate %d diverse, realistic recipes that use the ingredients where possible.
Offer reasonable substitutions for missing items. Return JSON only.`,
		strings.Join(ingredients, ", "), dietary, difficulty, maxPrep, servings, n)

	content, err := s.complete(ctx, Request{
		Model: s.textModel,
		Messages: []Message{
			{Role: "system", Content: generateSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.9,
	})
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse generated recipes: %w", err)
	}

	out := make([]models.Recipe, 0, len(wrapper.Recipes))
	for _, r := range wrapper.Recipes {
		normalizeGenerated(&r, servings)
		if r.Name == "" || len(r.Ingredients) == 0 {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ExtractIngredients asks the collaborator's vision model for the
// ingredient names visible in an image.
func (s *LLMService) ExtractIngredients(ctx context.Context, image []byte, mediaType string) ([]string, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("generation collaborator is not configured: %w", models.ErrServiceUnavailable)
	}
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(image))
	content, err := s.complete(ctx, Request{
		Model: s.visionModel,
		Messages: []Message{
			{Role: "system", Content: detectSystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "image_url", ImageURL: &imageRef{URL: dataURI}},
				{Type: "text", Text: "Identify the food ingredients in this photo."},
			}},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse detected ingredients: %w", err)
	}

	seen := make(map[string]bool, len(wrapper.Ingredients))
	out := make([]string, 0, len(wrapper.Ingredients))
	for _, ing := range wrapper.Ingredients {
		n := dataset.NormalizeIngredient(ing)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// complete sends a chat request and returns choices[0].message.content.
func (s *LLMService) complete(ctx context.Context, reqBody Request) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach collaborator: %v: %w", err, models.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("collaborator returned status %d: %s: %w", resp.StatusCode, string(body), models.ErrServiceUnavailable)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in collaborator response: %w", models.ErrServiceUnavailable)
	}
	return result.Choices[0].Message.Content, nil
}

// normalizeGenerated fills the defaults the collaborator tends to omit
// so generated recipes are shaped like dataset records.
func normalizeGenerated(r *models.Recipe, servings int) {
	if r.ID == "" {
		slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(r.Name)), " ", "-")
		if len(slug) > 60 {
			slug = slug[:60]
		}
		r.ID = slug
	}
	if r.Servings <= 0 {
		r.Servings = servings
	}
	if _, err := models.ParseDifficulty(r.Difficulty); err != nil {
		r.Difficulty = models.DifficultyMedium.String()
	} else {
		r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	}
	for i := range r.Ingredients {
		r.Ingredients[i].Name = dataset.NormalizeIngredient(r.Ingredients[i].Name)
		if r.Ingredients[i].Quantity < 0 {
			r.Ingredients[i].Quantity = 0
		}
	}
	if r.Dietary == nil {
		r.Dietary = []string{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
}
