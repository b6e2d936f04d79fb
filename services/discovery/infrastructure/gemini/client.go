// Package gemini calls the Google Generative Language REST API to produce
// structured recipe and grocery suggestions. Responses are requested as
// JSON but arrive as model text, sometimes wrapped in markdown code fences,
// so parsing is defensive.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	discdomain "github.com/ghuser/homestock/services/discovery/domain"
	"github.com/ghuser/homestock/services/discovery/domain/models"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client is a minimal generateContent client. Calls use a 10 second
// timeout and are not retried.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a Client for the given API key and model name.
func NewClient(apiKey, model string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SuggestRecipes asks for three recipe ideas based on the inventory names.
// An optional query steers the suggestions (cuisine, dish type, dietary
// needs, time constraints).
func (c *Client) SuggestRecipes(ctx context.Context, inventory []string, query string) (*models.RecipeSuggestions, error) {
	text, err := c.generate(ctx, recipePrompt(inventory, query))
	if err != nil {
		return nil, err
	}

	doc := gjson.Parse(stripFences(text))
	if !doc.Get("suggestions").IsArray() {
		return nil, fmt.Errorf("%w: unparseable suggestion response", discdomain.ErrUpstream)
	}

	result := &models.RecipeSuggestions{}
	doc.Get("suggestions").ForEach(func(_, s gjson.Result) bool {
		suggestion := models.RecipeSuggestion{
			Name:            s.Get("name").String(),
			Description:     s.Get("description").String(),
			Servings:        int(s.Get("servings").Int()),
			PrepTimeMinutes: int(s.Get("prep_time_minutes").Int()),
			CookTimeMinutes: int(s.Get("cook_time_minutes").Int()),
		}
		s.Get("ingredients").ForEach(func(_, ing gjson.Result) bool {
			suggestion.Ingredients = append(suggestion.Ingredients, models.SuggestedIngredient{
				Name:   ing.Get("name").String(),
				Amount: ing.Get("amount").String(),
				Unit:   ing.Get("unit").String(),
				Notes:  ing.Get("notes").String(),
			})
			return true
		})
		s.Get("steps").ForEach(func(i, step gjson.Result) bool {
			number := int(step.Get("step_number").Int())
			if number == 0 {
				number = int(i.Int()) + 1
			}
			suggestion.Steps = append(suggestion.Steps, models.SuggestedStep{
				StepNumber:  number,
				Instruction: step.Get("instruction").String(),
			})
			return true
		})
		result.Suggestions = append(result.Suggestions, suggestion)
		return true
	})
	doc.Get("inventory_used").ForEach(func(_, v gjson.Result) bool {
		result.InventoryUsed = append(result.InventoryUsed, v.String())
		return true
	})
	return result, nil
}

// SuggestGroceries asks for shopping-list entries covering what the
// favorite recipes need beyond current inventory.
func (c *Client) SuggestGroceries(ctx context.Context, inventory []string, favorites []models.FavoriteRecipe, preferences string) (*models.GrocerySuggestions, error) {
	text, err := c.generate(ctx, groceryPrompt(inventory, favorites, preferences))
	if err != nil {
		return nil, err
	}

	doc := gjson.Parse(stripFences(text))
	if !doc.Get("suggestions").IsArray() {
		return nil, fmt.Errorf("%w: unparseable suggestion response", discdomain.ErrUpstream)
	}

	result := &models.GrocerySuggestions{}
	doc.Get("suggestions").ForEach(func(_, s gjson.Result) bool {
		result.Suggestions = append(result.Suggestions, models.GrocerySuggestion{
			ItemName: s.Get("item_name").String(),
			Reason:   s.Get("reason").String(),
		})
		return true
	})
	doc.Get("based_on_recipes").ForEach(func(_, v gjson.Result) bool {
		result.BasedOnRecipes = append(result.BasedOnRecipes, v.String())
		return true
	})
	doc.Get("current_inventory").ForEach(func(_, v gjson.Result) bool {
		result.CurrentInventory = append(result.CurrentInventory, v.String())
		return true
	})

	// The model occasionally omits the echo fields.
	if result.BasedOnRecipes == nil {
		for _, f := range favorites {
			result.BasedOnRecipes = append(result.BasedOnRecipes, f.Name)
		}
	}
	if result.CurrentInventory == nil {
		result.CurrentInventory = inventory
	}
	return result, nil
}

// generate posts a single-turn prompt and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", discdomain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", discdomain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", discdomain.ErrUpstream, resp.StatusCode)
	}

	text := gjson.GetBytes(payload, "candidates.0.content.parts.0.text").String()
	if text == "" {
		return "", fmt.Errorf("%w: empty candidate text", discdomain.ErrUpstream)
	}
	return text, nil
}

// stripFences unwraps a ```json ... ``` (or bare ```) markdown block.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
	} else if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+len("```"):]
	} else {
		return text
	}
	if i := strings.Index(text, "```"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func recipePrompt(inventory []string, query string) string {
	inventoryStr := "No items in inventory"
	if len(inventory) > 0 {
		inventoryStr = strings.Join(inventory, ", ")
	}

	queryInstruction := ""
	if query != "" {
		queryInstruction = fmt.Sprintf(`
SPECIFIC REQUEST: %s
Focus on recipes that match this request. For example:
- If the request mentions a cuisine (Italian, Asian, etc.), suggest dishes from that cuisine
- If it mentions a dish type (soup, salad, pasta, etc.), suggest that type of dish
- If it mentions dietary needs (vegetarian, low-carb, etc.), respect those constraints
- If it mentions time (quick, 30 minutes, etc.), suggest faster recipes
`, query)
	}

	return fmt.Sprintf(`You are a helpful cooking assistant. Based on the following inventory items, suggest 3 recipes that can be made.

INVENTORY ITEMS:
%s
%s
For each recipe, provide:
1. A creative but descriptive name
2. A brief description (1-2 sentences)
3. Number of servings
4. Prep time in minutes
5. Cook time in minutes
6. List of ingredients with amounts and units
7. Step-by-step cooking instructions

IMPORTANT: Respond ONLY with valid JSON in this exact format:
{
  "suggestions": [
    {
      "name": "Recipe Name",
      "description": "Brief description of the dish",
      "servings": 4,
      "prep_time_minutes": 15,
      "cook_time_minutes": 30,
      "ingredients": [
        {"name": "ingredient name", "amount": "2", "unit": "cups", "notes": "diced"}
      ],
      "steps": [
        {"step_number": 1, "instruction": "First step..."}
      ]
    }
  ],
  "inventory_used": ["item1", "item2"]
}

Provide exactly 3 recipe suggestions. Use ingredients from the inventory when possible, but you can suggest additional common pantry items if needed.`, inventoryStr, queryInstruction)
}

func groceryPrompt(inventory []string, favorites []models.FavoriteRecipe, preferences string) string {
	inventoryStr := "No items in inventory"
	if len(inventory) > 0 {
		inventoryStr = strings.Join(inventory, ", ")
	}

	recipesStr := "No favorite recipes saved"
	if len(favorites) > 0 {
		var b strings.Builder
		for _, f := range favorites {
			fmt.Fprintf(&b, "- %s: %s\n", f.Name, strings.Join(f.Ingredients, ", "))
		}
		recipesStr = b.String()
	}

	prefStr := ""
	if preferences != "" {
		prefStr = "\n\nDietary preferences: " + preferences
	}

	return fmt.Sprintf(`You are a helpful grocery shopping assistant. Based on the current inventory and favorite recipes, suggest items to add to the grocery list.

CURRENT INVENTORY:
%s

FAVORITE RECIPES:
%s
%s

Analyze what ingredients are missing to make the favorite recipes, and suggest common staples that might be running low.

IMPORTANT: Respond ONLY with valid JSON in this exact format:
{
  "suggestions": [
    {
      "item_name": "item to buy",
      "reason": "needed for Recipe Name, or general reason"
    }
  ],
  "based_on_recipes": ["Recipe 1", "Recipe 2"],
  "current_inventory": ["item1", "item2"]
}

Suggest 5-10 practical grocery items. Prioritize ingredients needed for favorite recipes that aren't in inventory.`, inventoryStr, recipesStr, prefStr)
}
