// Package spoonacular wraps the Spoonacular recipe API: ingredient-based
// discovery, recipe detail, and URL extraction. Upstream payloads are
// converted to the local recipe shape before leaving this package.
package spoonacular

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	discdomain "github.com/ghuser/homestock/services/discovery/domain"
	"github.com/ghuser/homestock/services/discovery/domain/models"
)

const defaultBaseURL = "https://api.spoonacular.com"

// maxResults caps how many hits one ingredient search may request.
const maxResults = 100

// Client calls the Spoonacular REST API. Searches use a 10 second timeout;
// URL extraction gets 30 seconds since upstream scrapes the page.
type Client struct {
	apiKey    string
	baseURL   string
	http      *http.Client
	extractHC *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides both underlying HTTP clients.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
		c.extractHC = hc
	}
}

// NewClient returns a Client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 10 * time.Second},
		extractHC: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindByIngredients searches recipes by the ingredients on hand, ranked to
// minimize missing ingredients. Pantry staples are ignored upstream.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]models.DiscoveredRecipe, error) {
	if number <= 0 {
		number = 10
	}
	if number > maxResults {
		number = maxResults
	}

	params := url.Values{
		"ingredients":  {strings.Join(ingredients, ",")},
		"number":       {strconv.Itoa(number)},
		"ranking":      {"2"},
		"ignorePantry": {"true"},
	}
	payload, err := c.get(ctx, c.http, "/recipes/findByIngredients", params)
	if err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(payload)
	if !doc.IsArray() {
		return nil, fmt.Errorf("%w: unexpected search response", discdomain.ErrUpstream)
	}

	var recipes []models.DiscoveredRecipe
	doc.ForEach(func(_, hit gjson.Result) bool {
		recipe := models.DiscoveredRecipe{
			ExternalID:            hit.Get("id").Int(),
			Title:                 hit.Get("title").String(),
			ImageURL:              hit.Get("image").String(),
			UsedIngredientCount:   int(hit.Get("usedIngredientCount").Int()),
			MissedIngredientCount: int(hit.Get("missedIngredientCount").Int()),
		}
		hit.Get("missedIngredients.#.name").ForEach(func(_, name gjson.Result) bool {
			recipe.MissedIngredients = append(recipe.MissedIngredients, name.String())
			return true
		})
		recipes = append(recipes, recipe)
		return true
	})
	return recipes, nil
}

// GetRecipe fetches one recipe's details and converts it to the local shape.
func (c *Client) GetRecipe(ctx context.Context, id int64) (*models.ExternalRecipe, error) {
	params := url.Values{"includeNutrition": {"false"}}
	payload, err := c.get(ctx, c.http, fmt.Sprintf("/recipes/%d/information", id), params)
	if err != nil {
		return nil, err
	}
	return convertRecipe(gjson.ParseBytes(payload)), nil
}

// ExtractFromURL asks upstream to scrape a recipe page and returns the
// converted result. Nothing is persisted here.
func (c *Client) ExtractFromURL(ctx context.Context, pageURL string) (*models.ExternalRecipe, error) {
	params := url.Values{
		"url":             {pageURL},
		"forceExtraction": {"true"},
		"analyze":         {"true"},
	}
	payload, err := c.get(ctx, c.extractHC, "/recipes/extract", params)
	if err != nil {
		return nil, err
	}
	return convertRecipe(gjson.ParseBytes(payload)), nil
}

func (c *Client) get(ctx context.Context, hc *http.Client, path string, params url.Values) ([]byte, error) {
	params.Set("apiKey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", discdomain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", discdomain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", discdomain.ErrUpstream, resp.StatusCode)
	}
	return payload, nil
}

var htmlTags = regexp.MustCompile(`<[^>]+>`)
var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// convertRecipe maps an upstream recipe document to the local shape.
// Analyzed instructions are preferred; free-text instructions are split
// into sentences as a fallback.
func convertRecipe(doc gjson.Result) *models.ExternalRecipe {
	recipe := &models.ExternalRecipe{
		ExternalID:      doc.Get("id").Int(),
		Name:            doc.Get("title").String(),
		Servings:        int(doc.Get("servings").Int()),
		PrepTimeMinutes: int(doc.Get("preparationMinutes").Int()),
		CookTimeMinutes: int(doc.Get("cookingMinutes").Int()),
		SourceURL:       doc.Get("sourceUrl").String(),
		ImageURL:        doc.Get("image").String(),
	}
	if recipe.Name == "" {
		recipe.Name = "Untitled Recipe"
	}
	if recipe.Servings == 0 {
		recipe.Servings = 4
	}
	if recipe.CookTimeMinutes == 0 {
		recipe.CookTimeMinutes = int(doc.Get("readyInMinutes").Int())
	}
	if summary := stripHTML(doc.Get("summary").String()); summary != "" {
		recipe.Description = truncate(summary, 500)
	}

	doc.Get("extendedIngredients").ForEach(func(_, ing gjson.Result) bool {
		name := ing.Get("name").String()
		if name == "" {
			name = ing.Get("original").String()
		}
		amount := ""
		if v := ing.Get("amount"); v.Exists() && v.Num != 0 {
			amount = strconv.FormatFloat(v.Num, 'f', -1, 64)
		}
		recipe.Ingredients = append(recipe.Ingredients, models.ExternalIngredient{
			Name:   name,
			Amount: amount,
			Unit:   ing.Get("unit").String(),
			Notes:  ing.Get("meta.0").String(),
		})
		return true
	})

	doc.Get("analyzedInstructions").ForEach(func(_, instruction gjson.Result) bool {
		instruction.Get("steps").ForEach(func(_, step gjson.Result) bool {
			number := int(step.Get("number").Int())
			if number == 0 {
				number = len(recipe.Steps) + 1
			}
			recipe.Steps = append(recipe.Steps, models.ExternalStep{
				StepNumber:  number,
				Instruction: step.Get("step").String(),
			})
			return true
		})
		return true
	})

	if len(recipe.Steps) == 0 {
		recipe.Steps = splitInstructions(doc.Get("instructions").String())
	}
	return recipe
}

// splitInstructions turns a free-text instruction blob into numbered steps.
func splitInstructions(text string) []models.ExternalStep {
	clean := strings.TrimSpace(stripHTML(text))
	if clean == "" {
		return nil
	}
	clean = sentenceEnd.ReplaceAllString(clean, "$1\n")
	var steps []models.ExternalStep
	for _, part := range strings.Split(clean, "\n") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		steps = append(steps, models.ExternalStep{
			StepNumber:  len(steps) + 1,
			Instruction: part,
		})
	}
	return steps
}

func stripHTML(s string) string {
	return htmlTags.ReplaceAllString(s, "")
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
