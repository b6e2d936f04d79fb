package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/gjson"

	discdomain "github.com/ghuser/homestock/services/discovery/domain"
	"github.com/ghuser/homestock/services/discovery/domain/models"
)

// candidateResponse wraps model text in the generateContent response shape.
func candidateResponse(t *testing.T, text string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return payload
}

func TestSuggestRecipes(t *testing.T) {
	ctx := context.Background()

	suggestionJSON := `{
		"suggestions": [
			{
				"name": "Veggie Frittata",
				"description": "Eggs and whatever is around.",
				"servings": 2,
				"prep_time_minutes": 10,
				"cook_time_minutes": 15,
				"ingredients": [
					{"name": "eggs", "amount": "4", "unit": "", "notes": "beaten"}
				],
				"steps": [
					{"step_number": 1, "instruction": "Whisk the eggs."},
					{"instruction": "Cook until set."}
				]
			}
		],
		"inventory_used": ["eggs"]
	}`

	t.Run("parses fenced JSON candidate", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			gotBody, _ = io.ReadAll(r.Body)
			w.Write(candidateResponse(t, "```json\n"+suggestionJSON+"\n```"))
		}))
		defer srv.Close()

		c := NewClient("test-key", "gemini-2.0-flash", WithBaseURL(srv.URL))
		result, err := c.SuggestRecipes(ctx, []string{"eggs", "spinach"}, "quick")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotPath != "/models/gemini-2.0-flash:generateContent" {
			t.Errorf("path: got %q", gotPath)
		}
		if gotKey != "test-key" {
			t.Errorf("api key header: got %q", gotKey)
		}
		prompt := gjson.GetBytes(gotBody, "contents.0.parts.0.text").String()
		if prompt == "" {
			t.Fatal("expected prompt in request body")
		}

		if len(result.Suggestions) != 1 {
			t.Fatalf("expected 1 suggestion, got %d", len(result.Suggestions))
		}
		s := result.Suggestions[0]
		if s.Name != "Veggie Frittata" || s.Servings != 2 {
			t.Errorf("unexpected suggestion: %+v", s)
		}
		if len(s.Ingredients) != 1 || s.Ingredients[0].Notes != "beaten" {
			t.Errorf("ingredients: %+v", s.Ingredients)
		}
		// A step without an explicit number gets its position.
		if len(s.Steps) != 2 || s.Steps[1].StepNumber != 2 {
			t.Errorf("steps: %+v", s.Steps)
		}
		if len(result.InventoryUsed) != 1 || result.InventoryUsed[0] != "eggs" {
			t.Errorf("InventoryUsed: %v", result.InventoryUsed)
		}
	})

	t.Run("accepts bare JSON without fences", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write(candidateResponse(t, suggestionJSON))
		}))
		defer srv.Close()

		c := NewClient("k", "m", WithBaseURL(srv.URL))
		result, err := c.SuggestRecipes(ctx, []string{"eggs"}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Suggestions) != 1 {
			t.Fatalf("expected 1 suggestion, got %d", len(result.Suggestions))
		}
	})

	t.Run("non-JSON candidate text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write(candidateResponse(t, "I cannot help with that."))
		}))
		defer srv.Close()

		c := NewClient("k", "m", WithBaseURL(srv.URL))
		if _, err := c.SuggestRecipes(ctx, []string{"eggs"}, ""); !errors.Is(err, discdomain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewClient("k", "m", WithBaseURL(srv.URL))
		if _, err := c.SuggestRecipes(ctx, []string{"eggs"}, ""); !errors.Is(err, discdomain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})

	t.Run("empty candidate text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		c := NewClient("k", "m", WithBaseURL(srv.URL))
		if _, err := c.SuggestRecipes(ctx, []string{"eggs"}, ""); !errors.Is(err, discdomain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})
}

func TestSuggestGroceries(t *testing.T) {
	ctx := context.Background()

	t.Run("parses suggestions", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write(candidateResponse(t, `{
				"suggestions": [
					{"item_name": "butter", "reason": "needed for Pancakes"},
					{"item_name": "olive oil", "reason": "running low staple"}
				],
				"based_on_recipes": ["Pancakes"],
				"current_inventory": ["eggs"]
			}`))
		}))
		defer srv.Close()

		c := NewClient("k", "m", WithBaseURL(srv.URL))
		result, err := c.SuggestGroceries(ctx, []string{"eggs"}, nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Suggestions) != 2 {
			t.Fatalf("expected 2 suggestions, got %d", len(result.Suggestions))
		}
		if result.Suggestions[0].ItemName != "butter" {
			t.Errorf("first suggestion: %+v", result.Suggestions[0])
		}
		if len(result.BasedOnRecipes) != 1 || result.BasedOnRecipes[0] != "Pancakes" {
			t.Errorf("BasedOnRecipes: %v", result.BasedOnRecipes)
		}
	})

	t.Run("fills omitted echo fields", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write(candidateResponse(t, `{"suggestions": [{"item_name": "milk", "reason": "staple"}]}`))
		}))
		defer srv.Close()

		c := NewClient("k", "m", WithBaseURL(srv.URL))
		favorites := []models.FavoriteRecipe{{Name: "Omelette"}}
		result, err := c.SuggestGroceries(ctx, []string{"eggs", "flour"}, favorites, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.BasedOnRecipes) != 1 || result.BasedOnRecipes[0] != "Omelette" {
			t.Errorf("BasedOnRecipes fallback: %v", result.BasedOnRecipes)
		}
		if len(result.CurrentInventory) != 2 {
			t.Errorf("CurrentInventory fallback: %v", result.CurrentInventory)
		}
	})
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"leading prose", "Here you go:\n```json\n{\"a\":1}\n```", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripFences(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
