package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

// ErrNoSuggestions means the model answered with an empty array or null
var ErrNoSuggestions = errors.New("model returned no recipe suggestions")

// ErrNotRecipe means an array element is not a recipe object
var ErrNotRecipe = errors.New("array element is not a recipe object")

// Fence markers are only recognised at the very start and end of the reply,
// so backticks inside JSON strings survive.
var (
	openingFence = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\r?\n?")
	closingFence = regexp.MustCompile("\r?\n?[ \t]*```$")
)

// StripCodeFences removes one leading and one trailing markdown fence from
// model output. Either marker may be missing.
func StripCodeFences(content string) string {
	cleaned := strings.TrimSpace(content)
	cleaned = openingFence.ReplaceAllString(cleaned, "")
	cleaned = closingFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// SplitSuggestions strips fences and returns the raw elements of the reply's
// JSON array. An empty array or null is ErrNoSuggestions.
func SplitSuggestions(content string) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(StripCodeFences(content)), &elements); err != nil {
		return nil, fmt.Errorf("failed to parse recipes array: %w", err)
	}
	if len(elements) == 0 {
		return nil, ErrNoSuggestions
	}
	return elements, nil
}

// DecodeSuggestion decodes a single array element. Anything but a JSON
// object, null included, is ErrNotRecipe.
func DecodeSuggestion(raw json.RawMessage) (types.RecipeSuggestion, error) {
	var recipe types.RecipeSuggestion
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return recipe, ErrNotRecipe
	}
	if err := json.Unmarshal(raw, &recipe); err != nil {
		return recipe, fmt.Errorf("failed to parse recipe: %w", err)
	}
	return recipe, nil
}

// ParseSuggestions decodes the model's reply into recipes. The reply must be
// a non-empty JSON array of recipe objects once fences are removed; one bad
// element fails the whole reply.
func ParseSuggestions(content string) ([]types.RecipeSuggestion, error) {
	elements, err := SplitSuggestions(content)
	if err != nil {
		return nil, err
	}

	recipes := make([]types.RecipeSuggestion, 0, len(elements))
	for i, raw := range elements {
		recipe, err := DecodeSuggestion(raw)
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
