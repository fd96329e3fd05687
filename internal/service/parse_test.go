package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no fences", `[{"name":"a"}]`, `[{"name":"a"}]`},
		{"json fence", "```json\n[1]\n```", "[1]"},
		{"bare fence", "```\n[1]\n```", "[1]"},
		{"uppercase tag", "```JSON\n[1]\n```", "[1]"},
		{"crlf", "```json\r\n[1]\r\n```\r\n", "[1]"},
		{"opening only", "```json\n[1]", "[1]"},
		{"closing only", "[1]\n```", "[1]"},
		{"inline", "```json [1] ```", "[1]"},
		{"surrounding whitespace", "\n\n  ```json\n[1]\n```  \n", "[1]"},
		{"empty", "", ""},
		{"only fences", "```json\n```", ""},
		{"backticks inside string", "```json\n[\"Write ``` here\"]\n```", "[\"Write ``` here\"]"},
		{"inner fence without outer", "[\"a ```json\\n b\"]", "[\"a ```json\\n b\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFences(tt.input))
		})
	}
}

func TestStripCodeFences_RoundTrip(t *testing.T) {
	fences := []func(string) string{
		func(x string) string { return "```json\n" + x + "\n```" },
		func(x string) string { return "```\n" + x + "\n```" },
		func(x string) string { return "```json" + x + "```" },
		func(x string) string { return "```json\n" + x },
		func(x string) string { return x + "\n```" },
	}
	arrays := []string{
		`[]`,
		`[{"name":"Dal Tadka","description":"Simple lentil curry","instructions":["Boil dal","Add tadka"],"optionalIngredients":["ghee"]}]`,
		`[{"name":"Markdown Toast","description":"Toast with a code block","instructions":["Write ` + "```" + ` on the plate","Serve"]}]`,
		`["` + "```json" + `","` + "```" + `"]`,
		"[\n  {\n    \"name\": \"Poha\",\n    \"description\": \"Flattened rice.\",\n    \"instructions\": [\"Rinse\", \"Temper\"]\n  }\n]",
	}

	for _, x := range arrays {
		for _, fence := range fences {
			assert.Equal(t, x, StripCodeFences(fence(x)))
		}
	}
}

func TestParseSuggestions(t *testing.T) {
	t.Run("should parse fenced array", func(t *testing.T) {
		recipes, err := ParseSuggestions("```json\n" + dalTadkaJSON + "\n```")
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Dal Tadka", recipes[0].Name)
		assert.Equal(t, []string{"ghee"}, recipes[0].OptionalIngredients)
	})

	t.Run("should leave optional ingredients nil when absent", func(t *testing.T) {
		recipes, err := ParseSuggestions(`[{"name":"Poha","description":"d","instructions":["a"]}]`)
		require.NoError(t, err)
		assert.Nil(t, recipes[0].OptionalIngredients)
	})

	t.Run("should reject empty array", func(t *testing.T) {
		_, err := ParseSuggestions(`[]`)
		assert.ErrorIs(t, err, ErrNoSuggestions)
	})

	t.Run("should reject non-array", func(t *testing.T) {
		recipes, err := ParseSuggestions(`{"recipes":[]}`)
		assert.Error(t, err)
		assert.Nil(t, recipes)
	})
}

func TestParseSuggestions_KeepsBackticksInFields(t *testing.T) {
	x := `[{"name":"Markdown Toast","description":"d","instructions":["Write ` + "```" + ` on the plate"]}]`

	recipes, err := ParseSuggestions("```json\n" + x + "\n```")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"Write ``` on the plate"}, recipes[0].Instructions)
}

func TestParseSuggestions_RejectsBadElements(t *testing.T) {
	contents := map[string]string{
		"number element":   `[1]`,
		"null element":     `[{"name":"Poha","description":"d","instructions":["a"]}, null]`,
		"string element":   `["Poha"]`,
		"wrong field type": `[{"name":"Poha","description":"d","instructions":["a"],"optionalIngredients":"ghee"}]`,
		"nested array":     `[[{"name":"Poha"}]]`,
	}

	for name, content := range contents {
		t.Run(name, func(t *testing.T) {
			recipes, err := ParseSuggestions(content)
			assert.Error(t, err)
			assert.Nil(t, recipes)
		})
	}
}

func TestDecodeSuggestion(t *testing.T) {
	t.Run("should decode an object", func(t *testing.T) {
		recipe, err := DecodeSuggestion(json.RawMessage(` {"name":"Poha","description":"d","instructions":["a"]}`))
		require.NoError(t, err)
		assert.Equal(t, "Poha", recipe.Name)
	})

	t.Run("should reject non-objects", func(t *testing.T) {
		for _, raw := range []string{`1`, `null`, `"x"`, `[]`, `true`} {
			_, err := DecodeSuggestion(json.RawMessage(raw))
			assert.ErrorIs(t, err, ErrNotRecipe, raw)
		}
	})

	t.Run("should report wrong field types", func(t *testing.T) {
		_, err := DecodeSuggestion(json.RawMessage(`{"name":"Poha","optionalIngredients":"ghee"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse recipe")
	})
}
