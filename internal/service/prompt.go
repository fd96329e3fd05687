package service

const suggestionSystemPrompt = `You are a creative chef assistant. Based on the ingredients provided by the user, suggest 1-3 practical Indian or global dishes they can prepare using only or mostly these ingredients.

For each dish, provide:
- Name of the dish
- A short description (1-2 sentences)
- Step-by-step recipe instructions (numbered list)
- If needed, list 1-2 optional or commonly available extra ingredients to enhance the recipe

Assume the user wants a quick, practical meal, not a gourmet dish. Be creative but realistic, and avoid suggesting recipes that require unavailable ingredients.

Format your response as a JSON array of recipe objects with this structure:
[
  {
    "name": "Dish Name",
    "description": "Short description of the dish",
    "instructions": ["Step 1", "Step 2", "Step 3"],
    "optionalIngredients": ["Optional ingredient 1", "Optional ingredient 2"]
  }
]

Return ONLY the JSON array, no additional text.`

// SuggestionSystemPrompt returns the fixed system instruction
func SuggestionSystemPrompt() string {
	return suggestionSystemPrompt
}

// BuildUserPrompt embeds the literal ingredient string in the user turn
func BuildUserPrompt(ingredients string) string {
	return "My ingredients: " + ingredients
}

// BuildSuggestionMessages returns the two-message conversation sent upstream
func BuildSuggestionMessages(ingredients string) []Message {
	return []Message{
		{Role: "system", Content: suggestionSystemPrompt},
		{Role: "user", Content: BuildUserPrompt(ingredients)},
	}
}
