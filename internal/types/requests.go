package types

// SuggestRecipesRequest represents the request body for recipe suggestions.
// Ingredients is the comma-joined ingredient list built by the caller.
type SuggestRecipesRequest struct {
	Ingredients string `json:"ingredients"`
}

// SuggestRecipesResponse is returned on success
type SuggestRecipesResponse struct {
	Recipes []RecipeSuggestion `json:"recipes"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
