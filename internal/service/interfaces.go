package service

import (
	"context"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

// ChatCompleter is the outbound chat-completion dependency of SuggestionService
type ChatCompleter interface {
	HasCredential() bool
	CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// RecipeSuggester defines the interface for recipe suggestion operations
type RecipeSuggester interface {
	Suggest(ctx context.Context, ingredientsText string) ([]types.RecipeSuggestion, error)
}

var (
	_ ChatCompleter   = (*LLMClient)(nil)
	_ RecipeSuggester = (*SuggestionService)(nil)
)
