package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pageza/pantry-chef/backend/internal/logging"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// SuggestionTemperature keeps repeated calls varied without going wild
const SuggestionTemperature = 0.8

// ErrNoValidSuggestions means strict validation rejected every recipe
var ErrNoValidSuggestions = errors.New("no recipe suggestion passed validation")

// SuggestionService turns an ingredient string into recipe suggestions with a
// single chat-completion call. It holds no per-request state.
type SuggestionService struct {
	llm      ChatCompleter
	logger   zerolog.Logger
	strict   bool
	validate *validator.Validate
}

// SuggestionOption configures a SuggestionService
type SuggestionOption func(*SuggestionService)

// WithLogger sets the base logger
func WithLogger(logger zerolog.Logger) SuggestionOption {
	return func(s *SuggestionService) {
		s.logger = logger
	}
}

// WithStrictValidation drops recipes that do not match the documented shape
func WithStrictValidation(enabled bool) SuggestionOption {
	return func(s *SuggestionService) {
		s.strict = enabled
	}
}

// NewSuggestionService creates a new SuggestionService instance
func NewSuggestionService(llm ChatCompleter, opts ...SuggestionOption) *SuggestionService {
	s := &SuggestionService{
		llm:      llm,
		logger:   zerolog.Nop(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str(logging.FieldComponent, "suggestions").Logger()
	return s
}

// Suggest validates the input, asks the model for 1-3 dishes and parses the
// reply. Every failure is a *SuggestionError.
func (s *SuggestionService) Suggest(ctx context.Context, ingredientsText string) ([]types.RecipeSuggestion, error) {
	log := logging.FromContext(ctx, s.logger)

	ingredients := strings.TrimSpace(ingredientsText)
	if ingredients == "" {
		log.Warn().Msg("No ingredients provided")
		return nil, newError(KindInvalidInput, nil)
	}

	if !s.llm.HasCredential() {
		log.Error().Msg("AI gateway API key is not configured")
		return nil, newError(KindConfiguration, ErrMissingAPIKey)
	}

	log.Info().Str("ingredients", ingredients).Msg("Generating recipe suggestions")

	resp, err := s.llm.CreateChatCompletion(ctx, ChatRequest{
		Messages:    BuildSuggestionMessages(ingredients),
		Temperature: SuggestionTemperature,
	})
	if err != nil {
		return nil, s.upstreamError(log, err)
	}

	content, ok := resp.FirstContent()
	if !ok {
		log.Error().Msg("No content in AI response")
		return nil, newError(KindEmptyResponse, nil)
	}

	var recipes []types.RecipeSuggestion
	if s.strict {
		recipes, err = s.parseStrict(log, content)
	} else {
		recipes, err = ParseSuggestions(content)
	}
	if err != nil {
		log.Error().Err(err).Str("content", content).Msg("Failed to parse AI response")
		return nil, newError(KindMalformedSuggestions, err)
	}

	log.Info().Int("count", len(recipes)).Msg("Successfully generated recipes")
	return recipes, nil
}

func (s *SuggestionService) upstreamError(log zerolog.Logger, err error) *SuggestionError {
	if errors.Is(err, ErrMissingAPIKey) {
		log.Error().Err(err).Msg("AI gateway API key is not configured")
		return newError(KindConfiguration, err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		log.Error().Err(err).Msg("AI gateway request failed")
		return newError(KindUpstream, err)
	}

	log.Error().Int("status", apiErr.StatusCode).Str("body", apiErr.Body).Msg("AI gateway error")

	switch apiErr.StatusCode {
	case http.StatusTooManyRequests:
		return newError(KindRateLimited, err)
	case http.StatusPaymentRequired:
		return newError(KindQuotaExceeded, err)
	default:
		se := newError(KindUpstream, fmt.Errorf("AI service error: %w", err))
		se.StatusCode = apiErr.StatusCode
		return se
	}
}

// parseStrict keeps only the elements that decode and validate
func (s *SuggestionService) parseStrict(log zerolog.Logger, content string) ([]types.RecipeSuggestion, error) {
	elements, err := SplitSuggestions(content)
	if err != nil {
		return nil, err
	}

	valid := make([]types.RecipeSuggestion, 0, len(elements))
	for i, raw := range elements {
		recipe, err := DecodeSuggestion(raw)
		if err == nil {
			err = s.validate.Struct(recipe)
		}
		if err != nil {
			log.Warn().Err(err).Int("index", i).Str("name", recipe.Name).Msg("Dropping invalid recipe suggestion")
			continue
		}
		valid = append(valid, recipe)
	}

	if len(valid) == 0 {
		return nil, ErrNoValidSuggestions
	}
	return valid, nil
}
