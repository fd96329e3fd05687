package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/pantry-chef/backend/internal/logging"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// SuggestHandler serves recipe suggestions over HTTP
type SuggestHandler struct {
	suggester service.RecipeSuggester
	logger    zerolog.Logger
}

// NewSuggestHandler creates a new SuggestHandler
func NewSuggestHandler(suggester service.RecipeSuggester, logger zerolog.Logger) *SuggestHandler {
	return &SuggestHandler{
		suggester: suggester,
		logger:    logger.With().Str(logging.FieldComponent, "api").Logger(),
	}
}

// RegisterRoutes mounts the suggestion endpoint on router
func (h *SuggestHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/suggest-recipes", h.SuggestRecipes)
}

// SuggestRecipes handles POST /suggest-recipes
func (h *SuggestHandler) SuggestRecipes(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx, h.logger)

	var req types.SuggestRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid suggestion request body")
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: service.MsgInvalidInput})
		return
	}

	recipes, err := h.suggester.Suggest(ctx, req.Ingredients)
	if err != nil {
		var se *service.SuggestionError
		if errors.As(err, &se) {
			msg := se.Message
			if msg == "" {
				msg = se.Kind.Message()
			}
			c.JSON(se.HTTPStatus(), types.ErrorResponse{Error: msg})
			return
		}
		log.Error().Err(err).Msg("Unexpected error generating suggestions")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: service.MsgUnexpected})
		return
	}

	c.JSON(http.StatusOK, types.SuggestRecipesResponse{Recipes: recipes})
}
