package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantry-chef/backend/config"
	"github.com/pageza/pantry-chef/backend/internal/logging"
	"github.com/pageza/pantry-chef/backend/internal/server"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// Talks to the real AI gateway. Runs only when a key is present.
func TestSuggestRecipesLive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live gateway test in short mode")
	}
	if os.Getenv("AI_GATEWAY_API_KEY") == "" {
		t.Skip("AI_GATEWAY_API_KEY not set")
	}
	gin.SetMode(gin.TestMode)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	cfg.RedisURL = ""

	s := server.NewFromConfig(context.Background(), cfg, logging.Nop())
	defer s.Shutdown(context.Background())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/functions/v1/suggest-recipes", strings.NewReader(`{"ingredients":"roti, dal, onion"}`))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.SuggestRecipesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Recipes)
	assert.LessOrEqual(t, len(resp.Recipes), 3)
	for _, recipe := range resp.Recipes {
		assert.NotEmpty(t, recipe.Name)
		assert.NotEmpty(t, recipe.Instructions)
	}
}
