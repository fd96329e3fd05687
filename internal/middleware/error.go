package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/pantry-chef/backend/internal/logging"
	"github.com/pageza/pantry-chef/backend/internal/service"
	"github.com/pageza/pantry-chef/backend/internal/types"
)

// Recovery turns a panic in any later handler into the generic JSON 500
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log := logging.FromContext(c.Request.Context(), logger)
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: service.MsgUnexpected})
	})
}
