package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// AllowedHeaders are the request headers browsers may send cross-origin
var AllowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// CORS allows any origin to call the suggestion endpoints
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    AllowedHeaders,
		MaxAge:          24 * time.Hour,
	})
}

// Preflight answers any OPTIONS request with an empty 204 so nothing further
// down the chain runs for it
func Preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
