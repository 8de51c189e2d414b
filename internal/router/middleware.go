package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrf25906/perspective-app-sub000/internal/handlers"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
	"github.com/jrf25906/perspective-app-sub000/internal/utils"
)

// AuthRequired validates the bearer token and puts the user id into the
// context. Tokens for users who no longer exist are rejected.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		if _, err := repository.GetUserByID(c, claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(handlers.UserIDKey, claims.UserID)
		c.Next()
	}
}
