package handlers

import "github.com/gin-gonic/gin"

// UserIDKey is the gin context key the auth middleware sets after validating
// a token.
const UserIDKey = "userID"

// MustUserID returns the authenticated user's id. Routes calling it must sit
// behind the auth middleware, which always sets the key.
func MustUserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
