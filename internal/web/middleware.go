package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalKey = "principalID"

// requireAuth resolves the Authorization bearer token to a user id and
// stores it on the request context. Requests without a valid token are
// rejected before the handler runs.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	userID, err := s.auth.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Set(principalKey, userID)
	c.Next()
}

// principal returns the authenticated user id, or "" on
// unauthenticated routes.
func principal(c *gin.Context) string {
	return c.GetString(principalKey)
}
