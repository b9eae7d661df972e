package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flutterlearn-service/internal/auth"
	"flutterlearn-service/internal/models"
)

// AuthRequired resolves the caller's identity and rejects anonymous
// requests. Identity comes from a bearer token or, behind the gateway,
// from the X-User-ID / X-User-Role headers.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, err := auth.IdentityFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User ID is required"})
			return
		}
		c.Set("userID", userID)
		c.Set("userRole", role)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString("userID")
}

func currentRole(c *gin.Context) models.Role {
	if v, ok := c.Get("userRole"); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return models.RoleParticipant
}
