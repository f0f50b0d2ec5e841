package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts user info from gateway headers (X-User-ID, X-User-Email, X-User-Role).
// The upstream gateway validates credentials; this should ONLY be used behind it with
// proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			return
		}

		setUser(c, userID, c.GetHeader("X-User-Email"), c.GetHeader("X-User-Role"))
		c.Next()
	}
}

// GetUserID returns the authenticated user ID, "anonymous" under NoAuth
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id_str")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func setUser(c *gin.Context, id, email, role string) {
	c.Set("user_id", id)
	c.Set("user_id_str", id)
	c.Set("user_email", email)
	c.Set("user_role", role)
}
