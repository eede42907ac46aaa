package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins, any localhost origin (development), and
// origins under the deployment domain suffix. Requests without an Origin
// header (curl, server-to-server) pass through untouched.
func CORS(origins []string, domainSuffix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if !originAllowed(origin, origins, domainSuffix) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"error": "The CORS policy for this site does not allow access from the specified Origin.",
				})
				return
			}
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func originAllowed(origin string, origins []string, domainSuffix string) bool {
	for _, allowed := range origins {
		if allowed != "" && strings.HasPrefix(origin, allowed) {
			return true
		}
	}
	// any localhost origin is fine for development
	if strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost" {
		return true
	}
	if domainSuffix != "" && strings.HasSuffix(strings.TrimSuffix(origin, "/"), domainSuffix) {
		return true
	}
	return false
}
