package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds baseline security headers to all responses.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		// Swagger UI needs inline scripts and styles; everything else is plain JSON.
		if !strings.HasPrefix(c.Request.URL.Path, "/api/docs") {
			c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}

		// contact data must not be cached by intermediaries
		if strings.HasPrefix(c.Request.URL.Path, "/api/contacts") {
			c.Header("Cache-Control", "no-store")
		}

		c.Next()
	}
}
