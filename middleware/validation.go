package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"immicv/utils"
)

// MaxRequestSize limits the request body size
func MaxRequestSize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// ValidateContentType ensures the request has expected content type
func ValidateContentType(expectedTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")

		// Skip validation for GET and DELETE requests
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodDelete {
			c.Next()
			return
		}

		valid := false
		for _, expectedType := range expectedTypes {
			if strings.Contains(contentType, expectedType) {
				valid = true
				break
			}
		}

		if !valid {
			utils.BadRequestError(c, "Invalid content type", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// ValidateJSON rejects non-JSON bodies on mutating requests.
func ValidateJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodDelete, http.MethodOptions:
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		if !strings.Contains(contentType, "application/json") {
			utils.BadRequestError(c, "Content-Type must be application/json", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
