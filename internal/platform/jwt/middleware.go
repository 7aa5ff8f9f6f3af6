package jwtmw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"blog_backend/internal/api"
)

// Context keys under which the middleware stores the decoded identity.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
//
// The secret is injected by the caller, never read from the environment
// here. An expired token is rejected with 401,
// a token that fails parsing or signature verification with 400; the decoded
// claims are trusted as-is for the lifetime of the token and never re-checked
// against the user store.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Server misconfiguration (empty signing secret)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
			return
		}

		// 2. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil {
			// Expiry is checked with second granularity by the jwt library.
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid token"})
			return
		}
		if !token.Valid {
			c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid token"})
			return
		}

		// 3. Extract claims (payload)
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
				c.Set(ContextUserID, uint(sub))
			}
			if name, ok := claims["username"].(string); ok {
				c.Set(ContextUsername, name)
			}
		}

		// 4. Pass control to the next handler
		c.Next()
	}
}
