package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const errUnauthorized = "Unauthorized"

// AuthChecker reports whether a token is a live session (stored and not
// blacklisted). Satisfied by usecase.AuthUsecase.
type AuthChecker interface {
	IsAuthenticated(ctx context.Context, token string) (bool, error)
}

// Auth validates a Bearer JWT against the signing key and the session
// store, then sets "userID", "role" and "token" in the gin context.
// A structurally valid token that has been logged out is rejected.
func Auth(jwtKey []byte, sessions AuthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c)
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok || userID == "" {
			abortUnauthorized(c)
			return
		}

		live, err := sessions.IsAuthenticated(c.Request.Context(), rawToken)
		if err != nil || !live {
			abortUnauthorized(c)
			return
		}

		c.Set("userID", userID)
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		c.Set("token", rawToken)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized, "data": nil})
}
