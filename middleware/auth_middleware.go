package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizinteltz/api/utils"
)

const (
	TokenCookie = "jwt_token"

	ContextUsername = "username"
	ContextTokenID  = "token_id"
)

// ExtractToken returns the bearer token from the jwt_token cookie or the
// Authorization header, in that order.
func ExtractToken(c *gin.Context) string {
	if token, err := c.Cookie(TokenCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// AuthRequired guards the admin routes. A configured API key in X-API-KEY
// bypasses the token check; an empty apiKey disables that bypass.
func AuthRequired(tokens *utils.TokenIssuer, revoked *utils.RevocationList, apiKey string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey != "" {
			if key := c.GetHeader("X-API-KEY"); key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
				c.Set(ContextUsername, "api-key")
				c.Next()
				return
			}
		}

		tokenString := ExtractToken(c)
		if tokenString == "" {
			log.Debug("no token on protected route", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		claims, err := tokens.ValidateJWT(tokenString)
		if err != nil {
			log.Info("rejected token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token"})
			return
		}
		if revoked.IsRevoked(claims.ID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token has been revoked"})
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextTokenID, claims.ID)
		c.Next()
	}
}
