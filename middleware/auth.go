package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionKey is where ValidateToken stores the session id in the gin context.
const SessionKey = "session_id"

// ValidateToken accepts "Authorization: Bearer <jwt>", a bare token in the
// header, or a ?token= query parameter (browsers cannot set headers on
// websocket upgrades).
func ValidateToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(c.GetHeader("Authorization"))
		tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		sessionID, err := ParseSessionToken(secret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(SessionKey, sessionID)
		c.Next()
	}
}

// ParseSessionToken validates an HS256 token and returns its session id.
func ParseSessionToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sessionID, _ := claims["session_id"].(string)
	if sessionID == "" {
		return "", errors.New("token has no session id")
	}
	return sessionID, nil
}

// SessionID reads the id stored by ValidateToken.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
