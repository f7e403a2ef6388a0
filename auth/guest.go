package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/junaidrashid-git/kataplum-api/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// POST /auth/guest
func CreateGuestUser(db *gorm.DB, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		guest := models.GuestUser{
			ID:        NewGuestID(),
			ExpiresAt: time.Now().Add(ttl),
		}

		if err := db.WithContext(c.Request.Context()).Create(&guest).Error; err != nil {
			log.WithError(err).Error("❌ failed to create guest session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
			return
		}

		token, err := IssueGuestToken(secret, guest.ID, guest.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guest.ID,
			"token":      token,
			"expires_at": guest.ExpiresAt,
		})
	}
}

func NewGuestID() string {
	return "guest_" + uuid.NewString()
}

// IssueGuestToken signs an HS256 token carrying the session id.
func IssueGuestToken(secret, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"role":       "guest",
		"exp":        expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
