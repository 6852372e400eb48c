package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimatch/campus-platform/internal/database"
	"github.com/unimatch/campus-platform/internal/models"
)

// RequireVerified ensures the user has verified their email address
// before touching profiles, teams or messages.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		db := database.GetDB()
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		if !user.EmailVerified {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Email verification required",
				"code":    "EMAIL_UNVERIFIED",
				"message": "Please verify your email address before using the platform",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
