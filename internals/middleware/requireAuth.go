package middleware

import (
	"net/http"

	"github.com/nishashetty1/voteplay-simulator/internals/models"
	"github.com/nishashetty1/voteplay-simulator/internals/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RequireAuthMiddleware struct {
	DB           *gorm.DB
	TokenManager *utils.TokenManager
}

func NewRequireAuthMiddleware(db *gorm.DB, tokenManager *utils.TokenManager) *RequireAuthMiddleware {
	return &RequireAuthMiddleware{
		DB:           db,
		TokenManager: tokenManager,
	}
}

// RequireAuth guards state-mutating routes. The bearer token is the sole
// authentication proof: a missing header, a bad signature or an expired token
// all end the request with 401.
func (m *RequireAuthMiddleware) RequireAuth(c *gin.Context) {
	tokenString, ok := utils.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Access denied. No token provided.",
		})
		return
	}

	userID, err := m.TokenManager.Verify(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid token",
		})
		return
	}

	var user models.User
	if err := m.DB.First(&user, userID).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid token",
		})
		return
	}

	c.Set("user", user)
	c.Next()
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) models.User {
	value, _ := c.Get("user")
	user, _ := value.(models.User)
	return user
}
