package middleware

import (
	"net/http"

	"sportconnect/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const CheckUserKey = "user"

// AuthRequired ensures a user is logged in. Browser-style routes get a
// redirect to /login rather than an error.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves the session user and sets it on the context.
func LoadUser(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			if err := gdb.First(&user, userID).Error; err == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(CheckUserKey); exists {
		return v.(*models.User)
	}
	return nil
}
