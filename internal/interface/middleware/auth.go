package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/marketplace/internal/domain/repository"
	"github.com/secondchance/marketplace/pkg/helpers"
	"github.com/secondchance/marketplace/pkg/response"
)

// Auth validates the session cookie and re-fetches the account so deleted
// users are cut off even while their token is still valid. It sets userID,
// userEmail, userName, and userRole in the Gin context on success.
func Auth(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing session token")
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid session token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			response.Abort(c, http.StatusUnauthorized, "account no longer exists")
			return
		}

		c.Set("userID", u.ID)
		c.Set("userEmail", u.Email)
		c.Set("userName", u.Username)
		c.Set("userRole", u.Role)
		c.Next()
	}
}

// AdminOnly gates a route group on the stored role. Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != "admin" {
			response.Abort(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

// OwnCartOnly rejects requests whose :userId path segment is not the
// session subject. Must run after Auth.
func OwnCartOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("userId") != c.GetString("userID") {
			response.Abort(c, http.StatusForbidden, "cart belongs to another user")
			return
		}
		c.Next()
	}
}
