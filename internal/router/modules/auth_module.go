package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/marketplace/internal/container"
	"github.com/secondchance/marketplace/internal/domain/repository"
	handlers "github.com/secondchance/marketplace/internal/interface/http"
	"github.com/secondchance/marketplace/internal/interface/middleware"
)

// AuthModule wires signup, verification, both login paths, and the session
// endpoints.
// Public: POST /api/signup, GET /api/verify/:token, POST /api/resend-verification,
//
//	POST /api/login, GET /api/auth/google, GET /api/auth/google/callback
//
// Protected: POST /api/logout, GET /api/auth/me, GET /api/auth/is-admin
type AuthModule struct {
	Handler *handlers.AuthHandler
	Users   repository.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, users repository.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	resendLimiter := middleware.RateLimit(container.GetRedis(), 3, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.GET("/verify/:token", m.Handler.Verify)
	rg.POST("/resend-verification", resendLimiter, m.Handler.ResendVerification)
	rg.POST("/login", loginLimiter, m.Handler.Login)

	rg.GET("/auth/google", loginLimiter, m.Handler.GoogleRedirect)
	rg.GET("/auth/google/callback", m.Handler.GoogleCallback)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/auth/me", m.Handler.Me)
		auth.GET("/auth/is-admin", m.Handler.IsAdmin)
	}
}
