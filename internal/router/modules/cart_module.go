package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/marketplace/internal/container"
	"github.com/secondchance/marketplace/internal/domain/repository"
	handlers "github.com/secondchance/marketplace/internal/interface/http"
	"github.com/secondchance/marketplace/internal/interface/middleware"
)

// CartModule wires the per-user cart. Every route requires a session and
// the :userId segment must match the session subject.
type CartModule struct {
	Handler *handlers.CartHandler
	Users   repository.UserRepository
}

func NewCartModule(h *handlers.CartHandler, users repository.UserRepository) *CartModule {
	return &CartModule{Handler: h, Users: users}
}

func (m *CartModule) Register(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.Use(
		middleware.Auth(m.Users, container.GetJWT()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		cart.GET("/:userId", middleware.OwnCartOnly(), m.Handler.Get)
		cart.POST("/:userId", middleware.OwnCartOnly(), m.Handler.Add)
		cart.POST("/:userId/remove", middleware.OwnCartOnly(), m.Handler.Remove)
		cart.POST("/:userId/clear", middleware.OwnCartOnly(), m.Handler.Clear)
	}
}
