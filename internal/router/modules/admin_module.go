package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/marketplace/internal/container"
	"github.com/secondchance/marketplace/internal/domain/repository"
	handlers "github.com/secondchance/marketplace/internal/interface/http"
	"github.com/secondchance/marketplace/internal/interface/middleware"
)

// AdminModule wires the management dashboard behind the role gate.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Users   repository.UserRepository
}

func NewAdminModule(h *handlers.AdminHandler, users repository.UserRepository) *AdminModule {
	return &AdminModule{Handler: h, Users: users}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.Auth(m.Users, container.GetJWT()),
		middleware.AdminOnly(),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		admin.GET("/dashboard", m.Handler.Dashboard)
		admin.GET("/users", m.Handler.ListUsers)
		admin.DELETE("/users/:id", m.Handler.DeleteUser)
		admin.GET("/products", m.Handler.ListProducts)
		admin.DELETE("/products/:id", m.Handler.DeleteProduct)
		admin.GET("/orders", m.Handler.ListOrders)
		admin.DELETE("/orders/:id", m.Handler.DeleteOrder)
	}
}
