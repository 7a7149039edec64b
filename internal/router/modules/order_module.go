package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/marketplace/internal/container"
	"github.com/secondchance/marketplace/internal/domain/repository"
	handlers "github.com/secondchance/marketplace/internal/interface/http"
	"github.com/secondchance/marketplace/internal/interface/middleware"
)

// OrderModule wires order creation and history; all routes need a session.
type OrderModule struct {
	Handler *handlers.OrderHandler
	Users   repository.UserRepository
}

func NewOrderModule(h *handlers.OrderHandler, users repository.UserRepository) *OrderModule {
	return &OrderModule{Handler: h, Users: users}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(
		middleware.Auth(m.Users, container.GetJWT()),
		middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		orders.POST("/create", m.Handler.Create)
		orders.POST("/checkout", m.Handler.Checkout)
		orders.GET("/myorders", m.Handler.MyOrders)
	}
}
