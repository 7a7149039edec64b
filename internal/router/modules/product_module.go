package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/marketplace/internal/container"
	"github.com/secondchance/marketplace/internal/domain/repository"
	handlers "github.com/secondchance/marketplace/internal/interface/http"
	"github.com/secondchance/marketplace/internal/interface/middleware"
)

// ProductModule wires the storefront.
// Public: GET /api/products, GET /api/products/homepage, GET /api/products/:id,
//
//	GET /api/search, GET /api/search/suggestions, GET /api/popular-products
//
// Protected: POST /api/products, DELETE /api/products/:id
type ProductModule struct {
	Handler *handlers.ProductHandler
	Users   repository.UserRepository
}

func NewProductModule(h *handlers.ProductHandler, users repository.UserRepository) *ProductModule {
	return &ProductModule{Handler: h, Users: users}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	browseLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/products", browseLimiter, m.Handler.List)
	rg.GET("/products/homepage", browseLimiter, m.Handler.Homepage)
	rg.GET("/products/:id", browseLimiter, m.Handler.GetByID)
	rg.GET("/search", browseLimiter, m.Handler.Search)
	rg.GET("/search/suggestions", browseLimiter, m.Handler.Suggestions)
	rg.GET("/popular-products", browseLimiter, m.Handler.Popular)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Users, container.GetJWT()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/products", m.Handler.Create)
		auth.DELETE("/products/:id", m.Handler.Delete)
	}
}
