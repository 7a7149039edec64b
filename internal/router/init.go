package router

import (
	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/internal/container"
	pginfra "github.com/secondchance/marketplace/internal/infrastructure/postgres"
	handlers "github.com/secondchance/marketplace/internal/interface/http"
	"github.com/secondchance/marketplace/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	products := pginfra.NewProductRepository(pool)
	carts := pginfra.NewCartRepository(pool)
	orders := pginfra.NewOrderRepository(pool)
	history := pginfra.NewSearchHistoryRepository(pool)

	var queue application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		queue = pub
	}

	authSvc := application.NewAuthService(users, container.GetJWT(), queue, logger, cfg)
	google := application.NewGoogleProvider(cfg)
	productSvc := &application.ProductService{
		Repo:        products,
		History:     history,
		GCS:         container.GetGCS(),
		GCSBucket:   cfg.GCSBucket,
		Redis:       container.GetRedis(),
		ES:          container.GetES(),
		ESIndex:     cfg.ESProductsIndex,
		Logger:      logger,
		HomepageTTL: cfg.HomepageCacheTTL,
	}
	cartSvc := &application.CartService{Carts: carts, Products: products}
	orderSvc := &application.OrderService{Orders: orders, Carts: carts, Logger: logger}
	userSvc := &application.UserService{Repo: users}
	adminSvc := &application.AdminService{Users: users, Products: products, Orders: orders}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, google, container.GetRedis(), logger, cfg), users))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(productSvc, logger), users))
	r.Add(modules.NewCartModule(handlers.NewCartHandler(cartSvc, logger), users))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), users))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), users))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), users))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
