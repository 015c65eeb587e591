package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/app"
	iauth "github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/handlers"
	"github.com/freshmart/storefront/internal/middleware"
	"github.com/freshmart/storefront/internal/services"
)

// Services bundles the long-lived services the router depends on.
type Services struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Orders   *services.OrderService
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, svcs Services) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit.MaxRequests, cfg.Server.RateLimit.Window))
	}

	// Operational endpoints (public)
	r.GET("/health", handlers.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler, err := handlers.NewAuthHandler(svcs.Auth)
	if err != nil {
		return nil, err
	}
	productHandler, err := handlers.NewProductHandler(svcs.Products)
	if err != nil {
		return nil, err
	}
	orderHandler, err := handlers.NewOrderHandler(svcs.Orders)
	if err != nil {
		return nil, err
	}

	registerAuthRoutes(r, authHandler)
	registerCatalogueRoutes(r, productHandler)
	registerOrderRoutes(r, jwt, orderHandler)

	return r, nil
}
