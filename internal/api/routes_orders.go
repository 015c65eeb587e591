package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/handlers"
	"github.com/freshmart/storefront/internal/middleware"
)

func registerOrderRoutes(engine *gin.Engine, jwt *iauth.JWTService, h *handlers.OrderHandler) {
	orders := engine.Group("/api/orders")
	orders.Use(middleware.Auth(jwt))
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
	}
}
