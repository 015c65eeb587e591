package api

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/storefront/internal/handlers"
)

func registerCatalogueRoutes(engine *gin.Engine, h *handlers.ProductHandler) {
	products := engine.Group("/api/products")
	{
		products.GET("", h.List)
		products.GET("/category/:category", h.ListByCategory)
		products.GET("/:id", h.Get)
	}
}
