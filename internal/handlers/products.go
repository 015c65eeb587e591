package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/storefront/internal/services"
	"github.com/freshmart/storefront/pkg/response"
)

// ProductHandler exposes the public catalogue endpoints.
type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) (*ProductHandler, error) {
	if products == nil {
		return nil, errors.New("product handler: product service is required")
	}
	return &ProductHandler{products: products}, nil
}

// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, products)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(requestContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, product)
}

// GET /api/products/category/:category
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	products, err := h.products.ListByCategory(requestContext(c), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, products)
}
