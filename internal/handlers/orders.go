package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/storefront/internal/services"
	apperrors "github.com/freshmart/storefront/pkg/errors"
	"github.com/freshmart/storefront/pkg/response"
)

// OrderHandler exposes the authenticated order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) (*OrderHandler, error) {
	if orders == nil {
		return nil, errors.New("order handler: order service is required")
	}
	return &OrderHandler{orders: orders}, nil
}

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shippingAddress" validate:"required"`
	ShippingCity    string             `json:"shippingCity"`
	ShippingZipCode string             `json:"shippingZipCode"`
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	var req createOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	input := services.CreateOrderInput{
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingZipCode: req.ShippingZipCode,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Create(requestContext(c), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	orders, err := h.orders.ListForUser(requestContext(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	order, err := h.orders.GetByID(requestContext(c), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}
