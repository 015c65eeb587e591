package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/models"
	apperrors "github.com/freshmart/storefront/pkg/errors"
	"github.com/freshmart/storefront/pkg/logger"
	"github.com/freshmart/storefront/pkg/metrics"
)

// ErrOrderNotFound indicates the order does not exist or belongs to another user.
var ErrOrderNotFound = apperrors.NewNotFound("ORDER_NOT_FOUND", "Order not found")

// OrderService places and reads orders. Stock is decremented with a guarded
// update inside the order transaction so concurrent purchases cannot drive a
// product's stock negative.
type OrderService struct {
	db    *gorm.DB
	email *EmailService
	log   *zap.Logger
}

// NewOrderService constructs an OrderService. The email service may be nil;
// confirmation mail is then skipped.
func NewOrderService(db *gorm.DB, email *EmailService) (*OrderService, error) {
	if db == nil {
		return nil, errors.New("order service: db is required")
	}
	return &OrderService{
		db:    db,
		email: email,
		log:   logger.WithModule("orders"),
	}, nil
}

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress string
	ShippingCity    string
	ShippingZipCode string
}

// Create places an order for the user: validates stock, snapshots unit
// prices, computes the total, and decrements inventory, all in one
// transaction. The confirmation email is best-effort after commit.
func (s *OrderService) Create(ctx context.Context, userID string, input CreateOrderInput) (*models.Order, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if len(input.Items) == 0 {
		return nil, apperrors.NewBadRequest("order must contain at least one item")
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, apperrors.NewBadRequest("shipping address is required")
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		ShippingCity:    strings.TrimSpace(input.ShippingCity),
		ShippingZipCode: strings.TrimSpace(input.ShippingZipCode),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(input.Items))

		for _, line := range input.Items {
			if line.Quantity <= 0 {
				return apperrors.NewBadRequest("item quantity must be positive")
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewBadRequest(fmt.Sprintf("unknown product %s", line.ProductID))
				}
				return fmt.Errorf("load product: %w", err)
			}

			// The decrement is guarded by the stock condition so two orders
			// racing on the same row cannot both take the last unit. A zero
			// row count means the stock ran out, possibly concurrently.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.NewBadRequest(fmt.Sprintf("insufficient stock for %s", product.Name))
			}

			total += product.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}

		order.TotalAmount = total
		order.Items = items

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("order service: %w", err)
	}

	metrics.OrdersCreated.Inc()

	placed, err := s.loadOrder(ctx, userID, order.ID)
	if err != nil {
		return nil, err
	}

	s.dispatchConfirmation(ctx, placed)
	return placed, nil
}

// GetByID returns the user's order; orders of other users read as not found.
func (s *OrderService) GetByID(ctx context.Context, userID, orderID string) (*models.Order, error) {
	return s.loadOrder(ensureContext(ctx), userID, orderID)
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	ctx = ensureContext(ctx)

	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Items.Product").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("order service: list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) loadOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items.Product").
		Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("order service: get order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) dispatchConfirmation(ctx context.Context, order *models.Order) {
	if s.email == nil {
		return
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", order.UserID).Error; err != nil {
		s.log.Warn("order confirmation skipped; user lookup failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return
	}

	if err := s.email.SendOrderConfirmation(ctx, user.Email, order); err != nil {
		s.log.Warn("order confirmation email failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}
