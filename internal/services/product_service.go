package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/models"
	apperrors "github.com/freshmart/storefront/pkg/errors"
)

// ErrProductNotFound indicates the requested product does not exist.
var ErrProductNotFound = apperrors.NewNotFound("PRODUCT_NOT_FOUND", "Product not found")

// ProductService serves the browsable catalogue.
type ProductService struct {
	db *gorm.DB
}

// NewProductService constructs a ProductService instance.
func NewProductService(db *gorm.DB) (*ProductService, error) {
	if db == nil {
		return nil, errors.New("product service: db is required")
	}
	return &ProductService{db: db}, nil
}

// List returns the full catalogue, newest first.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	ctx = ensureContext(ctx)

	var products []models.Product
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("product service: list products: %w", err)
	}
	return products, nil
}

// GetByID loads one product.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx = ensureContext(ctx)

	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product service: get product: %w", err)
	}
	return &product, nil
}

// ListByCategory returns the products filed under a category.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	ctx = ensureContext(ctx)

	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("category = ?", strings.TrimSpace(category)).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("product service: list by category: %w", err)
	}
	return products, nil
}

// CreateProductInput describes the fields accepted when adding a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Stock       int
}

// Create adds a catalogue entry. Used by seeding and back-office tooling.
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.NewBadRequest("price must not be negative")
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    strings.TrimSpace(input.Category),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Stock:       input.Stock,
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("product service: create product: %w", err)
	}
	return product, nil
}
