package database

import (
	"gorm.io/gorm"

	"github.com/freshmart/storefront/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}

// SeedCatalogue inserts a starter catalogue so a fresh install has something
// to browse. Existing rows are left untouched.
func SeedCatalogue(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:        "Organic Bananas",
			Description: "Fresh organic bananas, sold per dozen.",
			Price:       48,
			Category:    "fruits",
			Stock:       120,
		},
		{
			Name:        "Whole Wheat Bread",
			Description: "Stone-ground whole wheat loaf, 400g.",
			Price:       55,
			Category:    "bakery",
			Stock:       40,
		},
		{
			Name:        "Basmati Rice 5kg",
			Description: "Premium aged basmati rice.",
			Price:       620,
			Category:    "grains",
			Stock:       64,
		},
		{
			Name:        "Toned Milk 1L",
			Description: "Pasteurised toned milk, 1 litre pouch.",
			Price:       27,
			Category:    "dairy",
			Stock:       200,
		},
	}

	return db.Create(&products).Error
}
