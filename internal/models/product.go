package models

import "gorm.io/datatypes"

// Product is a storefront catalogue entry.
type Product struct {
	BaseModel

	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"index" json:"category"`
	ImageURL    string  `json:"image_url"`

	// Images holds an optional gallery as a JSON array of URLs.
	Images datatypes.JSON `json:"images,omitempty"`

	Stock int `gorm:"default:0" json:"stock"`
}
