package models

// Order statuses follow the fulfilment lifecycle; new orders start pending.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed order together with its line items.
type Order struct {
	BaseModel

	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User  `json:"-"`

	Status      string  `gorm:"default:pending" json:"status"`
	TotalAmount float64 `gorm:"not null" json:"total_amount"`

	ShippingAddress string `gorm:"not null" json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingZipCode string `json:"shipping_zip_code"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem snapshots one product line at purchase time. Price is the unit
// price when the order was placed, not the product's current price.
type OrderItem struct {
	BaseModel

	OrderID   string   `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string   `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product `json:"product,omitempty"`

	Quantity int     `gorm:"not null" json:"quantity"`
	Price    float64 `gorm:"not null" json:"price"`
}
