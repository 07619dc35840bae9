package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Only "pending" is ever written by the checkout
// flow; paid/failed transitions arrive through the payment webhook.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// Order is a checkout attempt header. Synthetic marks an order that could
// not be persisted and exists only for the lifetime of the request.
type Order struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	UserID    string          `gorm:"size:128;index" json:"user_id"`
	Status    string          `gorm:"size:16;index" json:"status"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
	Synthetic bool            `gorm:"-" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OrderItem is a single order line. UnitPrice is snapshotted at order
// creation and never tracks later catalog price changes.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	OrderID   int64           `gorm:"index" json:"order_id"`
	ProductID string          `gorm:"size:64;index" json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
}
